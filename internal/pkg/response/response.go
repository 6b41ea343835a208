package response

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// CustomError writes an error envelope. message may be a string, an error
// (attached to the gin context for the error logger) or any structured
// value, which is sent as details.
func CustomError(c *gin.Context, status int, code string, message interface{}) {
	info := &ErrorInfo{Code: code}
	switch m := message.(type) {
	case string:
		info.Message = m
	case error:
		_ = c.Error(m)
		info.Message = m.Error()
		var de detailedError
		if errors.As(m, &de) {
			info.Details = de.Details()
		}
	default:
		info.Message = "Request could not be processed"
		info.Details = m
	}
	c.JSON(status, Response{Success: false, Error: info})
}

func ErrorWithDetails(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Response{Success: false, Error: &ErrorInfo{Code: code, Message: message, Details: details}})
}

type detailedError interface {
	Details() interface{}
}
