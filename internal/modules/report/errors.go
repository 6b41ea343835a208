package report

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrUnknownType = errors.New("unknown report type")
)
