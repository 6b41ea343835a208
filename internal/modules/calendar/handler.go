package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/response"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.List)
	rg.POST("/availability", h.Create)
	rg.GET("/availability/:id", h.Get)
	rg.PUT("/availability/:id", h.Update)
	rg.DELETE("/availability/:id", h.Delete)
	rg.GET("/apartments/:unit/calendar", h.Calendar)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListBlocks(c.Request.Context(), c.Query("unit"), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blocks": items})
}

func (h *Handler) Create(c *gin.Context) {
	var req BlockRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.CreateBlock(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"block": b})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBlock(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"block": b})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req BlockRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.UpdateBlock(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"block": b})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBlock(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Calendar(c *gin.Context) {
	unit := c.Param("unit")
	days, err := h.service.Calendar(c.Request.Context(), unit, c.Query("from"), c.Query("to"), time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unit": unit, "days": days})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Bloqueio não encontrado")
	case errors.Is(err, ErrUnknownUnit):
		response.CustomError(c, http.StatusNotFound, "UNIT_NOT_FOUND", "Unidade não cadastrada")
	default:
		_ = c.Error(err)
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao processar o calendário")
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Dados inválidos", errs)
		return false
	}
	return true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid block ID")
		return 0, false
	}
	return id, true
}
