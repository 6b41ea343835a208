package contract

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

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
	rg.GET("/contracts", h.List)
	rg.POST("/contracts", h.Create)
	rg.GET("/contracts/:id", h.Get)
	rg.PUT("/contracts/:id", h.Update)
	rg.DELETE("/contracts/:id", h.Delete)
	rg.GET("/contracts/:id/pdf", h.PDF)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("unit"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contracts": items})
}

func (h *Handler) Create(c *gin.Context) {
	var req ContractRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"contract": ct})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ct, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contract": ct})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ContractRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contract": ct})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) PDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ct, doc, err := h.service.PDF(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="contrato-%d-%s.pdf"`, ct.ID, ct.Unit))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Contrato não encontrado")
	case errors.Is(err, ErrBookingNotFound):
		response.CustomError(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Reserva não encontrada")
	default:
		_ = c.Error(err)
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao processar o contrato")
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
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid contract ID")
		return 0, false
	}
	return id, true
}
