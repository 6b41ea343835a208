package booking

import (
	"errors"
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
	rg.POST("/bookings/validate", h.Validate)
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.PUT("/bookings/:id", h.Update)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.POST("/bookings/:id/payments", h.RegisterPayment)
}

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), ListQuery{
		Unit: c.Query("unit"),
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items, "count": len(items)})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
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

func (h *Handler) RegisterPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.service.RegisterPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT", conflict.Result.Message, conflict.Result.Conflicts)
	case errors.Is(err, ErrOverbooking):
		response.CustomError(c, http.StatusConflict, "BOOKING_CONFLICT", "A unidade já está reservada no período selecionado")
	case errors.Is(err, ErrValidation):
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Reserva não encontrada")
	case errors.Is(err, ErrUnknownUnit):
		response.CustomError(c, http.StatusNotFound, "UNIT_NOT_FOUND", "Unidade não cadastrada")
	default:
		_ = c.Error(err)
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao processar a reserva")
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
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
