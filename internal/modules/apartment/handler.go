package apartment

import (
	"errors"
	"net/http"

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
	rg.GET("/apartments", h.List)
	rg.POST("/apartments", h.Create)
	rg.GET("/apartments/:unit", h.Get)
	rg.PUT("/apartments/:unit", h.Update)
	rg.DELETE("/apartments/:unit", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartments": items})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateApartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"apartment": a})
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("unit"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartment": a})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateApartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.service.Update(c.Request.Context(), c.Param("unit"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartment": a})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("unit")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Apartamento não encontrado")
	case errors.Is(err, ErrUnitExists):
		response.CustomError(c, http.StatusConflict, "UNIT_EXISTS", "Unidade já cadastrada")
	default:
		_ = c.Error(err)
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao processar o apartamento")
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
