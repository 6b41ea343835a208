package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/occupancy", h.Occupancy)
	rg.GET("/reports/financial", h.Financial)
	rg.GET("/reports/movements", h.Movements)
}

func (h *Handler) Occupancy(c *gin.Context) {
	from, to, ok := monthRange(c)
	if !ok {
		return
	}
	rep, err := h.service.Occupancy(c.Request.Context(), c.Query("unit"), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	text, err := RenderOccupancy(rep)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": rep, "text": text})
}

func (h *Handler) Financial(c *gin.Context) {
	from, to, ok := monthRange(c)
	if !ok {
		return
	}
	rep, err := h.service.Financial(c.Request.Context(), c.Query("unit"), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	text, err := RenderFinancial(rep)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": rep, "text": text})
}

func (h *Handler) Movements(c *gin.Context) {
	day := dateutil.Day(time.Now())
	if q := c.Query("date"); q != "" {
		d, err := dateutil.Parse(q)
		if err != nil {
			response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		day = d
	}
	rep, err := h.service.Movements(c.Request.Context(), c.Query("unit"), day)
	if err != nil {
		h.fail(c, err)
		return
	}
	text, err := RenderMovements(rep)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": rep, "text": text})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrValidation) {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	_ = c.Error(err)
	response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao gerar o relatório")
}

// monthRange reads from/to, defaulting to the current month.
func monthRange(c *gin.Context) (time.Time, time.Time, bool) {
	first, next := dateutil.MonthRange(time.Now())
	from, to := first, next.AddDate(0, 0, -1)

	if q := c.Query("from"); q != "" {
		d, err := dateutil.Parse(q)
		if err != nil {
			response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return from, to, false
		}
		from = d
	}
	if q := c.Query("to"); q != "" {
		d, err := dateutil.Parse(q)
		if err != nil {
			response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return from, to, false
		}
		to = d
	}
	return from, to, true
}
