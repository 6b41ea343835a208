package payment

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20

type Handler struct {
	service       *Service
	webhookSecret string
	log           *zap.Logger
}

func NewHandler(service *Service, webhookSecret string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, webhookSecret: webhookSecret, log: log}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/payment-link", h.CreateLink)
}

// RegisterPublicRoutes mounts the provider callback. The signature is its auth.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/stripe/webhook", h.StripeWebhook)
}

func (h *Handler) CreateLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.service.CreateLink(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Reserva não encontrada")
		case errors.Is(err, ErrNothingToPay):
			response.CustomError(c, http.StatusConflict, "NOTHING_TO_PAY", "Reserva sem saldo em aberto")
		case errors.Is(err, ErrNotConfigured):
			response.CustomError(c, http.StatusServiceUnavailable, "PAYMENTS_DISABLED", "Pagamento online não configurado")
		default:
			_ = c.Error(err)
			response.CustomError(c, http.StatusBadGateway, "PAYMENT_PROVIDER_ERROR", "Falha ao gerar o link de pagamento")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking":     b,
		"payment_url": b.PaymentLinkURL,
	})
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	if strings.TrimSpace(h.webhookSecret) == "" {
		response.CustomError(c, http.StatusServiceUnavailable, "PAYMENTS_DISABLED", "stripe webhook not configured")
		return
	}
	sig := c.GetHeader("Stripe-Signature")
	if strings.TrimSpace(sig) == "" {
		response.CustomError(c, http.StatusBadRequest, "MISSING_SIGNATURE", "missing Stripe-Signature header")
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "failed to read request body")
		return
	}

	evt, err := webhook.ConstructEventWithOptions(body, sig, h.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		response.CustomError(c, http.StatusBadRequest, "INVALID_SIGNATURE", "invalid signature")
		return
	}
	h.log.Info("stripe event received", zap.String("event_id", evt.ID), zap.String("event_type", string(evt.Type)))

	if evt.Type != "checkout.session.completed" {
		response.Success(c, http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		h.log.Error("stripe: invalid checkout session payload", zap.Error(err))
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid checkout session payload")
		return
	}
	bookingID, _ := strconv.ParseInt(session.Metadata["booking_id"], 10, 64)

	applied, err := h.service.HandleCheckoutCompleted(c.Request.Context(), CheckoutCompleted{
		SessionID:   session.ID,
		BookingID:   bookingID,
		AmountTotal: session.AmountTotal,
		Paid:        session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	})
	if err != nil {
		_ = c.Error(err)
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to apply payment")
		return
	}
	status := "ignored"
	if applied {
		status = "applied"
	}
	response.Success(c, http.StatusOK, gin.H{"status": status})
}
