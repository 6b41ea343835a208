package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/database"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
)

const testWebhookSecret = "whsec_test"

func setupTestRouter(t *testing.T, provider LinkProvider) (*gin.Engine, *repository.BookingRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:payment_handler_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	bookings := repository.NewBookingRepository(db)
	svc := NewService(bookings, provider, "brl", nil, nil)
	h := NewHandler(svc, testWebhookSecret, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	h.RegisterProtectedRoutes(api)
	return r, bookings
}

func seedBooking(t *testing.T, repo *repository.BookingRepository) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		Unit:          "101",
		GuestName:     "Ana",
		CheckIn:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		RentAmount:    500,
		CleaningFee:   100,
		PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func signedWebhook(t *testing.T, payload []byte) *http.Request {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	return req
}

func checkoutEvent(sessionID string, bookingID int64, amount int64) []byte {
	evt := map[string]any{
		"id":     "evt_test_1",
		"object": "event",
		"type":   "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id":             sessionID,
				"object":         "checkout.session",
				"amount_total":   amount,
				"payment_status": "paid",
				"metadata":       map[string]string{"booking_id": fmt.Sprint(bookingID)},
			},
		},
	}
	b, _ := json.Marshal(evt)
	return b
}

func TestPaymentLinkAndWebhook_Flow(t *testing.T) {
	provider := new(MockLinkProvider)
	provider.On("CreateLink", mock.Anything, mock.MatchedBy(func(req LinkRequest) bool {
		return req.Amount == 600
	})).Return(&Link{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil)
	r, bookings := setupTestRouter(t, provider)
	b := seedBooking(t, bookings)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payment-link", b.ID), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "https://checkout.stripe.com/c/cs_test_1")

	payload := checkoutEvent("cs_test_1", b.ID, 60000)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, signedWebhook(t, payload))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"applied"`)

	got, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, got.AmountPaid)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Empty(t, got.PaymentLinkID)

	// Stripe retries deliveries; the second one must not credit twice.
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, signedWebhook(t, payload))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ignored"`)

	got, err = bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, got.AmountPaid)
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	r, _ := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/webhook", bytes.NewReader(checkoutEvent("cs_x", 1, 100)))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/payments/stripe/webhook", bytes.NewReader(nil))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "MISSING_SIGNATURE")
}

func TestCreateLink_Disabled(t *testing.T) {
	r, bookings := setupTestRouter(t, nil)
	b := seedBooking(t, bookings)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payment-link", b.ID), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestWebhook_CreditsSupersededLink(t *testing.T) {
	provider := new(MockLinkProvider)
	provider.On("CreateLink", mock.Anything, mock.Anything).
		Return(&Link{ID: "cs_old", URL: "https://checkout.stripe.com/c/cs_old"}, nil).Once()
	provider.On("CreateLink", mock.Anything, mock.Anything).
		Return(&Link{ID: "cs_new", URL: "https://checkout.stripe.com/c/cs_new"}, nil).Once()
	r, bookings := setupTestRouter(t, provider)
	b := seedBooking(t, bookings)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payment-link", b.ID), nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	// the guest pays through the first link after the second one was issued
	payload := checkoutEvent("cs_old", b.ID, 40000)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, signedWebhook(t, payload))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"applied"`)

	got, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, got.AmountPaid)
	assert.Equal(t, domain.PaymentPartial, got.PaymentStatus)
	assert.Empty(t, got.PaymentLinkID)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, signedWebhook(t, payload))
	assert.Contains(t, rr.Body.String(), `"ignored"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, signedWebhook(t, checkoutEvent("cs_new", b.ID, 20000)))
	assert.Contains(t, rr.Body.String(), `"applied"`)

	got, err = bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, got.AmountPaid)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
}
