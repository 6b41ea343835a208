package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	bookings BookingStore
	provider LinkProvider
	currency string
	events   EventPublisher
	log      *zap.Logger
}

// NewService wires the payment flow. A nil provider leaves CreateLink
// answering ErrNotConfigured.
func NewService(bookings BookingStore, provider LinkProvider, currency string, events EventPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		provider: provider,
		currency: currency,
		events:   events,
		log:      log,
	}
}

// CreateLink opens a checkout for the outstanding balance of a booking and
// stores it on the booking, replacing any previous link.
func (s *Service) CreateLink(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	if s.provider == nil {
		return nil, ErrNotConfigured
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	balance := b.Balance()
	if balance <= 0 {
		return nil, ErrNothingToPay
	}

	link, err := s.provider.CreateLink(ctx, LinkRequest{
		BookingID:   b.ID,
		Unit:        b.Unit,
		Description: fmt.Sprintf("Reserva #%d - Unidade %s (%s a %s)", b.ID, b.Unit, b.CheckIn.Format("02/01"), b.CheckOut.Format("02/01/2006")),
		Amount:      balance,
		Currency:    s.currency,
	})
	if err != nil {
		return nil, err
	}

	b.PaymentLinkID = link.ID
	b.PaymentLinkURL = link.URL
	if err := s.bookings.UpdatePayment(ctx, b); err != nil {
		return nil, fmt.Errorf("save payment link: %w", err)
	}
	s.log.Info("payment link created", zap.Int64("booking_id", b.ID), zap.String("session_id", link.ID), zap.Float64("amount", balance))
	return b, nil
}

// HandleCheckoutCompleted credits a paid checkout to its booking. The booking is
// found by the stored session id, or by the booking id carried in the session
// metadata when a newer link has replaced it. Each session is credited once;
// a redelivered event is ignored. It reports whether a payment was applied.
func (s *Service) HandleCheckoutCompleted(ctx context.Context, ev CheckoutCompleted) (bool, error) {
	if !ev.Paid || ev.AmountTotal <= 0 {
		s.log.Info("checkout completed without payment", zap.String("session_id", ev.SessionID))
		return false, nil
	}
	b, err := s.checkoutBooking(ctx, ev)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("checkout session matches no booking", zap.String("session_id", ev.SessionID), zap.Int64("booking_id", ev.BookingID))
			return false, nil
		}
		return false, err
	}

	amount := float64(ev.AmountTotal) / 100
	b.AmountPaid = math.Round((b.AmountPaid+amount)*100) / 100
	b.RefreshPaymentStatus()
	// Whatever link is stored was priced for the old balance.
	b.PaymentLinkID = ""
	b.PaymentLinkURL = ""

	receipt := &domain.PaymentReceipt{
		BookingID: b.ID,
		Provider:  ProviderStripe,
		SessionID: ev.SessionID,
		Amount:    amount,
	}
	if err := s.bookings.ApplyPayment(ctx, b, receipt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Info("checkout already credited", zap.String("session_id", ev.SessionID), zap.Int64("booking_id", b.ID))
			return false, nil
		}
		return false, err
	}

	if s.events != nil {
		s.events.Publish(realtime.Event{Type: realtime.EventBookingUpdated, Unit: b.Unit, ID: b.ID})
	}
	s.log.Info("checkout payment applied",
		zap.Int64("booking_id", b.ID),
		zap.String("session_id", ev.SessionID),
		zap.Float64("amount", amount),
		zap.String("payment_status", string(b.PaymentStatus)),
	)
	return true, nil
}

func (s *Service) checkoutBooking(ctx context.Context, ev CheckoutCompleted) (*domain.Booking, error) {
	b, err := s.bookings.GetByPaymentLinkID(ctx, ev.SessionID)
	if err == nil || !errors.Is(err, repository.ErrNotFound) || ev.BookingID <= 0 {
		return b, err
	}
	return s.bookings.GetByID(ctx, ev.BookingID)
}
