package payment

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
)

type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPaymentLinkID(ctx context.Context, linkID string) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, b *domain.Booking) error
	ApplyPayment(ctx context.Context, b *domain.Booking, receipt *domain.PaymentReceipt) error
}

// LinkProvider creates a hosted checkout page for a single charge.
type LinkProvider interface {
	CreateLink(ctx context.Context, req LinkRequest) (*Link, error)
}

type EventPublisher interface {
	Publish(ev realtime.Event)
}
