package booking

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
	ListByUnit(ctx context.Context, unit string) ([]domain.Booking, error)
	UpdatePayment(ctx context.Context, b *domain.Booking) error
}

type BlockRepository interface {
	ListByUnit(ctx context.Context, unit string) ([]domain.AvailabilityBlock, error)
}

type ApartmentRepository interface {
	GetByUnit(ctx context.Context, unit string) (*domain.Apartment, error)
}

type EventPublisher interface {
	Publish(ev realtime.Event)
}
