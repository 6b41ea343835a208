package calendar

import (
	"context"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
)

type BlockRepository interface {
	Create(ctx context.Context, b *domain.AvailabilityBlock) error
	Update(ctx context.Context, b *domain.AvailabilityBlock) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error)
	List(ctx context.Context, unit string, from, to time.Time) ([]domain.AvailabilityBlock, error)
	ListByUnit(ctx context.Context, unit string) ([]domain.AvailabilityBlock, error)
}

type BookingRepository interface {
	ListByUnit(ctx context.Context, unit string) ([]domain.Booking, error)
}

type ApartmentReader interface {
	GetByUnit(ctx context.Context, unit string) (*domain.Apartment, error)
}

type EventPublisher interface {
	Publish(ev realtime.Event)
}
