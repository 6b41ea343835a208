package contract

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	Update(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	List(ctx context.Context, unit string) ([]domain.Contract, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
