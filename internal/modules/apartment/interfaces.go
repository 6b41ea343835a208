package apartment

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

type ApartmentRepository interface {
	Create(ctx context.Context, a *domain.Apartment) error
	Update(ctx context.Context, a *domain.Apartment) error
	Delete(ctx context.Context, id int64) error
	GetByUnit(ctx context.Context, unit string) (*domain.Apartment, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error)
}
