package expense

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)
	List(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error)
}
