package report

import (
	"context"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

type BookingRepository interface {
	List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
}

type BlockRepository interface {
	List(ctx context.Context, unit string, from, to time.Time) ([]domain.AvailabilityBlock, error)
}

type ExpenseRepository interface {
	List(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error)
}

type ApartmentRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error)
}
