package repository

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"

	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	e.Date = dateutil.Day(e.Date)
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	e.Date = dateutil.Day(e.Date)
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Expense{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	var e domain.Expense
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	e.Date = dateutil.Day(e.Date)
	return &e, nil
}

// List filters on the half-open date range [From, To).
func (r *ExpenseRepository) List(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error) {
	q := r.db.WithContext(ctx).Model(&domain.Expense{})
	if f.Unit != "" {
		q = q.Where("unit = ?", f.Unit)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", dateutil.Day(f.From))
	}
	if !f.To.IsZero() {
		q = q.Where("date < ?", dateutil.Day(f.To))
	}

	var out []domain.Expense
	if err := q.Order("date ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Date = dateutil.Day(out[i].Date)
	}
	return out, nil
}
