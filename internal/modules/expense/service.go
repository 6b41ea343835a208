package expense

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

const monthLayout = "2006-01"

type Service struct {
	expenses ExpenseRepository
}

func NewService(expenses ExpenseRepository) *Service {
	return &Service{expenses: expenses}
}

func (s *Service) Create(ctx context.Context, req ExpenseRequest) (*domain.Expense, error) {
	e := &domain.Expense{}
	if err := apply(e, req); err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req ExpenseRequest) (*domain.Expense, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(e, req); err != nil {
		return nil, err
	}
	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List filters by unit, category and month ("YYYY-MM"); empty values match all.
func (s *Service) List(ctx context.Context, unit, category, month string) ([]domain.Expense, error) {
	f := domain.ExpenseFilter{Unit: unit, Category: domain.ExpenseCategory(category)}
	if month != "" {
		from, to, err := parseMonth(month)
		if err != nil {
			return nil, err
		}
		f.From, f.To = from, to
	}
	return s.expenses.List(ctx, f)
}

func (s *Service) Summary(ctx context.Context, month string) (*Summary, error) {
	from, to, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	items, err := s.expenses.List(ctx, domain.ExpenseFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return Summarize(from.Format(monthLayout), items), nil
}

// Summarize totals items by unit, by category and by unit+category.
func Summarize(month string, items []domain.Expense) *Summary {
	sum := &Summary{
		Month:      month,
		ByUnit:     map[string]float64{},
		ByCategory: map[string]float64{},
		Breakdown:  map[string]map[string]float64{},
	}
	for _, e := range items {
		cat := string(e.Category)
		sum.Total += e.Amount
		sum.ByUnit[e.Unit] += e.Amount
		sum.ByCategory[cat] += e.Amount
		if sum.Breakdown[e.Unit] == nil {
			sum.Breakdown[e.Unit] = map[string]float64{}
		}
		sum.Breakdown[e.Unit][cat] += e.Amount
	}

	sum.Total = round2(sum.Total)
	for k, v := range sum.ByUnit {
		sum.ByUnit[k] = round2(v)
	}
	for k, v := range sum.ByCategory {
		sum.ByCategory[k] = round2(v)
	}
	for _, cats := range sum.Breakdown {
		for k, v := range cats {
			cats[k] = round2(v)
		}
	}
	return sum
}

func apply(e *domain.Expense, req ExpenseRequest) error {
	date, err := dateutil.Parse(req.Date)
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrValidation, err)
	}
	e.Unit = req.Unit
	e.Category = domain.ExpenseCategory(req.Category)
	e.Description = req.Description
	e.Amount = round2(req.Amount)
	e.Date = date
	e.Paid = req.Paid
	return nil
}

func parseMonth(month string) (time.Time, time.Time, error) {
	if month == "" {
		month = time.Now().Format(monthLayout)
	}
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	}
	from, to := dateutil.MonthRange(t)
	return from, to, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
