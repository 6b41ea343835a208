package apartment

import (
	"context"
	"errors"
	"strings"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type Service struct {
	apartments ApartmentRepository
}

func NewService(apartments ApartmentRepository) *Service {
	return &Service{apartments: apartments}
}

func (s *Service) Create(ctx context.Context, req CreateApartmentRequest) (*domain.Apartment, error) {
	unit := strings.TrimSpace(req.Unit)
	if _, err := s.apartments.GetByUnit(ctx, unit); err == nil {
		return nil, ErrUnitExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	a := &domain.Apartment{Unit: unit, Active: true}
	apply(a, req.UpdateApartmentRequest)
	if err := s.apartments.Create(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUnitExists
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, unit string, req UpdateApartmentRequest) (*domain.Apartment, error) {
	a, err := s.Get(ctx, unit)
	if err != nil {
		return nil, err
	}
	apply(a, req)
	if err := s.apartments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, unit string) error {
	a, err := s.Get(ctx, unit)
	if err != nil {
		return err
	}
	return s.apartments.Delete(ctx, a.ID)
}

func (s *Service) Get(ctx context.Context, unit string) (*domain.Apartment, error) {
	a, err := s.apartments.GetByUnit(ctx, unit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error) {
	return s.apartments.List(ctx, activeOnly)
}

func apply(a *domain.Apartment, req UpdateApartmentRequest) {
	a.Name = req.Name
	a.Address = req.Address
	a.OwnerName = req.OwnerName
	a.OwnerPhone = req.OwnerPhone
	a.OwnerEmail = req.OwnerEmail
	a.DailyRate = req.DailyRate
	a.CleaningFee = req.CleaningFee
	a.CommissionRate = req.CommissionRate
	if req.Active != nil {
		a.Active = *req.Active
	}
}
