package contract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

type Service struct {
	contracts ContractRepository
	bookings  BookingReader
	now       func() time.Time
}

func NewService(contracts ContractRepository, bookings BookingReader) *Service {
	return &Service{contracts: contracts, bookings: bookings, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req ContractRequest) (*domain.Contract, error) {
	c := &domain.Contract{Status: domain.ContractDraft}
	if err := s.apply(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields and re-renders the body.
func (s *Service) Update(ctx context.Context, id int64, req ContractRequest) (*domain.Contract, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.contracts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.contracts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, unit string) ([]domain.Contract, error) {
	return s.contracts.List(ctx, strings.TrimSpace(unit))
}

// PDF renders the stored body of a contract.
func (s *Service) PDF(ctx context.Context, id int64) (*domain.Contract, []byte, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := RenderPDF(c)
	if err != nil {
		return nil, nil, err
	}
	return c, doc, nil
}

func (s *Service) apply(ctx context.Context, c *domain.Contract, req ContractRequest) error {
	c.BookingID = req.BookingID
	c.Unit = strings.TrimSpace(req.Unit)
	c.TenantName = strings.TrimSpace(req.TenantName)
	c.TenantDocument = strings.TrimSpace(req.TenantDocument)
	c.TenantPhone = strings.TrimSpace(req.TenantPhone)
	c.MonthlyRent, c.Deposit = 0, 0
	if req.MonthlyRent != nil {
		c.MonthlyRent = *req.MonthlyRent
	}
	if req.Deposit != nil {
		c.Deposit = *req.Deposit
	}
	c.Template = req.Template
	if req.Status != "" {
		c.Status = domain.ContractStatus(req.Status)
	}

	var start, end time.Time
	var err error
	if req.StartDate != "" {
		if start, err = dateutil.Parse(req.StartDate); err != nil {
			return fmt.Errorf("%w: start_date: %v", ErrValidation, err)
		}
	}
	if req.EndDate != "" {
		if end, err = dateutil.Parse(req.EndDate); err != nil {
			return fmt.Errorf("%w: end_date: %v", ErrValidation, err)
		}
	}
	c.StartDate, c.EndDate = start, end

	if req.BookingID != nil {
		if err := s.prefill(ctx, c, *req.BookingID, req); err != nil {
			return err
		}
	}

	switch {
	case c.Unit == "":
		return fmt.Errorf("%w: unit is required", ErrValidation)
	case c.TenantName == "":
		return fmt.Errorf("%w: tenant_name is required", ErrValidation)
	case c.StartDate.IsZero() || c.EndDate.IsZero():
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	case !c.StartDate.Before(c.EndDate):
		return fmt.Errorf("%w: start_date must be before end_date", ErrValidation)
	}

	c.Body = Render(c.Template, c, s.now())
	return nil
}

// prefill copies the booking's guest, unit, dates and rent into the fields the
// request left empty.
func (s *Service) prefill(ctx context.Context, c *domain.Contract, bookingID int64, req ContractRequest) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	if c.Unit == "" {
		c.Unit = b.Unit
	}
	if c.TenantName == "" {
		c.TenantName = b.GuestName
	}
	if c.TenantPhone == "" {
		c.TenantPhone = b.GuestPhone
	}
	if c.StartDate.IsZero() {
		c.StartDate = dateutil.Day(b.CheckIn)
	}
	if c.EndDate.IsZero() {
		c.EndDate = dateutil.Day(b.CheckOut)
	}
	if req.MonthlyRent == nil {
		c.MonthlyRent = b.RentAmount
	}
	return nil
}
