package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/availability"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const exclusionViolation = "23P01"

type Service struct {
	bookings   BookingRepository
	blocks     BlockRepository
	apartments ApartmentRepository
	events     EventPublisher
}

func NewService(
	bookings BookingRepository,
	blocks BlockRepository,
	apartments ApartmentRepository,
	events EventPublisher,
) *Service {
	return &Service{
		bookings:   bookings,
		blocks:     blocks,
		apartments: apartments,
		events:     events,
	}
}

// Snapshot loads the bookings and blocks of unit for the conflict checker.
func (s *Service) Snapshot(ctx context.Context, unit string) (availability.Snapshot, error) {
	bookings, err := s.bookings.ListByUnit(ctx, unit)
	if err != nil {
		return availability.Snapshot{}, err
	}
	blocks, err := s.blocks.ListByUnit(ctx, unit)
	if err != nil {
		return availability.Snapshot{}, err
	}
	return availability.Snapshot{Bookings: bookings, Blocks: blocks}, nil
}

func (s *Service) Validate(ctx context.Context, req ValidateRequest) (availability.Result, error) {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return availability.Result{}, err
	}
	snap, err := s.Snapshot(ctx, req.Unit)
	if err != nil {
		return availability.Result{}, err
	}
	return availability.Validate(snap, req.Unit, checkIn, checkOut, req.ExcludeBookingID), nil
}

func (s *Service) Create(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{}
	if err := s.apply(ctx, b, req); err != nil {
		return nil, err
	}
	if err := s.ensureAvailable(ctx, b); err != nil {
		return nil, err
	}

	b.RefreshPaymentStatus()
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, mapWriteError(err)
	}

	s.publish(realtime.EventBookingCreated, b)
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, req BookingRequest) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, b, req); err != nil {
		return nil, err
	}
	if err := s.ensureAvailable(ctx, b); err != nil {
		return nil, err
	}

	b.RefreshPaymentStatus()
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, mapWriteError(err)
	}

	s.publish(realtime.EventBookingUpdated, b)
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publish(realtime.EventBookingDeleted, b)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Booking, error) {
	f := domain.BookingFilter{Unit: q.Unit}
	var err error
	if q.From != "" {
		if f.From, err = dateutil.Parse(q.From); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if q.To != "" {
		if f.To, err = dateutil.Parse(q.To); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return s.bookings.List(ctx, f)
}

// RegisterPayment adds amount to what the guest has paid and recomputes the status.
func (s *Service) RegisterPayment(ctx context.Context, id int64, amount float64) (*domain.Booking, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.AmountPaid = math.Round((b.AmountPaid+amount)*100) / 100
	b.RefreshPaymentStatus()
	if err := s.bookings.UpdatePayment(ctx, b); err != nil {
		return nil, err
	}

	s.publish(realtime.EventBookingUpdated, b)
	return b, nil
}

// apply copies req onto b, filling money fields from the apartment when omitted.
func (s *Service) apply(ctx context.Context, b *domain.Booking, req BookingRequest) error {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return err
	}

	apt, err := s.apartments.GetByUnit(ctx, req.Unit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownUnit
		}
		return err
	}

	b.Unit = apt.Unit
	b.GuestName = req.GuestName
	b.GuestPhone = req.GuestPhone
	b.GuestEmail = req.GuestEmail
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.Source = req.Source
	b.Notes = req.Notes

	if req.RentAmount != nil {
		b.RentAmount = *req.RentAmount
	} else {
		b.RentAmount = math.Round(apt.DailyRate*float64(b.Nights())*100) / 100
	}
	if req.CleaningFee != nil {
		b.CleaningFee = *req.CleaningFee
	} else {
		b.CleaningFee = apt.CleaningFee
	}
	if req.CommissionRate != nil {
		b.CommissionRate = *req.CommissionRate
	} else {
		b.CommissionRate = apt.CommissionRate
	}
	return nil
}

func (s *Service) ensureAvailable(ctx context.Context, b *domain.Booking) error {
	snap, err := s.Snapshot(ctx, b.Unit)
	if err != nil {
		return err
	}
	res := availability.Validate(snap, b.Unit, b.CheckIn, b.CheckOut, b.ID)
	if !res.IsValid {
		return &ConflictError{Result: res}
	}
	return nil
}

func (s *Service) publish(eventType string, b *domain.Booking) {
	if s.events != nil {
		s.events.Publish(realtime.Event{Type: eventType, Unit: b.Unit, ID: b.ID})
	}
}

func parseStay(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := dateutil.Parse(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check_in: %v", ErrValidation, err)
	}
	checkOut, err := dateutil.Parse(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check_out: %v", ErrValidation, err)
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check_out must be after check_in", ErrValidation)
	}
	return checkIn, checkOut, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation &&
		pgErr.ConstraintName == repository.BookingsNoOverlapConstraint {
		return ErrOverbooking
	}
	return err
}
