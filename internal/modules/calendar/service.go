package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/availability"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

type Service struct {
	blocks     BlockRepository
	bookings   BookingRepository
	apartments ApartmentReader
	events     EventPublisher
}

func NewService(blocks BlockRepository, bookings BookingRepository, apartments ApartmentReader, events EventPublisher) *Service {
	return &Service{blocks: blocks, bookings: bookings, apartments: apartments, events: events}
}

func (s *Service) CreateBlock(ctx context.Context, req BlockRequest) (*domain.AvailabilityBlock, error) {
	b := &domain.AvailabilityBlock{}
	if err := apply(b, req); err != nil {
		return nil, err
	}
	if err := s.ensureUnit(ctx, b.Unit); err != nil {
		return nil, err
	}
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, err
	}
	s.publish(realtime.EventBlockCreated, b)
	return b, nil
}

func (s *Service) UpdateBlock(ctx context.Context, id int64, req BlockRequest) (*domain.AvailabilityBlock, error) {
	b, err := s.GetBlock(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(b, req); err != nil {
		return nil, err
	}
	if err := s.ensureUnit(ctx, b.Unit); err != nil {
		return nil, err
	}
	if err := s.blocks.Update(ctx, b); err != nil {
		return nil, err
	}
	s.publish(realtime.EventBlockUpdated, b)
	return b, nil
}

func (s *Service) DeleteBlock(ctx context.Context, id int64) error {
	b, err := s.GetBlock(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blocks.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(realtime.EventBlockDeleted, b)
	return nil
}

func (s *Service) GetBlock(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	b, err := s.blocks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBlocks(ctx context.Context, unit, from, to string) ([]domain.AvailabilityBlock, error) {
	f, t, err := parseOptionalRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.blocks.List(ctx, unit, f, t)
}

// Calendar returns the per-day status of unit over [from, to]. An empty range
// defaults to the current month.
func (s *Service) Calendar(ctx context.Context, unit, from, to string, now time.Time) ([]availability.DayStatus, error) {
	f, t, err := parseOptionalRange(from, to)
	if err != nil {
		return nil, err
	}
	if f.IsZero() {
		f, _ = dateutil.MonthRange(now)
	}
	if t.IsZero() {
		_, next := dateutil.MonthRange(f)
		t = next.AddDate(0, 0, -1)
	}
	if t.Before(f) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrValidation)
	}

	bookings, err := s.bookings.ListByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ListByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	snap := availability.Snapshot{Bookings: bookings, Blocks: blocks}
	return availability.Calendar(snap, unit, f, t), nil
}

// ensureUnit rejects blocks for units with no apartment record.
func (s *Service) ensureUnit(ctx context.Context, unit string) error {
	if _, err := s.apartments.GetByUnit(ctx, unit); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownUnit
		}
		return err
	}
	return nil
}

func (s *Service) publish(eventType string, b *domain.AvailabilityBlock) {
	if s.events != nil {
		s.events.Publish(realtime.Event{Type: eventType, Unit: b.Unit, ID: b.ID})
	}
}

func apply(b *domain.AvailabilityBlock, req BlockRequest) error {
	status := domain.BlockStatus(req.Status)
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, req.Status)
	}
	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date: %v", ErrValidation, err)
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date: %v", ErrValidation, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}

	b.Unit = req.Unit
	b.StartDate = start
	b.EndDate = end
	b.Status = status
	b.GuestName = req.GuestName
	b.DailyRate = req.DailyRate
	b.Notes = req.Notes
	return nil
}

func parseOptionalRange(from, to string) (time.Time, time.Time, error) {
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = dateutil.Parse(from); err != nil {
			return f, t, fmt.Errorf("%w: from: %v", ErrValidation, err)
		}
	}
	if to != "" {
		if t, err = dateutil.Parse(to); err != nil {
			return f, t, fmt.Errorf("%w: to: %v", ErrValidation, err)
		}
	}
	return f, t, nil
}
