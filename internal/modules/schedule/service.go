package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/notify"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

type Service struct {
	schedules       ScheduleRepository
	runner          *Runner
	defaultTimezone string
	now             func() time.Time
}

func NewService(schedules ScheduleRepository, runner *Runner, defaultTimezone string) *Service {
	return &Service{
		schedules:       schedules,
		runner:          runner,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req ScheduleRequest) (*domain.Schedule, error) {
	sc := &domain.Schedule{Active: true}
	if err := s.apply(sc, req); err != nil {
		return nil, err
	}
	if err := s.schedules.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) Update(ctx context.Context, id int64, req ScheduleRequest) (*domain.Schedule, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(sc, req); err != nil {
		return nil, err
	}
	if err := s.schedules.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Schedule, error) {
	sc, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sc, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Schedule, error) {
	return s.schedules.List(ctx)
}

func (s *Service) Logs(ctx context.Context, id int64, limit int) ([]domain.ScheduleLog, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.schedules.ListLogs(ctx, id, limit)
}

// SendNow triggers a delivery outside the regular cadence.
func (s *Service) SendNow(ctx context.Context, id int64) (*domain.ScheduleLog, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.runner.SendNow(ctx, sc, s.now())
}

// apply copies req onto sc and recomputes NextSend from the current time.
func (s *Service) apply(sc *domain.Schedule, req ScheduleRequest) error {
	sc.Name = strings.TrimSpace(req.Name)
	sc.Channel = domain.Channel(req.Channel)
	sc.Recipient = strings.TrimSpace(req.Recipient)
	sc.ReportType = domain.ReportType(req.ReportType)
	sc.Frequency = domain.Frequency(req.Frequency)
	sc.SendTime = req.SendTime
	sc.Weekday = req.Weekday
	sc.DayOfMonth = req.DayOfMonth
	sc.Unit = strings.TrimSpace(req.Unit)
	sc.Timezone = req.Timezone
	if sc.Timezone == "" {
		sc.Timezone = s.defaultTimezone
	}
	if req.Active != nil {
		sc.Active = *req.Active
	}

	switch sc.Channel {
	case domain.ChannelEmail:
		if _, err := mail.ParseAddress(sc.Recipient); err != nil {
			return fmt.Errorf("%w: recipient must be an email address", ErrValidation)
		}
	case domain.ChannelWhatsApp:
		if n := notify.NormalizePhone(sc.Recipient); len(n) < 10 {
			return fmt.Errorf("%w: recipient must be a phone number", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrValidation, sc.Channel)
	}
	if sc.Frequency == domain.FrequencyMonthly && sc.DayOfMonth == 0 {
		sc.DayOfMonth = 1
	}

	next, err := NextSend(*sc, s.now())
	if err != nil {
		return err
	}
	sc.NextSend = next.UTC()
	return nil
}
