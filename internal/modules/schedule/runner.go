package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/notify"

	"go.uber.org/zap"
)

const runLockKey = "schedule-runner"

// Runner delivers due schedules. Each schedule is attempted once per due
// instant: a failure is logged and next_send still moves forward.
type Runner struct {
	schedules ScheduleRepository
	reports   ReportBuilder
	senders   map[domain.Channel]notify.Sender
	locker    Locker
	lockTTL   time.Duration
	log       *zap.Logger
}

func NewRunner(
	schedules ScheduleRepository,
	reports ReportBuilder,
	senders []notify.Sender,
	locker Locker,
	lockTTL time.Duration,
	log *zap.Logger,
) *Runner {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if lockTTL <= 0 {
		lockTTL = 50 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	bySender := make(map[domain.Channel]notify.Sender, len(senders))
	for _, s := range senders {
		bySender[domain.Channel(s.Channel())] = s
	}
	return &Runner{
		schedules: schedules,
		reports:   reports,
		senders:   bySender,
		locker:    locker,
		lockTTL:   lockTTL,
		log:       log,
	}
}

func (r *Runner) RunDue(ctx context.Context, now time.Time) (RunResult, error) {
	release, ok, err := r.locker.Acquire(ctx, runLockKey, r.lockTTL)
	if err != nil {
		return RunResult{}, fmt.Errorf("acquire runner lock: %w", err)
	}
	if !ok {
		r.log.Debug("schedule runner lock held elsewhere, skipping tick")
		return RunResult{Skipped: true}, nil
	}
	defer release()

	due, err := r.schedules.ListDue(ctx, now)
	if err != nil {
		return RunResult{}, err
	}

	res := RunResult{Due: len(due)}
	for i := range due {
		if ctx.Err() != nil {
			break
		}
		s := &due[i]

		var sentAt *time.Time
		if _, err := r.deliver(ctx, s, now); err != nil {
			res.Failed++
		} else {
			res.Sent++
			t := now
			sentAt = &t
		}

		next, err := NextSend(*s, now)
		if err != nil {
			// Without a next instant the schedule would fire on every tick.
			r.log.Error("schedule has no next send, deactivating", zap.Int64("schedule_id", s.ID), zap.Error(err))
			s.Active = false
			if uerr := r.schedules.Update(ctx, s); uerr != nil {
				r.log.Error("deactivate schedule", zap.Int64("schedule_id", s.ID), zap.Error(uerr))
			}
			continue
		}
		if err := r.schedules.Advance(ctx, s.ID, next, sentAt); err != nil {
			r.log.Error("advance schedule", zap.Int64("schedule_id", s.ID), zap.Error(err))
		}
	}

	if res.Due > 0 {
		r.log.Info("schedule run finished",
			zap.Int("due", res.Due),
			zap.Int("sent", res.Sent),
			zap.Int("failed", res.Failed),
		)
	}
	return res, nil
}

// SendNow delivers s immediately; next_send is left as it is.
func (r *Runner) SendNow(ctx context.Context, s *domain.Schedule, now time.Time) (*domain.ScheduleLog, error) {
	entry, err := r.deliver(ctx, s, now)
	if err != nil {
		return entry, err
	}
	t := now
	s.LastSentAt = &t
	if aerr := r.schedules.Advance(ctx, s.ID, s.NextSend, s.LastSentAt); aerr != nil {
		r.log.Error("record manual send", zap.Int64("schedule_id", s.ID), zap.Error(aerr))
	}
	return entry, nil
}

// deliver builds and sends one message and always writes a ScheduleLog row.
func (r *Runner) deliver(ctx context.Context, s *domain.Schedule, now time.Time) (*domain.ScheduleLog, error) {
	msg, err := r.send(ctx, s, now)

	entry := &domain.ScheduleLog{
		ScheduleID: s.ID,
		SentAt:     now.UTC(),
		Status:     domain.ScheduleLogSent,
		Message:    msg,
	}
	if err != nil {
		entry.Status = domain.ScheduleLogFailed
		entry.Error = err.Error()
	}
	if lerr := r.schedules.CreateLog(ctx, entry); lerr != nil {
		r.log.Error("write schedule log", zap.Int64("schedule_id", s.ID), zap.Error(lerr))
	}

	if err != nil {
		r.log.Warn("schedule delivery failed",
			zap.Int64("schedule_id", s.ID),
			zap.String("channel", string(s.Channel)),
			zap.Error(err),
		)
		return entry, err
	}
	return entry, nil
}

func (r *Runner) send(ctx context.Context, s *domain.Schedule, now time.Time) (string, error) {
	loc, err := loadLocation(s.Timezone)
	if err != nil {
		return "", err
	}
	msg, err := r.reports.Build(ctx, s.ReportType, s.Unit, now, loc)
	if err != nil {
		return "", fmt.Errorf("build report: %w", err)
	}
	sender, ok := r.senders[s.Channel]
	if !ok {
		return msg, fmt.Errorf("%w %q", ErrNoSender, s.Channel)
	}
	if err := sender.Send(ctx, s.Recipient, subject(s), msg); err != nil {
		return msg, err
	}
	return msg, nil
}

func subject(s *domain.Schedule) string {
	names := map[domain.ReportType]string{
		domain.ReportMovements: "Movimentação",
		domain.ReportOccupancy: "Ocupação",
		domain.ReportFinancial: "Financeiro",
	}
	title := names[s.ReportType]
	if title == "" {
		title = string(s.ReportType)
	}
	return fmt.Sprintf("Relatório de %s - %s", title, s.Name)
}
