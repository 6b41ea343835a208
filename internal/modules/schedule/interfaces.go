package schedule

import (
	"context"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) error
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context) ([]domain.Schedule, error)
	ListDue(ctx context.Context, now time.Time) ([]domain.Schedule, error)
	Advance(ctx context.Context, id int64, next time.Time, sentAt *time.Time) error
	CreateLog(ctx context.Context, l *domain.ScheduleLog) error
	ListLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error)
}

// ReportBuilder renders the message a schedule delivers.
type ReportBuilder interface {
	Build(ctx context.Context, kind domain.ReportType, unit string, now time.Time, loc *time.Location) (string, error)
}
