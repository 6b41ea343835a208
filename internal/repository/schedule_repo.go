package repository

import (
	"context"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Schedule{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ScheduleRepository) List(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListDue returns active schedules whose next_send is at or before now.
func (r *ScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]domain.Schedule, error) {
	var out []domain.Schedule
	err := r.db.WithContext(ctx).
		Where("active = ? AND next_send <= ?", true, now.UTC()).
		Order("next_send ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Advance moves next_send forward and, when sentAt is set, records the last
// successful delivery.
func (r *ScheduleRepository) Advance(ctx context.Context, id int64, next time.Time, sentAt *time.Time) error {
	updates := map[string]interface{}{"next_send": next.UTC()}
	if sentAt != nil {
		updates["last_sent_at"] = sentAt.UTC()
	}
	return r.db.WithContext(ctx).Model(&domain.Schedule{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ScheduleRepository) CreateLog(ctx context.Context, l *domain.ScheduleLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ScheduleRepository) ListLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []domain.ScheduleLog
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("sent_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
