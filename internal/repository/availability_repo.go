package repository

import (
	"context"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type blockModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Unit      string    `gorm:"column:unit;not null;index"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	Status    string    `gorm:"column:status;not null"`
	GuestName *string   `gorm:"column:guest_name"`
	DailyRate float64   `gorm:"column:daily_rate"`
	Notes     *string   `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (blockModel) TableName() string { return "availability_blocks" }

func toDomainBlock(m blockModel) *domain.AvailabilityBlock {
	return &domain.AvailabilityBlock{
		ID:        m.ID,
		Unit:      m.Unit,
		StartDate: dateutil.Day(m.StartDate),
		EndDate:   dateutil.Day(m.EndDate),
		Status:    domain.BlockStatus(m.Status),
		GuestName: deref(m.GuestName),
		DailyRate: m.DailyRate,
		Notes:     deref(m.Notes),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBlockModel(b *domain.AvailabilityBlock) blockModel {
	return blockModel{
		ID:        b.ID,
		Unit:      b.Unit,
		StartDate: dateutil.Day(b.StartDate),
		EndDate:   dateutil.Day(b.EndDate),
		Status:    string(b.Status),
		GuestName: ptr(b.GuestName),
		DailyRate: b.DailyRate,
		Notes:     ptr(b.Notes),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (r *AvailabilityRepository) Create(ctx context.Context, b *domain.AvailabilityBlock) error {
	m := toBlockModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBlock(m)
	return nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, b *domain.AvailabilityBlock) error {
	m := toBlockModel(b)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBlock(m)
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&blockModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	var m blockModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBlock(m), nil
}

// List returns blocks of unit (all units when empty) touching the closed range
// [from, to]. Zero bounds are open.
func (r *AvailabilityRepository) List(ctx context.Context, unit string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	q := r.db.WithContext(ctx).Model(&blockModel{})
	if unit != "" {
		q = q.Where("unit = ?", unit)
	}
	if !to.IsZero() {
		q = q.Where("start_date <= ?", dateutil.Day(to))
	}
	if !from.IsZero() {
		q = q.Where("end_date >= ?", dateutil.Day(from))
	}

	var rows []blockModel
	if err := q.Order("start_date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.AvailabilityBlock, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBlock(m))
	}
	return out, nil
}

func (r *AvailabilityRepository) ListByUnit(ctx context.Context, unit string) ([]domain.AvailabilityBlock, error) {
	return r.List(ctx, unit, time.Time{}, time.Time{})
}
