package repository

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"

	"gorm.io/gorm"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

func (r *ApartmentRepository) Create(ctx context.Context, a *domain.Apartment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApartmentRepository) Update(ctx context.Context, a *domain.Apartment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApartmentRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Apartment{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	var a domain.Apartment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *ApartmentRepository) GetByUnit(ctx context.Context, unit string) (*domain.Apartment, error) {
	var a domain.Apartment
	if err := r.db.WithContext(ctx).Where("unit = ?", unit).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *ApartmentRepository) List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Apartment{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []domain.Apartment
	if err := q.Order("unit ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
