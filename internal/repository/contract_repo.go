package repository

import (
	"context"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"

	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Update(ctx context.Context, c *domain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Contract{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	var c domain.Contract
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ContractRepository) List(ctx context.Context, unit string) ([]domain.Contract, error) {
	q := r.db.WithContext(ctx).Model(&domain.Contract{})
	if unit != "" {
		q = q.Where("unit = ?", unit)
	}
	var out []domain.Contract
	if err := q.Order("start_date DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
