package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/infrastructure/persistence/models"
)

// GormOverrideRepository implements billing.OverrideRepository using GORM
type GormOverrideRepository struct {
	db *gorm.DB
}

// NewGormOverrideRepository creates a new GormOverrideRepository
func NewGormOverrideRepository(db *gorm.DB) *GormOverrideRepository {
	return &GormOverrideRepository{db: db}
}

// FindByAccount finds the override row for an account
func (r *GormOverrideRepository) FindByAccount(ctx context.Context, accountNumber string) (*billing.ClientOverride, error) {
	var model models.ClientOverrideModel
	if err := r.db.WithContext(ctx).First(&model, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll lists overrides with filtering
func (r *GormOverrideRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.ClientOverride, error) {
	var rows []models.ClientOverrideModel
	query := r.db.WithContext(ctx).Order("account_number ASC")
	if filter.Search != "" {
		query = query.Where("account_number LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	overrides := make([]billing.ClientOverride, 0, len(rows))
	for i := range rows {
		override, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, *override)
	}
	return overrides, nil
}

// CountByPlanName counts overrides re-pointing clients at a plan name
func (r *GormOverrideRepository) CountByPlanName(ctx context.Context, planName string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientOverrideModel{}).
		Where("plan_name = ?", planName).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an account's override row
func (r *GormOverrideRepository) Save(ctx context.Context, override *billing.ClientOverride) error {
	var model models.ClientOverrideModel
	model.FromDomain(override)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteByAccount removes an account's override row
func (r *GormOverrideRepository) DeleteByAccount(ctx context.Context, accountNumber string) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientOverrideModel{}, "account_number = ?", accountNumber)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
