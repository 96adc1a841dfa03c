package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/infrastructure/persistence/models"
)

// GormItemOverrideRepository implements billing.ItemOverrideRepository using GORM
type GormItemOverrideRepository struct {
	db *gorm.DB
}

// NewGormItemOverrideRepository creates a new GormItemOverrideRepository
func NewGormItemOverrideRepository(db *gorm.DB) *GormItemOverrideRepository {
	return &GormItemOverrideRepository{db: db}
}

// FindAssetOverrides lists the asset overrides for an account
func (r *GormItemOverrideRepository) FindAssetOverrides(ctx context.Context, accountNumber string) ([]*billing.AssetOverride, error) {
	var rows []models.AssetOverrideModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("asset_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	overrides := make([]*billing.AssetOverride, 0, len(rows))
	for i := range rows {
		override, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	return overrides, nil
}

// FindUserOverrides lists the user overrides for an account
func (r *GormItemOverrideRepository) FindUserOverrides(ctx context.Context, accountNumber string) ([]*billing.UserOverride, error) {
	var rows []models.UserOverrideModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("user_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	overrides := make([]*billing.UserOverride, 0, len(rows))
	for i := range rows {
		override, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	return overrides, nil
}

// SaveAssetOverride creates or updates an asset override
func (r *GormItemOverrideRepository) SaveAssetOverride(ctx context.Context, override *billing.AssetOverride) error {
	var model models.AssetOverrideModel
	model.FromDomain(override)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveUserOverride creates or updates a user override
func (r *GormItemOverrideRepository) SaveUserOverride(ctx context.Context, override *billing.UserOverride) error {
	var model models.UserOverrideModel
	model.FromDomain(override)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteAssetOverride removes an asset override
func (r *GormItemOverrideRepository) DeleteAssetOverride(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AssetOverrideModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteUserOverride removes a user override
func (r *GormItemOverrideRepository) DeleteUserOverride(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserOverrideModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
