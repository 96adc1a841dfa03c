package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/infrastructure/persistence/models"
)

// GormManualItemRepository implements billing.ManualItemRepository using GORM
type GormManualItemRepository struct {
	db *gorm.DB
}

// NewGormManualItemRepository creates a new GormManualItemRepository
func NewGormManualItemRepository(db *gorm.DB) *GormManualItemRepository {
	return &GormManualItemRepository{db: db}
}

// FindManualAssets lists the manual assets for an account
func (r *GormManualItemRepository) FindManualAssets(ctx context.Context, accountNumber string) ([]*billing.ManualAsset, error) {
	var rows []models.ManualAssetModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	assets := make([]*billing.ManualAsset, 0, len(rows))
	for i := range rows {
		asset, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// FindManualUsers lists the manual users for an account
func (r *GormManualItemRepository) FindManualUsers(ctx context.Context, accountNumber string) ([]*billing.ManualUser, error) {
	var rows []models.ManualUserModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]*billing.ManualUser, 0, len(rows))
	for i := range rows {
		user, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SaveManualAsset creates or updates a manual asset
func (r *GormManualItemRepository) SaveManualAsset(ctx context.Context, asset *billing.ManualAsset) error {
	var model models.ManualAssetModel
	model.FromDomain(asset)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveManualUser creates or updates a manual user
func (r *GormManualItemRepository) SaveManualUser(ctx context.Context, user *billing.ManualUser) error {
	var model models.ManualUserModel
	model.FromDomain(user)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteManualAsset removes a manual asset
func (r *GormManualItemRepository) DeleteManualAsset(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ManualAssetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteManualUser removes a manual user
func (r *GormManualItemRepository) DeleteManualUser(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ManualUserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
