package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/infrastructure/persistence/models"
)

// GormLineItemRepository implements billing.LineItemRepository using GORM
type GormLineItemRepository struct {
	db *gorm.DB
}

// NewGormLineItemRepository creates a new GormLineItemRepository
func NewGormLineItemRepository(db *gorm.DB) *GormLineItemRepository {
	return &GormLineItemRepository{db: db}
}

// FindByID finds a line item by ID
func (r *GormLineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CustomLineItem, error) {
	var model models.CustomLineItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByAccount lists an account's line items
func (r *GormLineItemRepository) FindByAccount(ctx context.Context, accountNumber string) ([]*billing.CustomLineItem, error) {
	var rows []models.CustomLineItemModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*billing.CustomLineItem, 0, len(rows))
	for i := range rows {
		item, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Save creates or updates a line item
func (r *GormLineItemRepository) Save(ctx context.Context, item *billing.CustomLineItem) error {
	var model models.CustomLineItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a line item
func (r *GormLineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomLineItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
