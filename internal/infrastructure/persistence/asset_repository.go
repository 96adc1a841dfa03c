package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
)

// GormAssetRepository implements inventory.AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByAccount lists the assets of one company
func (r *GormAssetRepository) FindByAccount(ctx context.Context, accountNumber string) ([]inventory.Asset, error) {
	var assets []inventory.Asset
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("id ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// ReplaceAll swaps the asset snapshot. Backup bytes carried by existing rows
// survive the upsert only when the new snapshot also reports them, which is
// why the backup sync job runs after the inventory job.
func (r *GormAssetRepository) ReplaceAll(ctx context.Context, assets []inventory.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(assets) == 0 {
			return tx.Where("1 = 1").Delete(&inventory.Asset{}).Error
		}

		ids := make([]int64, 0, len(assets))
		for _, a := range assets {
			ids = append(ids, a.ID)
		}
		if err := tx.Where("id NOT IN ?", ids).Delete(&inventory.Asset{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"account_number", "hostname", "type", "synced_at"}),
		}).Create(&assets).Error
	})
}

// UpdateBackupBytes sets the reported backup usage for one device
func (r *GormAssetRepository) UpdateBackupBytes(ctx context.Context, assetID int64, backupBytes int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Asset{}).
		Where("id = ?", assetID).
		Update("backup_bytes", backupBytes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
