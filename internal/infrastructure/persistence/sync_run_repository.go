package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ledger/backend/internal/domain/inventory"
)

// GormSyncRunRepository implements inventory.SyncRunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Save creates or updates a run record
func (r *GormSyncRunRepository) Save(ctx context.Context, run *inventory.SyncRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindLatestPerJob returns the most recent run of each job
func (r *GormSyncRunRepository) FindLatestPerJob(ctx context.Context) ([]inventory.SyncRun, error) {
	jobs := []inventory.SyncJob{
		inventory.SyncJobInventory,
		inventory.SyncJobTickets,
		inventory.SyncJobBackup,
	}

	runs := make([]inventory.SyncRun, 0, len(jobs))
	for _, job := range jobs {
		var run inventory.SyncRun
		err := r.db.WithContext(ctx).
			Where("job = ?", job).
			Order("started_at DESC").
			First(&run).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
