package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledger/backend/internal/domain/shared"
)

// SyncJob names one of the upstream pull jobs
type SyncJob string

const (
	SyncJobInventory SyncJob = "inventory"
	SyncJobTickets   SyncJob = "tickets"
	SyncJobBackup    SyncJob = "backup"
)

// IsValid returns true if the job name is known
func (j SyncJob) IsValid() bool {
	switch j {
	case SyncJobInventory, SyncJobTickets, SyncJobBackup:
		return true
	}
	return false
}

// SyncStatus tracks a sync run's outcome
type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusSucceeded SyncStatus = "succeeded"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncRun records one execution of a sync job
type SyncRun struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Job        SyncJob    `gorm:"size:32;not null;index" json:"job"`
	Status     SyncStatus `gorm:"size:16;not null" json:"status"`
	Message    string     `gorm:"size:1024" json:"message,omitempty"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// TableName returns the table name for GORM
func (SyncRun) TableName() string {
	return "sync_runs"
}

// NewSyncRun starts a run record for a job
func NewSyncRun(job SyncJob) (*SyncRun, error) {
	if !job.IsValid() {
		return nil, shared.NewValidationError("Unknown sync job")
	}
	return &SyncRun{
		ID:        uuid.New(),
		Job:       job,
		Status:    SyncStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Complete marks the run finished
func (r *SyncRun) Complete(err error) {
	now := time.Now()
	r.FinishedAt = &now
	if err != nil {
		r.Status = SyncStatusFailed
		r.Message = err.Error()
		return
	}
	r.Status = SyncStatusSucceeded
}
