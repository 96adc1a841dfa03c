package inventory

import (
	"time"

	"github.com/ledger/backend/internal/domain/shared"
)

// Asset is the snapshot of one upstream device. BackupBytes carries the
// exact byte count the backup provider reported; zero means the device is
// not backed up.
type Asset struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	AccountNumber string    `gorm:"size:64;not null;index"`
	Hostname      string    `gorm:"size:255;not null"`
	Type          string    `gorm:"size:64;not null"`
	BackupBytes   int64     `gorm:"not null;default:0"`
	SyncedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// NewAsset creates a validated asset snapshot row
func NewAsset(id int64, accountNumber, hostname, assetType string) (*Asset, error) {
	if id <= 0 {
		return nil, shared.NewValidationError("Asset upstream id must be positive")
	}
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	return &Asset{
		ID:            id,
		AccountNumber: accountNumber,
		Hostname:      hostname,
		Type:          assetType,
		SyncedAt:      time.Now(),
	}, nil
}
