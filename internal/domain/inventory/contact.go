package inventory

import (
	"time"

	"github.com/ledger/backend/internal/domain/shared"
)

// Contact is the snapshot of one upstream user. Paid mirrors the upstream
// billable flag; billing reclassification happens through user overrides,
// never on the snapshot itself.
type Contact struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	AccountNumber string    `gorm:"size:64;not null;index"`
	FullName      string    `gorm:"size:255;not null"`
	Email         string    `gorm:"size:255"`
	Paid          bool      `gorm:"not null"`
	SyncedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a validated contact snapshot row
func NewContact(id int64, accountNumber, fullName string) (*Contact, error) {
	if id <= 0 {
		return nil, shared.NewValidationError("Contact upstream id must be positive")
	}
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	return &Contact{
		ID:            id,
		AccountNumber: accountNumber,
		FullName:      fullName,
		SyncedAt:      time.Now(),
	}, nil
}
