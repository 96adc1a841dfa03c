package inventory

import (
	"time"

	"github.com/ledger/backend/internal/domain/shared"
)

// Company is the locally persisted snapshot of one client company as last
// seen in the upstream inventory source. Snapshot rows keep their upstream
// integer identifiers and are replaced wholesale by the sync jobs; the
// billing engine only ever reads them.
type Company struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	AccountNumber string    `gorm:"size:64;not null;uniqueIndex"`
	Name          string    `gorm:"size:255;not null"`
	PlanName      string    `gorm:"size:255"`
	ContractTerm  string    `gorm:"size:32"`
	ContractStart time.Time
	Active        bool      `gorm:"not null"`
	SyncedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a validated company snapshot row
func NewCompany(id int64, accountNumber, name string) (*Company, error) {
	if id <= 0 {
		return nil, shared.NewValidationError("Company upstream id must be positive")
	}
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	return &Company{
		ID:            id,
		AccountNumber: accountNumber,
		Name:          name,
		Active:        true,
		SyncedAt:      time.Now(),
	}, nil
}
