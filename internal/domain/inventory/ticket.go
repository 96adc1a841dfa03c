package inventory

import (
	"time"

	"github.com/ledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ticket is the snapshot of one upstream support ticket with the hours
// logged against it. LastActivityAt selects the billing period the hours
// land in.
type Ticket struct {
	ID             int64           `gorm:"primaryKey;autoIncrement:false"`
	AccountNumber  string          `gorm:"size:64;not null;index"`
	Number         string          `gorm:"size:64;not null"`
	Subject        string          `gorm:"size:512"`
	Hours          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LastActivityAt time.Time       `gorm:"not null;index"`
	SyncedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}

// NewTicket creates a validated ticket snapshot row
func NewTicket(id int64, accountNumber, number string, hours decimal.Decimal, lastActivityAt time.Time) (*Ticket, error) {
	if id <= 0 {
		return nil, shared.NewValidationError("Ticket upstream id must be positive")
	}
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	if hours.IsNegative() {
		return nil, shared.NewValidationError("Ticket hours cannot be negative")
	}
	return &Ticket{
		ID:             id,
		AccountNumber:  accountNumber,
		Number:         number,
		Hours:          hours,
		LastActivityAt: lastActivityAt,
		SyncedAt:       time.Now(),
	}, nil
}
