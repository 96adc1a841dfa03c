package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ledger/backend/internal/domain/billing"
)

// InvoiceModel persists one computed invoice. The full computation result is
// stored as a JSON document; the scalar columns exist for lookup and listing
// without deserializing it.
type InvoiceModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;uniqueIndex:idx_invoices_account_period"`
	PeriodYear    int       `gorm:"not null;uniqueIndex:idx_invoices_account_period"`
	PeriodMonth   int       `gorm:"not null;uniqueIndex:idx_invoices_account_period"`
	Status        string    `gorm:"not null;index"`
	TotalMinor    int64     `gorm:"not null"`
	Result        []byte    `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	FinalizedAt   *time.Time
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string { return "invoices" }

// FromDomain populates the model from a domain invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) error {
	result, err := json.Marshal(inv.Result)
	if err != nil {
		return err
	}
	m.ID = inv.ID
	m.AccountNumber = inv.AccountNumber
	m.PeriodYear = inv.Period.Year
	m.PeriodMonth = int(inv.Period.Month)
	m.Status = string(inv.Status)
	m.TotalMinor = inv.Result.Total.MinorUnits()
	m.Result = result
	m.CreatedAt = inv.CreatedAt
	m.UpdatedAt = inv.UpdatedAt
	m.FinalizedAt = inv.FinalizedAt
	return nil
}

// ToDomain converts the model to a domain invoice
func (m *InvoiceModel) ToDomain() (*billing.Invoice, error) {
	var result billing.InvoiceResult
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, err
	}
	return &billing.Invoice{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		Period:        billing.Period{Year: m.PeriodYear, Month: time.Month(m.PeriodMonth)},
		Status:        billing.InvoiceStatus(m.Status),
		Result:        &result,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		FinalizedAt:   m.FinalizedAt,
	}, nil
}
