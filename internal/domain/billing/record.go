package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledger/backend/internal/domain/shared"
)

// InvoiceStatus tracks an invoice's lifecycle
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusFinalized InvoiceStatus = "finalized"
)

// Invoice is a persisted invoice computation. Drafts are recomputed freely;
// finalizing freezes the stored result so later configuration changes do not
// rewrite history.
type Invoice struct {
	ID            uuid.UUID      `json:"id"`
	AccountNumber string         `json:"account_number"`
	Period        Period         `json:"period"`
	Status        InvoiceStatus  `json:"status"`
	Result        *InvoiceResult `json:"result,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	FinalizedAt   *time.Time     `json:"finalized_at,omitempty"`
}

// NewInvoice wraps a computed result as a draft invoice
func NewInvoice(result *InvoiceResult) (*Invoice, error) {
	if result == nil {
		return nil, shared.NewValidationError("Invoice result cannot be nil")
	}
	now := time.Now()
	return &Invoice{
		ID:            uuid.New(),
		AccountNumber: result.AccountNumber,
		Period:        result.Period,
		Status:        InvoiceStatusDraft,
		Result:        result,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Finalize freezes the invoice. Finalizing twice is an invalid state
// transition.
func (i *Invoice) Finalize() error {
	if i.Status == InvoiceStatusFinalized {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Invoice is already finalized")
	}
	now := time.Now()
	i.Status = InvoiceStatusFinalized
	i.FinalizedAt = &now
	i.UpdatedAt = now
	return nil
}

// Replace swaps a draft's stored result for a fresh computation
func (i *Invoice) Replace(result *InvoiceResult) error {
	if i.Status == InvoiceStatusFinalized {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Finalized invoices cannot be recomputed")
	}
	if result == nil {
		return shared.NewValidationError("Invoice result cannot be nil")
	}
	i.Result = result
	i.UpdatedAt = time.Now()
	return nil
}
