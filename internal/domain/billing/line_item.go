package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// Recurrence classifies how a custom line item repeats
type Recurrence string

const (
	// RecurrenceOneOff bills exactly once, in its designated period
	RecurrenceOneOff Recurrence = "one_off"
	// RecurrenceMonthly bills in every period inside its active window
	RecurrenceMonthly Recurrence = "monthly"
	// RecurrenceYearly bills once per year, in its configured billing month
	RecurrenceYearly Recurrence = "yearly"
)

// IsValid returns true if the recurrence is known
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceOneOff, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// CustomLineItem is a manually configured charge independent of asset and
// user counts. Negative amounts are credits and pass through unclamped.
type CustomLineItem struct {
	ID            uuid.UUID         `json:"id"`
	AccountNumber string            `json:"account_number"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Amount        valueobject.Money `json:"amount"`
	Recurrence    Recurrence        `json:"recurrence"`

	// OneOffPeriod is the single period a one-off item bills in.
	OneOffPeriod *Period `json:"one_off_period,omitempty"`
	// ActiveFrom/ActiveUntil bound a monthly item, inclusive on both ends.
	// A nil ActiveFrom means "since forever", a nil ActiveUntil "indefinite".
	ActiveFrom  *Period `json:"active_from,omitempty"`
	ActiveUntil *Period `json:"active_until,omitempty"`
	// YearlyBillMonth is the calendar month a yearly item bills in.
	YearlyBillMonth time.Month `json:"yearly_bill_month,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomLineItem creates a validated custom line item
func NewCustomLineItem(accountNumber, name string, amount valueobject.Money, recurrence Recurrence) (*CustomLineItem, error) {
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Line item name cannot be empty")
	}
	if !recurrence.IsValid() {
		return nil, shared.NewValidationError("Invalid line item recurrence")
	}
	now := time.Now()
	return &CustomLineItem{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Name:          name,
		Amount:        amount,
		Recurrence:    recurrence,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AppliesTo reports whether the item contributes a charge in the given period
func (i *CustomLineItem) AppliesTo(period Period) bool {
	switch i.Recurrence {
	case RecurrenceOneOff:
		return i.OneOffPeriod != nil && i.OneOffPeriod.Equal(period)
	case RecurrenceMonthly:
		if i.ActiveFrom != nil && period.Before(*i.ActiveFrom) {
			return false
		}
		if i.ActiveUntil != nil && period.After(*i.ActiveUntil) {
			return false
		}
		return true
	case RecurrenceYearly:
		return i.YearlyBillMonth == period.Month
	}
	return false
}

// ExpandLineItems expands the custom line items applicable to the requested
// period into charge entries, preserving input order. Items whose recurrence
// does not select the period contribute nothing; credits pass through.
func ExpandLineItems(period Period, items []*CustomLineItem) []LineEntry {
	entries := make([]LineEntry, 0, len(items))
	for _, item := range items {
		if item == nil || !item.AppliesTo(period) {
			continue
		}
		entries = append(entries, LineEntry{
			Category:    ChargeCategoryLineItem,
			Description: item.Name,
			Quantity:    decimalOne,
			UnitRate:    item.Amount,
			Amount:      item.Amount,
		})
	}
	return entries
}
