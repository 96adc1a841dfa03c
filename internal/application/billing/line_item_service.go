package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// LineItemService manages custom line items
type LineItemService struct {
	lineItems billing.LineItemRepository
}

// NewLineItemService creates a new LineItemService
func NewLineItemService(lineItems billing.LineItemRepository) *LineItemService {
	return &LineItemService{lineItems: lineItems}
}

// LineItemRequest represents a request to create or update a custom line
// item. Amount is a major-unit decimal; negative amounts are credits.
type LineItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Recurrence  string          `json:"recurrence" binding:"required,recurrence"`

	// one_off
	Year  int `json:"year"`
	Month int `json:"month"`
	// monthly window, optional
	ActiveFromYear   int `json:"active_from_year"`
	ActiveFromMonth  int `json:"active_from_month"`
	ActiveUntilYear  int `json:"active_until_year"`
	ActiveUntilMonth int `json:"active_until_month"`
	// yearly
	BillMonth int `json:"bill_month"`
}

// Create adds a custom line item to an account
func (s *LineItemService) Create(ctx context.Context, accountNumber string, req LineItemRequest) (*billing.CustomLineItem, error) {
	item, err := s.buildItem(accountNumber, req)
	if err != nil {
		return nil, err
	}
	if err := s.lineItems.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces a line item's fields
func (s *LineItemService) Update(ctx context.Context, id uuid.UUID, req LineItemRequest) (*billing.CustomLineItem, error) {
	existing, err := s.lineItems.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.buildItem(existing.AccountNumber, req)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	if err := s.lineItems.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List lists an account's line items
func (s *LineItemService) List(ctx context.Context, accountNumber string) ([]*billing.CustomLineItem, error) {
	return s.lineItems.FindByAccount(ctx, accountNumber)
}

// Delete removes a line item
func (s *LineItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.lineItems.Delete(ctx, id)
}

func (s *LineItemService) buildItem(accountNumber string, req LineItemRequest) (*billing.CustomLineItem, error) {
	amount, err := valueobject.NewMoneyFromDecimal(req.Amount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	recurrence := billing.Recurrence(req.Recurrence)
	item, err := billing.NewCustomLineItem(accountNumber, req.Name, amount, recurrence)
	if err != nil {
		return nil, err
	}
	item.Description = req.Description

	switch recurrence {
	case billing.RecurrenceOneOff:
		period, err := billing.NewPeriod(req.Year, req.Month)
		if err != nil {
			return nil, err
		}
		item.OneOffPeriod = &period
	case billing.RecurrenceMonthly:
		if req.ActiveFromYear != 0 || req.ActiveFromMonth != 0 {
			from, err := billing.NewPeriod(req.ActiveFromYear, req.ActiveFromMonth)
			if err != nil {
				return nil, err
			}
			item.ActiveFrom = &from
		}
		if req.ActiveUntilYear != 0 || req.ActiveUntilMonth != 0 {
			until, err := billing.NewPeriod(req.ActiveUntilYear, req.ActiveUntilMonth)
			if err != nil {
				return nil, err
			}
			item.ActiveUntil = &until
		}
		if item.ActiveFrom != nil && item.ActiveUntil != nil && item.ActiveUntil.Before(*item.ActiveFrom) {
			return nil, shared.NewValidationError("Active window end precedes its start")
		}
	case billing.RecurrenceYearly:
		if req.BillMonth < 1 || req.BillMonth > 12 {
			return nil, shared.NewValidationError(fmt.Sprintf("Invalid yearly bill month: %d", req.BillMonth))
		}
		item.YearlyBillMonth = time.Month(req.BillMonth)
	}
	return item, nil
}
