package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
)

// ManualItemService manages billable assets and users that do not exist in
// the upstream inventory
type ManualItemService struct {
	manualItems billing.ManualItemRepository
}

// NewManualItemService creates a new ManualItemService
func NewManualItemService(manualItems billing.ManualItemRepository) *ManualItemService {
	return &ManualItemService{manualItems: manualItems}
}

// ManualAssetRequest represents a request to add a manual asset
type ManualAssetRequest struct {
	Hostname   string           `json:"hostname" binding:"required"`
	Class      string           `json:"class" binding:"required,item_class"`
	CustomRate *decimal.Decimal `json:"custom_rate"`
	Notes      string           `json:"notes"`
}

// ManualUserRequest represents a request to add a manual user
type ManualUserRequest struct {
	FullName   string           `json:"full_name" binding:"required"`
	Class      string           `json:"class" binding:"required,item_class"`
	CustomRate *decimal.Decimal `json:"custom_rate"`
	Notes      string           `json:"notes"`
}

// AddAsset adds a manual asset to an account
func (s *ManualItemService) AddAsset(ctx context.Context, accountNumber string, req ManualAssetRequest) (*billing.ManualAsset, error) {
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	class, ok := billing.ParseAssetClass(req.Class)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown asset class %q", req.Class))
	}
	rate, err := optionalMoney(req.CustomRate)
	if err != nil {
		return nil, err
	}
	if class == billing.AssetClassCustom && rate == nil {
		return nil, shared.NewValidationError("Custom class requires a custom rate")
	}

	now := time.Now()
	asset := &billing.ManualAsset{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Hostname:      req.Hostname,
		Class:         class,
		CustomRate:    rate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.manualItems.SaveManualAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// AddUser adds a manual user to an account
func (s *ManualItemService) AddUser(ctx context.Context, accountNumber string, req ManualUserRequest) (*billing.ManualUser, error) {
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	class, ok := billing.ParseUserClass(req.Class)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown user class %q", req.Class))
	}
	rate, err := optionalMoney(req.CustomRate)
	if err != nil {
		return nil, err
	}
	if class == billing.UserClassCustom && rate == nil {
		return nil, shared.NewValidationError("Custom class requires a custom rate")
	}

	now := time.Now()
	user := &billing.ManualUser{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		FullName:      req.FullName,
		Class:         class,
		CustomRate:    rate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.manualItems.SaveManualUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListAssets lists the manual assets of one account
func (s *ManualItemService) ListAssets(ctx context.Context, accountNumber string) ([]*billing.ManualAsset, error) {
	return s.manualItems.FindManualAssets(ctx, accountNumber)
}

// ListUsers lists the manual users of one account
func (s *ManualItemService) ListUsers(ctx context.Context, accountNumber string) ([]*billing.ManualUser, error) {
	return s.manualItems.FindManualUsers(ctx, accountNumber)
}

// DeleteAsset removes a manual asset
func (s *ManualItemService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return s.manualItems.DeleteManualAsset(ctx, id)
}

// DeleteUser removes a manual user
func (s *ManualItemService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.manualItems.DeleteManualUser(ctx, id)
}
