package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledger/backend/internal/domain/shared"
)

// PlanRepository defines the interface for billing plan persistence
type PlanRepository interface {
	// FindByID finds a plan by ID
	FindByID(ctx context.Context, id uuid.UUID) (*BillingPlan, error)

	// FindByName finds a plan by its unique name
	FindByName(ctx context.Context, name string) (*BillingPlan, error)

	// FindAll lists plans with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]BillingPlan, error)

	// FindAllByName loads the plan catalog for one contract term keyed by
	// plan name
	FindAllByName(ctx context.Context, term ContractTerm) (map[string]*BillingPlan, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *BillingPlan) error

	// Delete removes a plan; implementations must refuse while any client
	// override or company still references it
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts plans with filtering
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OverrideRepository defines the interface for client override persistence
type OverrideRepository interface {
	// FindByAccount finds the override row for an account, ErrNotFound when
	// the account has none
	FindByAccount(ctx context.Context, accountNumber string) (*ClientOverride, error)

	// FindAll lists overrides with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]ClientOverride, error)

	// CountByPlanName counts overrides re-pointing clients at a plan name
	CountByPlanName(ctx context.Context, planName string) (int64, error)

	// Save creates or updates an account's override row
	Save(ctx context.Context, override *ClientOverride) error

	// DeleteByAccount removes an account's override row
	DeleteByAccount(ctx context.Context, accountNumber string) error
}

// ItemOverrideRepository defines the interface for per-asset and per-user
// override persistence
type ItemOverrideRepository interface {
	// FindAssetOverrides lists the asset overrides for an account
	FindAssetOverrides(ctx context.Context, accountNumber string) ([]*AssetOverride, error)

	// FindUserOverrides lists the user overrides for an account
	FindUserOverrides(ctx context.Context, accountNumber string) ([]*UserOverride, error)

	// SaveAssetOverride creates or updates an asset override
	SaveAssetOverride(ctx context.Context, override *AssetOverride) error

	// SaveUserOverride creates or updates a user override
	SaveUserOverride(ctx context.Context, override *UserOverride) error

	// DeleteAssetOverride removes an asset override
	DeleteAssetOverride(ctx context.Context, id uuid.UUID) error

	// DeleteUserOverride removes a user override
	DeleteUserOverride(ctx context.Context, id uuid.UUID) error
}

// ManualItemRepository defines the interface for manually added asset and
// user persistence
type ManualItemRepository interface {
	// FindManualAssets lists the manual assets for an account
	FindManualAssets(ctx context.Context, accountNumber string) ([]*ManualAsset, error)

	// FindManualUsers lists the manual users for an account
	FindManualUsers(ctx context.Context, accountNumber string) ([]*ManualUser, error)

	// SaveManualAsset creates or updates a manual asset
	SaveManualAsset(ctx context.Context, asset *ManualAsset) error

	// SaveManualUser creates or updates a manual user
	SaveManualUser(ctx context.Context, user *ManualUser) error

	// DeleteManualAsset removes a manual asset
	DeleteManualAsset(ctx context.Context, id uuid.UUID) error

	// DeleteManualUser removes a manual user
	DeleteManualUser(ctx context.Context, id uuid.UUID) error
}

// LineItemRepository defines the interface for custom line item persistence
type LineItemRepository interface {
	// FindByID finds a line item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomLineItem, error)

	// FindByAccount lists an account's line items
	FindByAccount(ctx context.Context, accountNumber string) ([]*CustomLineItem, error)

	// Save creates or updates a line item
	Save(ctx context.Context, item *CustomLineItem) error

	// Delete removes a line item
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository defines the interface for computed invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByAccountAndPeriod finds the invoice for one account and period
	FindByAccountAndPeriod(ctx context.Context, accountNumber string, period Period) (*Invoice, error)

	// FindByPeriod lists all invoices for a period
	FindByPeriod(ctx context.Context, period Period) ([]*Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes a draft invoice
	Delete(ctx context.Context, id uuid.UUID) error
}
