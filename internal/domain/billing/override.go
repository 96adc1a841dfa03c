package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ClientOverride supersedes plan defaults for a single customer. Every field
// except the account number is optional: a nil pointer means "no override,
// fall through to the plan", which keeps precedence resolution exhaustive
// without sentinel values. At most one row exists per customer.
type ClientOverride struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`

	// PlanName re-points the customer at a different plan before term rate
	// selection happens.
	PlanName     *string `json:"plan_name,omitempty"`
	SupportLevel *string `json:"support_level,omitempty"`

	PerUserRate        *valueobject.Money `json:"per_user_rate,omitempty"`
	PerWorkstationRate *valueobject.Money `json:"per_workstation_rate,omitempty"`
	PerServerRate      *valueobject.Money `json:"per_server_rate,omitempty"`
	PerVMRate          *valueobject.Money `json:"per_vm_rate,omitempty"`
	PerSwitchRate      *valueobject.Money `json:"per_switch_rate,omitempty"`
	PerFirewallRate    *valueobject.Money `json:"per_firewall_rate,omitempty"`
	HourlyTicketRate   *valueobject.Money `json:"hourly_ticket_rate,omitempty"`

	BackupBaseFeeWorkstation *valueobject.Money `json:"backup_base_fee_workstation,omitempty"`
	BackupBaseFeeServer      *valueobject.Money `json:"backup_base_fee_server,omitempty"`
	BackupIncludedTB         *decimal.Decimal   `json:"backup_included_tb,omitempty"`
	BackupPerTBFee           *valueobject.Money `json:"backup_per_tb_fee,omitempty"`

	PrepaidHoursMonthly *decimal.Decimal `json:"prepaid_hours_monthly,omitempty"`
	PrepaidHoursYearly  *decimal.Decimal `json:"prepaid_hours_yearly,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRate returns the overridden unit rate for a rate-card category,
// or nil when the customer has no override for it.
func (o *ClientOverride) CategoryRate(category BillingCategory) *valueobject.Money {
	if o == nil {
		return nil
	}
	switch category {
	case CategoryUser:
		return o.PerUserRate
	case CategoryWorkstation:
		return o.PerWorkstationRate
	case CategoryServer:
		return o.PerServerRate
	case CategoryVM:
		return o.PerVMRate
	case CategorySwitch:
		return o.PerSwitchRate
	case CategoryFirewall:
		return o.PerFirewallRate
	}
	return nil
}

// AssetOverride reclassifies a single upstream asset, keyed by the asset's
// stable upstream identifier. A stale override (asset no longer present
// upstream) is ignored with a warning, never treated as an addition.
type AssetOverride struct {
	ID            uuid.UUID          `json:"id"`
	AccountNumber string             `json:"account_number"`
	AssetID       int64              `json:"asset_id"`
	Class         AssetClass         `json:"class"`
	CustomRate    *valueobject.Money `json:"custom_rate,omitempty"` // only meaningful when Class is custom
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// UserOverride reclassifies a single upstream user/contact, keyed by the
// user's stable upstream identifier.
type UserOverride struct {
	ID            uuid.UUID          `json:"id"`
	AccountNumber string             `json:"account_number"`
	UserID        int64              `json:"user_id"`
	Class         UserClass          `json:"class"`
	CustomRate    *valueobject.Money `json:"custom_rate,omitempty"` // only meaningful when Class is custom
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ManualAsset is a customer-scoped billable asset that does not exist in the
// upstream inventory. Manual items live in their own identifier space so an
// exclusion override on an upstream id can never collide with one.
type ManualAsset struct {
	ID            uuid.UUID          `json:"id"`
	AccountNumber string             `json:"account_number"`
	Hostname      string             `json:"hostname"`
	Class         AssetClass         `json:"class"`
	CustomRate    *valueobject.Money `json:"custom_rate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ManualUser is a customer-scoped billable user not present upstream
type ManualUser struct {
	ID            uuid.UUID          `json:"id"`
	AccountNumber string             `json:"account_number"`
	FullName      string             `json:"full_name"`
	Class         UserClass          `json:"class"`
	CustomRate    *valueobject.Money `json:"custom_rate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
