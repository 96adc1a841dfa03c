package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExternalAsset is one device as reported by the inventory source. Type is
// the raw upstream type string; classification happens during aggregation so
// per-asset overrides can reclassify before any rate is chosen.
type ExternalAsset struct {
	ID       int64
	Hostname string
	Type     string
	// BackupBytes is the exact byte count the backup provider reported for
	// the device, zero when the device is not backed up.
	BackupBytes int64
}

// ExternalUser is one user as reported by the inventory source
type ExternalUser struct {
	ID       int64
	FullName string
	Email    string
	Paid     bool
}

// TicketRecord is a support ticket closed in the billing period with the
// hours logged against it
type TicketRecord struct {
	ID             int64           `json:"id"`
	Number         string          `json:"number"`
	Subject        string          `json:"subject"`
	Hours          decimal.Decimal `json:"hours"`
	LastActivityAt time.Time       `json:"last_activity_at"`
}

// CompanyInfo identifies the client company being invoiced
type CompanyInfo struct {
	AccountNumber string
	Name          string
	PlanName      string
	ContractTerm  ContractTerm
	ContractStart time.Time
}

// ExternalData is the full upstream snapshot an invoice computation runs
// over. The engine never fetches: callers assemble this from the inventory,
// ticketing, and backup sources and the computation stays deterministic.
type ExternalData struct {
	Company CompanyInfo
	Assets  []ExternalAsset
	Users   []ExternalUser
	Tickets []TicketRecord

	// HoursUsedEarlierInYear is the sum of billable-window ticket hours the
	// client consumed in the same calendar year before this period. It draws
	// down the yearly prepaid pool.
	HoursUsedEarlierInYear decimal.Decimal
}

// BillingConfig is the full pricing configuration an invoice computation
// runs under
type BillingConfig struct {
	// Plans is the plan catalog keyed by plan name, used to resolve both the
	// company's plan and any plan-name override. Callers load the rate card
	// variant matching the company's contract term.
	Plans map[string]*BillingPlan

	Override       *ClientOverride
	AssetOverrides []*AssetOverride
	UserOverrides  []*UserOverride
	ManualAssets   []*ManualAsset
	ManualUsers    []*ManualUser
	LineItems      []*CustomLineItem
}
