package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

var decimalOne = decimal.NewFromInt(1)

// Warning codes attached to a computed invoice
const (
	WarningStaleOverride    = "STALE_OVERRIDE"
	WarningUnknownAssetType = "UNKNOWN_ASSET_TYPE"
	WarningUnknownPlan      = "UNKNOWN_PLAN"
)

// Warning is a non-fatal finding raised while computing an invoice. Warnings
// never change the invoice total; they exist so an operator can fix the
// configuration drift they describe.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ChargeCategory names a section of the invoice for grouping and subtotals
type ChargeCategory string

const (
	ChargeCategoryUser        ChargeCategory = "user"
	ChargeCategoryWorkstation ChargeCategory = "workstation"
	ChargeCategoryServer      ChargeCategory = "server"
	ChargeCategoryVM          ChargeCategory = "vm"
	ChargeCategorySwitch      ChargeCategory = "switch"
	ChargeCategoryFirewall    ChargeCategory = "firewall"
	ChargeCategoryCustom      ChargeCategory = "custom"
	ChargeCategoryTicketHours ChargeCategory = "ticket_hours"
	ChargeCategoryBackup      ChargeCategory = "backup"
	ChargeCategoryLineItem    ChargeCategory = "line_items"
)

func chargeCategoryFor(c BillingCategory) ChargeCategory {
	return ChargeCategory(string(c))
}

// LineEntry is one priced line on a computed invoice
type LineEntry struct {
	Category    ChargeCategory    `json:"category"`
	Description string            `json:"description"`
	Quantity    decimal.Decimal   `json:"quantity"`
	UnitRate    valueobject.Money `json:"unit_rate"`
	Amount      valueobject.Money `json:"amount"`
}

// InvoiceResult is a fully computed invoice for one client and period
type InvoiceResult struct {
	AccountNumber string `json:"account_number"`
	CompanyName   string `json:"company_name"`
	Period        Period `json:"period"`
	PlanName      string `json:"plan_name"`
	SupportLevel  string `json:"support_level"`

	// AssetUnits and UserUnits are the full itemization, including excluded
	// units that contribute no charge entry.
	AssetUnits []BillableUnit `json:"asset_units"`
	UserUnits  []BillableUnit `json:"user_units"`

	Entries   []LineEntry                          `json:"entries"`
	Subtotals map[ChargeCategory]valueobject.Money `json:"subtotals"`
	Total     valueobject.Money                    `json:"total"`

	Hours    *HoursBreakdown  `json:"hours,omitempty"`
	Backup   *BackupBreakdown `json:"backup,omitempty"`
	Warnings []Warning        `json:"warnings"`

	ComputedAt time.Time `json:"computed_at"`
}

// ComputeInvoice runs the full billing pipeline for one client over one
// period: resolve rates, aggregate quantities, price assets and users, charge
// ticket hours against prepaid pools, price backup, expand custom line items,
// and total it all up. The computation is pure: everything it needs arrives
// in data and cfg, and the same inputs always produce the same invoice.
func ComputeInvoice(accountNumber string, period Period, data ExternalData, cfg BillingConfig) (*InvoiceResult, error) {
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	result := &InvoiceResult{
		AccountNumber: accountNumber,
		CompanyName:   data.Company.Name,
		Period:        period,
		Subtotals:     make(map[ChargeCategory]valueobject.Money),
		Total:         valueobject.ZeroUSD(),
		ComputedAt:    time.Now().UTC(),
	}

	var plan *BillingPlan
	if data.Company.PlanName != "" {
		var ok bool
		plan, ok = cfg.Plans[data.Company.PlanName]
		if !ok {
			result.Warnings = append(result.Warnings, Warning{
				Code:    WarningUnknownPlan,
				Message: fmt.Sprintf("Company references unknown billing plan %q", data.Company.PlanName),
			})
		}
	}
	rates, err := ResolveRates(plan, cfg.Override, cfg.Plans)
	if err != nil {
		return nil, err
	}
	if p := rates.Plan(); p != nil {
		result.PlanName = p.Name
	}
	result.SupportLevel = rates.SupportLevel()

	agg := AggregateQuantities(data, cfg)
	result.Warnings = append(result.Warnings, agg.Warnings...)
	result.AssetUnits = agg.Assets
	result.UserUnits = agg.Users

	assetEntries, err := assembleUnitEntries(agg.Assets, rates)
	if err != nil {
		return nil, err
	}
	userEntries, err := assembleUnitEntries(agg.Users, rates)
	if err != nil {
		return nil, err
	}
	result.Entries = append(result.Entries, assetEntries...)
	result.Entries = append(result.Entries, userEntries...)

	hours, err := ComputeTicketHours(period, data.Tickets, data.HoursUsedEarlierInYear, rates)
	if err != nil {
		return nil, err
	}
	result.Hours = hours
	if hours.BillableHours.IsPositive() {
		result.Entries = append(result.Entries, LineEntry{
			Category:    ChargeCategoryTicketHours,
			Description: fmt.Sprintf("Support hours (%s of %s billable)", hours.BillableHours, hours.TotalHours),
			Quantity:    hours.BillableHours,
			UnitRate:    hours.HourlyRate,
			Amount:      hours.Amount,
		})
	}

	backup, err := ComputeBackup(data.Assets, rates)
	if err != nil {
		return nil, err
	}
	result.Backup = backup
	if backup.WorkstationCount > 0 || backup.ServerCount > 0 {
		result.Entries = append(result.Entries, LineEntry{
			Category:    ChargeCategoryBackup,
			Description: fmt.Sprintf("Backup protection (%d devices, %s TB used)", backup.WorkstationCount+backup.ServerCount, backup.UsageTB),
			Quantity:    decimalOne,
			UnitRate:    backup.Amount,
			Amount:      backup.Amount,
		})
	}

	result.Entries = append(result.Entries, ExpandLineItems(period, cfg.LineItems)...)

	for _, entry := range result.Entries {
		subtotal, ok := result.Subtotals[entry.Category]
		if !ok {
			subtotal = valueobject.ZeroUSD()
		}
		result.Subtotals[entry.Category] = subtotal.MustAdd(entry.Amount)
		result.Total = result.Total.MustAdd(entry.Amount)
	}

	return result, nil
}

// assembleUnitEntries turns classified units into invoice lines: one grouped
// line per rate-card category, one individual line per custom-rated unit.
// Rates resolve lazily, so a category with zero units never errors.
func assembleUnitEntries(units []BillableUnit, rates *EffectiveRates) ([]LineEntry, error) {
	counts := make(map[BillingCategory]int64)
	var custom []BillableUnit

	for _, unit := range units {
		if unit.Excluded() {
			continue
		}
		if unit.AssetClass != nil {
			if category, ok := unit.AssetClass.Category(); ok {
				counts[category]++
				continue
			}
			if *unit.AssetClass == AssetClassCustom {
				custom = append(custom, unit)
			}
			continue
		}
		if unit.UserClass != nil {
			switch *unit.UserClass {
			case UserClassPaid:
				counts[CategoryUser]++
			case UserClassCustom:
				custom = append(custom, unit)
			}
		}
	}

	var entries []LineEntry
	categories := append([]BillingCategory{CategoryUser}, AssetCategories()...)
	for _, category := range categories {
		count := counts[category]
		if count == 0 {
			continue
		}
		rate, err := rates.Rate(category)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LineEntry{
			Category:    chargeCategoryFor(category),
			Description: fmt.Sprintf("%s (%d)", category.DisplayName(), count),
			Quantity:    decimal.NewFromInt(count),
			UnitRate:    rate,
			Amount:      rate.MultiplyByInt(count),
		})
	}

	for _, unit := range custom {
		// A custom unit with no rate configured bills at zero rather than
		// failing the whole invoice.
		amount := valueobject.ZeroUSD()
		if unit.CustomRate != nil {
			amount = *unit.CustomRate
		}
		entries = append(entries, LineEntry{
			Category:    ChargeCategoryCustom,
			Description: unit.Name,
			Quantity:    decimalOne,
			UnitRate:    amount,
			Amount:      amount,
		})
	}

	return entries, nil
}
