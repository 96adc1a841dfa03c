package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// EffectiveRates is the merged view of a client's pricing: the plan selected
// for the client (after any plan-name override) combined with the client's
// field-level overrides. Resolution is lazy so a client with no plan still
// bills cleanly as long as every category it actually uses is overridden.
type EffectiveRates struct {
	plan     *BillingPlan
	override *ClientOverride
}

// ResolveRates builds the effective rate view for one client. A plan-name
// override re-points plan selection before anything else; an unknown name in
// the override is a configuration error because the client asked for it
// explicitly.
func ResolveRates(plan *BillingPlan, override *ClientOverride, catalog map[string]*BillingPlan) (*EffectiveRates, error) {
	effective := plan
	if override != nil && override.PlanName != nil {
		named, ok := catalog[*override.PlanName]
		if !ok {
			return nil, shared.NewConfigurationError(fmt.Sprintf("Override references unknown billing plan %q", *override.PlanName))
		}
		effective = named
	}
	return &EffectiveRates{plan: effective, override: override}, nil
}

// Plan returns the plan backing this rate view, nil when the client has none
func (r *EffectiveRates) Plan() *BillingPlan {
	return r.plan
}

// Rate resolves the per-unit rate for a billing category. Client overrides
// win over the plan rate card; a category with neither is a configuration
// error, surfaced only when the category is actually priced.
func (r *EffectiveRates) Rate(category BillingCategory) (valueobject.Money, error) {
	if rate := r.override.CategoryRate(category); rate != nil {
		return *rate, nil
	}
	if r.plan != nil {
		if rate, ok := r.plan.Rates.Rate(category); ok {
			return rate, nil
		}
	}
	return valueobject.Money{}, shared.NewConfigurationError(fmt.Sprintf("No rate configured for category %s", category))
}

// HourlyTicketRate resolves the rate applied to billable ticket hours
func (r *EffectiveRates) HourlyTicketRate() (valueobject.Money, error) {
	if r.override != nil && r.override.HourlyTicketRate != nil {
		return *r.override.HourlyTicketRate, nil
	}
	if r.plan != nil {
		return r.plan.Rates.HourlyTicketRate, nil
	}
	return valueobject.Money{}, shared.NewConfigurationError("No hourly ticket rate configured")
}

// BackupBaseFee resolves the per-device backup base fee for the category,
// which must be workstation or server
func (r *EffectiveRates) BackupBaseFee(category BillingCategory) (valueobject.Money, error) {
	switch category {
	case CategoryWorkstation:
		if r.override != nil && r.override.BackupBaseFeeWorkstation != nil {
			return *r.override.BackupBaseFeeWorkstation, nil
		}
		if r.plan != nil {
			return r.plan.Rates.BackupBaseFeeWorkstation, nil
		}
	case CategoryServer:
		if r.override != nil && r.override.BackupBaseFeeServer != nil {
			return *r.override.BackupBaseFeeServer, nil
		}
		if r.plan != nil {
			return r.plan.Rates.BackupBaseFeeServer, nil
		}
	default:
		return valueobject.Money{}, shared.NewConfigurationError(fmt.Sprintf("Backup base fee is not defined for category %s", category))
	}
	return valueobject.Money{}, shared.NewConfigurationError(fmt.Sprintf("No backup base fee configured for category %s", category))
}

// BackupIncludedTB resolves the terabytes of backup storage included per
// backed-up device
func (r *EffectiveRates) BackupIncludedTB() (decimal.Decimal, error) {
	if r.override != nil && r.override.BackupIncludedTB != nil {
		return *r.override.BackupIncludedTB, nil
	}
	if r.plan != nil {
		return r.plan.Rates.BackupIncludedTB, nil
	}
	return decimal.Decimal{}, shared.NewConfigurationError("No included backup storage configured")
}

// BackupPerTBFee resolves the overage fee per terabyte beyond the allowance
func (r *EffectiveRates) BackupPerTBFee() (valueobject.Money, error) {
	if r.override != nil && r.override.BackupPerTBFee != nil {
		return *r.override.BackupPerTBFee, nil
	}
	if r.plan != nil {
		return r.plan.Rates.BackupPerTBFee, nil
	}
	return valueobject.Money{}, shared.NewConfigurationError("No backup overage fee configured")
}

// PrepaidHoursMonthly returns the client's monthly prepaid hour pool, zero
// when not configured
func (r *EffectiveRates) PrepaidHoursMonthly() decimal.Decimal {
	if r.override != nil && r.override.PrepaidHoursMonthly != nil {
		return *r.override.PrepaidHoursMonthly
	}
	return decimal.Zero
}

// PrepaidHoursYearly returns the client's yearly prepaid hour pool, zero
// when not configured
func (r *EffectiveRates) PrepaidHoursYearly() decimal.Decimal {
	if r.override != nil && r.override.PrepaidHoursYearly != nil {
		return *r.override.PrepaidHoursYearly
	}
	return decimal.Zero
}

// SupportLevel resolves the displayed support level, override first
func (r *EffectiveRates) SupportLevel() string {
	if r.override != nil && r.override.SupportLevel != nil {
		return *r.override.SupportLevel
	}
	if r.plan != nil {
		return r.plan.SupportLevel
	}
	return ""
}
