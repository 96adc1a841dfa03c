package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ContractTerm is the contract length a rate card applies to. Each plan name
// may carry a distinct rate card per term.
type ContractTerm string

const (
	TermMonthToMonth ContractTerm = "month_to_month"
	TermOneYear      ContractTerm = "1_year"
	TermTwoYear      ContractTerm = "2_year"
	TermThreeYear    ContractTerm = "3_year"
)

// String returns the string representation of the term
func (t ContractTerm) String() string {
	return string(t)
}

// IsValid returns true if the term is known
func (t ContractTerm) IsValid() bool {
	switch t {
	case TermMonthToMonth, TermOneYear, TermTwoYear, TermThreeYear:
		return true
	}
	return false
}

// Years returns the term length in years, 0 for month-to-month
func (t ContractTerm) Years() int {
	switch t {
	case TermOneYear:
		return 1
	case TermTwoYear:
		return 2
	case TermThreeYear:
		return 3
	}
	return 0
}

// ParseContractTerm maps an upstream term string to a contract term.
// The inventory source uses display names like "Month to Month" and "1-Year".
func ParseContractTerm(s string) (ContractTerm, bool) {
	switch normalizeTypeName(s) {
	case "month_to_month", "month to month", "":
		return TermMonthToMonth, true
	case "1_year", "1-year":
		return TermOneYear, true
	case "2_year", "2-year":
		return TermTwoYear, true
	case "3_year", "3-year":
		return TermThreeYear, true
	}
	return "", false
}

// RateCard holds the per-category default unit rates of a plan for one
// contract term. Backup allowance is expressed in TB per backed-up device.
type RateCard struct {
	PerUserRate              valueobject.Money
	PerWorkstationRate       valueobject.Money
	PerServerRate            valueobject.Money
	PerVMRate                valueobject.Money
	PerSwitchRate            valueobject.Money
	PerFirewallRate          valueobject.Money
	HourlyTicketRate         valueobject.Money
	BackupBaseFeeWorkstation valueobject.Money
	BackupBaseFeeServer      valueobject.Money
	BackupIncludedTB         decimal.Decimal
	BackupPerTBFee           valueobject.Money
}

// Rate returns the unit rate for a rate-card category
func (rc RateCard) Rate(category BillingCategory) (valueobject.Money, bool) {
	switch category {
	case CategoryUser:
		return rc.PerUserRate, true
	case CategoryWorkstation:
		return rc.PerWorkstationRate, true
	case CategoryServer:
		return rc.PerServerRate, true
	case CategoryVM:
		return rc.PerVMRate, true
	case CategorySwitch:
		return rc.PerSwitchRate, true
	case CategoryFirewall:
		return rc.PerFirewallRate, true
	}
	return valueobject.Money{}, false
}

// BillingPlan is a named rate card for one contract term. Plans are owned by
// the platform operator; a (name, term) pair is unique. A plan must not be
// deleted while an active customer still resolves to it.
type BillingPlan struct {
	ID           uuid.UUID
	Name         string
	Term         ContractTerm
	SupportLevel string
	Rates        RateCard
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBillingPlan creates a validated billing plan
func NewBillingPlan(name string, term ContractTerm, supportLevel string, rates RateCard) (*BillingPlan, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan name cannot be empty")
	}
	if !term.IsValid() {
		return nil, shared.NewDomainError("INVALID_TERM", "Invalid contract term")
	}
	if rates.BackupIncludedTB.Sign() <= 0 {
		return nil, shared.NewValidationError("Backup included TB must be positive")
	}
	now := time.Now()
	return &BillingPlan{
		ID:           uuid.New(),
		Name:         name,
		Term:         term,
		SupportLevel: supportLevel,
		Rates:        rates,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ContractEnd returns the contract end date for a contract that started at
// start under the given term. Month-to-month contracts have no end date.
func ContractEnd(start time.Time, term ContractTerm) (time.Time, bool) {
	years := term.Years()
	if years == 0 {
		return time.Time{}, false
	}
	return start.AddDate(years, 0, -1), true
}
