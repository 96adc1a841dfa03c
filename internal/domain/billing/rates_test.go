package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

func moneyPtr(minorUnits int64) *valueobject.Money {
	m := valueobject.NewMoneyUSD(minorUnits)
	return &m
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEffectiveRates_OverrideBeatsPlan(t *testing.T) {
	plan, err := NewBillingPlan("Managed Pro", TermOneYear, "24x7", testRateCard())
	require.NoError(t, err)

	override := &ClientOverride{
		AccountNumber: "ACME-001",
		PerServerRate: moneyPtr(8000),
	}

	rates, err := ResolveRates(plan, override, nil)
	require.NoError(t, err)

	serverRate, err := rates.Rate(CategoryServer)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), serverRate.MinorUnits())

	// categories with no override fall through to the plan
	vmRate, err := rates.Rate(CategoryVM)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), vmRate.MinorUnits())
}

func TestEffectiveRates_NoPlanNoOverrideIsConfigurationError(t *testing.T) {
	rates, err := ResolveRates(nil, nil, nil)
	require.NoError(t, err)

	_, err = rates.Rate(CategoryWorkstation)
	require.Error(t, err)
	assert.True(t, shared.IsConfigurationError(err))

	_, err = rates.HourlyTicketRate()
	assert.True(t, shared.IsConfigurationError(err))

	_, err = rates.BackupIncludedTB()
	assert.True(t, shared.IsConfigurationError(err))
}

func TestEffectiveRates_NoPlanButFullyOverridden(t *testing.T) {
	override := &ClientOverride{
		AccountNumber:    "ACME-002",
		PerUserRate:      moneyPtr(1200),
		HourlyTicketRate: moneyPtr(12500),
	}

	rates, err := ResolveRates(nil, override, nil)
	require.NoError(t, err)

	userRate, err := rates.Rate(CategoryUser)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), userRate.MinorUnits())

	hourly, err := rates.HourlyTicketRate()
	require.NoError(t, err)
	assert.Equal(t, int64(12500), hourly.MinorUnits())

	// a category the client never uses is only an error when asked for
	_, err = rates.Rate(CategoryFirewall)
	assert.True(t, shared.IsConfigurationError(err))
}

func TestResolveRates_PlanNameOverride(t *testing.T) {
	standard, err := NewBillingPlan("Standard", TermMonthToMonth, "8x5", testRateCard())
	require.NoError(t, err)

	premiumRates := testRateCard()
	premiumRates.PerServerRate = valueobject.NewMoneyUSD(20000)
	premium, err := NewBillingPlan("Premium", TermOneYear, "24x7", premiumRates)
	require.NoError(t, err)

	catalog := map[string]*BillingPlan{"Standard": standard, "Premium": premium}
	override := &ClientOverride{AccountNumber: "ACME-003", PlanName: strPtr("Premium")}

	rates, err := ResolveRates(standard, override, catalog)
	require.NoError(t, err)
	assert.Equal(t, "Premium", rates.Plan().Name)

	serverRate, err := rates.Rate(CategoryServer)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), serverRate.MinorUnits())
}

func TestResolveRates_UnknownPlanNameOverride(t *testing.T) {
	standard, err := NewBillingPlan("Standard", TermMonthToMonth, "8x5", testRateCard())
	require.NoError(t, err)

	override := &ClientOverride{AccountNumber: "ACME-004", PlanName: strPtr("Gone")}
	_, err = ResolveRates(standard, override, map[string]*BillingPlan{"Standard": standard})
	require.Error(t, err)
	assert.True(t, shared.IsConfigurationError(err))
}

func TestEffectiveRates_BackupFields(t *testing.T) {
	plan, err := NewBillingPlan("Managed Pro", TermOneYear, "24x7", testRateCard())
	require.NoError(t, err)

	override := &ClientOverride{
		AccountNumber:    "ACME-005",
		BackupIncludedTB: decPtr("2"),
	}

	rates, err := ResolveRates(plan, override, nil)
	require.NoError(t, err)

	included, err := rates.BackupIncludedTB()
	require.NoError(t, err)
	assert.True(t, included.Equal(decimal.RequireFromString("2")))

	wsFee, err := rates.BackupBaseFee(CategoryWorkstation)
	require.NoError(t, err)
	assert.Equal(t, int64(500), wsFee.MinorUnits())

	_, err = rates.BackupBaseFee(CategoryVM)
	assert.True(t, shared.IsConfigurationError(err))
}

func TestEffectiveRates_PrepaidPoolsDefaultToZero(t *testing.T) {
	rates, err := ResolveRates(nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, rates.PrepaidHoursMonthly().IsZero())
	assert.True(t, rates.PrepaidHoursYearly().IsZero())

	override := &ClientOverride{
		AccountNumber:       "ACME-006",
		PrepaidHoursMonthly: decPtr("5"),
		PrepaidHoursYearly:  decPtr("10"),
	}
	rates, err = ResolveRates(nil, override, nil)
	require.NoError(t, err)
	assert.True(t, rates.PrepaidHoursMonthly().Equal(decimal.RequireFromString("5")))
	assert.True(t, rates.PrepaidHoursYearly().Equal(decimal.RequireFromString("10")))
}
