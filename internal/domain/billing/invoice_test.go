package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

func fullScenario(t *testing.T) (Period, ExternalData, BillingConfig) {
	t.Helper()
	period := periodOf(t, 2025, 6)

	plan, err := NewBillingPlan("Managed Pro", TermOneYear, "24x7", testRateCard())
	require.NoError(t, err)

	data := ExternalData{
		Company: CompanyInfo{
			AccountNumber: "ACME-001",
			Name:          "Acme Manufacturing",
			PlanName:      "Managed Pro",
		},
		Assets: []ExternalAsset{
			{ID: 1, Hostname: "ws-01", Type: "Workstation", BackupBytes: tb / 2},
			{ID: 2, Hostname: "ws-02", Type: "Workstation"},
			{ID: 3, Hostname: "srv-01", Type: "Server", BackupBytes: tb},
			{ID: 4, Hostname: "fw-01", Type: "Firewall"},
		},
		Users: []ExternalUser{
			{ID: 10, FullName: "Ada Byrne", Paid: true},
			{ID: 11, FullName: "Finn Ochoa", Paid: true},
			{ID: 12, FullName: "Scanner Account", Paid: false},
		},
		Tickets: []TicketRecord{
			{
				ID:             1,
				Number:         "T-100",
				Hours:          decimal.RequireFromString("3"),
				LastActivityAt: time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC),
			},
		},
	}

	monthly, err := NewCustomLineItem("ACME-001", "Colo rack", valueobject.NewMoneyUSD(30000), RecurrenceMonthly)
	require.NoError(t, err)

	cfg := BillingConfig{
		Plans:     map[string]*BillingPlan{"Managed Pro": plan},
		LineItems: []*CustomLineItem{monthly},
	}
	return period, data, cfg
}

func TestComputeInvoice_FullScenario(t *testing.T) {
	period, data, cfg := fullScenario(t)

	result, err := ComputeInvoice("ACME-001", period, data, cfg)
	require.NoError(t, err)

	assert.Equal(t, "ACME-001", result.AccountNumber)
	assert.Equal(t, "Acme Manufacturing", result.CompanyName)
	assert.Equal(t, "Managed Pro", result.PlanName)
	assert.Equal(t, "24x7", result.SupportLevel)
	assert.Empty(t, result.Warnings)

	// workstation 2x30.00, server 1x100.00, firewall 1x40.00, user 2x15.00
	assert.Equal(t, int64(6000), result.Subtotals[ChargeCategoryWorkstation].MinorUnits())
	assert.Equal(t, int64(10000), result.Subtotals[ChargeCategoryServer].MinorUnits())
	assert.Equal(t, int64(4000), result.Subtotals[ChargeCategoryFirewall].MinorUnits())
	assert.Equal(t, int64(3000), result.Subtotals[ChargeCategoryUser].MinorUnits())

	// 3 ticket hours with no prepaid pools at 150.00/h
	assert.Equal(t, int64(45000), result.Subtotals[ChargeCategoryTicketHours].MinorUnits())

	// backup: bases 5.00 + 25.00, usage 1.5 TB vs 1.0 TB allowance at 10.00/TB
	assert.Equal(t, int64(3500), result.Subtotals[ChargeCategoryBackup].MinorUnits())

	assert.Equal(t, int64(30000), result.Subtotals[ChargeCategoryLineItem].MinorUnits())

	// total is exactly the sum of entry amounts
	sum := valueobject.ZeroUSD()
	for _, entry := range result.Entries {
		sum = sum.MustAdd(entry.Amount)
	}
	assert.True(t, result.Total.Equals(sum))
	assert.Equal(t, int64(101500), result.Total.MinorUnits())
}

func TestComputeInvoice_Deterministic(t *testing.T) {
	period, data, cfg := fullScenario(t)

	first, err := ComputeInvoice("ACME-001", period, data, cfg)
	require.NoError(t, err)
	second, err := ComputeInvoice("ACME-001", period, data, cfg)
	require.NoError(t, err)

	assert.True(t, first.Total.Equals(second.Total))
	require.Equal(t, len(first.Entries), len(second.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].Description, second.Entries[i].Description)
		assert.True(t, first.Entries[i].Amount.Equals(second.Entries[i].Amount))
	}
}

func TestComputeInvoice_RepeatedAdditionIsExact(t *testing.T) {
	period := periodOf(t, 2025, 6)
	rates := testRateCard()
	rates.PerUserRate = valueobject.NewMoneyUSD(10)
	plan, err := NewBillingPlan("Penny Plan", TermMonthToMonth, "", rates)
	require.NoError(t, err)

	data := ExternalData{
		Company: CompanyInfo{AccountNumber: "ACME-002", PlanName: "Penny Plan"},
		Users: []ExternalUser{
			{ID: 1, FullName: "A", Paid: true},
			{ID: 2, FullName: "B", Paid: true},
			{ID: 3, FullName: "C", Paid: true},
		},
	}
	cfg := BillingConfig{Plans: map[string]*BillingPlan{"Penny Plan": plan}}

	result, err := ComputeInvoice("ACME-002", period, data, cfg)
	require.NoError(t, err)
	// 3 x 10 minor units is exactly 30, never 29 or 31
	assert.Equal(t, int64(30), result.Total.MinorUnits())
}

func TestComputeInvoice_ZeroUnitsNeverResolveRates(t *testing.T) {
	period := periodOf(t, 2025, 6)
	data := ExternalData{
		Company: CompanyInfo{AccountNumber: "ACME-003", Name: "Empty Co"},
	}

	// no plan, no override, but also nothing to bill
	result, err := ComputeInvoice("ACME-003", period, data, BillingConfig{})
	require.NoError(t, err)
	assert.True(t, result.Total.IsZero())
	assert.Empty(t, result.Entries)
}

func TestComputeInvoice_MissingRateSurfacesConfigurationError(t *testing.T) {
	period := periodOf(t, 2025, 6)
	data := ExternalData{
		Company: CompanyInfo{AccountNumber: "ACME-004"},
		Assets:  []ExternalAsset{{ID: 1, Hostname: "ws-01", Type: "Workstation"}},
	}

	_, err := ComputeInvoice("ACME-004", period, data, BillingConfig{})
	require.Error(t, err)
	assert.True(t, shared.IsConfigurationError(err))
}

func TestComputeInvoice_UnknownCompanyPlanWarns(t *testing.T) {
	period := periodOf(t, 2025, 6)
	data := ExternalData{
		Company: CompanyInfo{AccountNumber: "ACME-005", PlanName: "Retired Plan"},
		Users:   []ExternalUser{{ID: 1, FullName: "Ada Byrne", Paid: true}},
	}
	cfg := BillingConfig{
		Override: &ClientOverride{AccountNumber: "ACME-005", PerUserRate: moneyPtr(2000)},
	}

	result, err := ComputeInvoice("ACME-005", period, data, cfg)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnknownPlan, result.Warnings[0].Code)
	assert.Equal(t, int64(2000), result.Total.MinorUnits())
}

func TestComputeInvoice_CustomUnitsBillIndividually(t *testing.T) {
	period := periodOf(t, 2025, 6)
	plan, err := NewBillingPlan("Managed Pro", TermOneYear, "24x7", testRateCard())
	require.NoError(t, err)

	data := ExternalData{
		Company: CompanyInfo{AccountNumber: "ACME-006", PlanName: "Managed Pro"},
		Assets: []ExternalAsset{
			{ID: 1, Hostname: "ws-01", Type: "Workstation"},
			{ID: 2, Hostname: "legacy-app", Type: "Server"},
		},
	}
	cfg := BillingConfig{
		Plans: map[string]*BillingPlan{"Managed Pro": plan},
		AssetOverrides: []*AssetOverride{
			{ID: uuid.New(), AssetID: 2, Class: AssetClassCustom, CustomRate: moneyPtr(7500)},
		},
	}

	result, err := ComputeInvoice("ACME-006", period, data, cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(3000), result.Subtotals[ChargeCategoryWorkstation].MinorUnits())
	assert.Equal(t, int64(7500), result.Subtotals[ChargeCategoryCustom].MinorUnits())
	// the reclassified server no longer bills at the server rate
	_, hasServer := result.Subtotals[ChargeCategoryServer]
	assert.False(t, hasServer)
}

func TestComputeInvoice_ExcludedUnitsStayVisible(t *testing.T) {
	period := periodOf(t, 2025, 6)
	plan, err := NewBillingPlan("Managed Pro", TermOneYear, "24x7", testRateCard())
	require.NoError(t, err)

	data := ExternalData{
		Company: CompanyInfo{AccountNumber: "ACME-008", PlanName: "Managed Pro"},
		Assets: []ExternalAsset{
			{ID: 1, Hostname: "ws-01", Type: "Workstation"},
			{ID: 2, Hostname: "spare-01", Type: "Workstation"},
		},
	}
	cfg := BillingConfig{
		Plans: map[string]*BillingPlan{"Managed Pro": plan},
		AssetOverrides: []*AssetOverride{
			{ID: uuid.New(), AssetID: 2, Class: AssetClassNoCharge},
		},
	}

	result, err := ComputeInvoice("ACME-008", period, data, cfg)
	require.NoError(t, err)

	// the excluded workstation stays in the itemization but not the charges
	require.Len(t, result.AssetUnits, 2)
	assert.True(t, result.AssetUnits[1].Excluded())
	assert.Equal(t, int64(3000), result.Total.MinorUnits())
}

func TestComputeInvoice_Validation(t *testing.T) {
	data := ExternalData{Company: CompanyInfo{AccountNumber: "ACME-007"}}

	_, err := ComputeInvoice("", periodOf(t, 2025, 6), data, BillingConfig{})
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))

	_, err = ComputeInvoice("ACME-007", Period{Year: 2025, Month: time.Month(0)}, data, BillingConfig{})
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))
}
