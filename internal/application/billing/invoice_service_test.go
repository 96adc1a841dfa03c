package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

type invoiceServiceMocks struct {
	companies     *MockCompanyRepository
	assets        *MockAssetRepository
	contacts      *MockContactRepository
	tickets       *MockTicketRepository
	plans         *MockPlanRepository
	overrides     *MockOverrideRepository
	itemOverrides *MockItemOverrideRepository
	manualItems   *MockManualItemRepository
	lineItems     *MockLineItemRepository
	invoices      *MockInvoiceRepository
}

func newInvoiceService(t *testing.T) (*InvoiceService, *invoiceServiceMocks) {
	t.Helper()
	m := &invoiceServiceMocks{
		companies:     new(MockCompanyRepository),
		assets:        new(MockAssetRepository),
		contacts:      new(MockContactRepository),
		tickets:       new(MockTicketRepository),
		plans:         new(MockPlanRepository),
		overrides:     new(MockOverrideRepository),
		itemOverrides: new(MockItemOverrideRepository),
		manualItems:   new(MockManualItemRepository),
		lineItems:     new(MockLineItemRepository),
		invoices:      new(MockInvoiceRepository),
	}
	svc := NewInvoiceService(
		m.companies, m.assets, m.contacts, m.tickets,
		m.plans, m.overrides, m.itemOverrides, m.manualItems, m.lineItems, m.invoices,
		zap.NewNop(),
	)
	return svc, m
}

func testPlan(t *testing.T) *billing.BillingPlan {
	t.Helper()
	toMoney := func(cents int64) valueobject.Money { return valueobject.NewMoneyUSD(cents) }
	plan, err := billing.NewBillingPlan("Managed Pro", billing.TermOneYear, "24x7", billing.RateCard{
		PerUserRate:              toMoney(1500),
		PerWorkstationRate:       toMoney(3000),
		PerServerRate:            toMoney(10000),
		PerVMRate:                toMoney(5000),
		PerSwitchRate:            toMoney(2000),
		PerFirewallRate:          toMoney(4000),
		HourlyTicketRate:         toMoney(15000),
		BackupBaseFeeWorkstation: toMoney(500),
		BackupBaseFeeServer:      toMoney(2500),
		BackupIncludedTB:         decimal.RequireFromString("0.5"),
		BackupPerTBFee:           toMoney(1000),
	})
	require.NoError(t, err)
	return plan
}

func stubEmptyConfig(m *invoiceServiceMocks, account string, plans map[string]*billing.BillingPlan) {
	m.plans.On("FindAllByName", mock.Anything, mock.Anything).Return(plans, nil)
	m.overrides.On("FindByAccount", mock.Anything, account).Return(nil, shared.ErrNotFound)
	m.itemOverrides.On("FindAssetOverrides", mock.Anything, account).Return([]*billing.AssetOverride{}, nil)
	m.itemOverrides.On("FindUserOverrides", mock.Anything, account).Return([]*billing.UserOverride{}, nil)
	m.manualItems.On("FindManualAssets", mock.Anything, account).Return([]*billing.ManualAsset{}, nil)
	m.manualItems.On("FindManualUsers", mock.Anything, account).Return([]*billing.ManualUser{}, nil)
	m.lineItems.On("FindByAccount", mock.Anything, account).Return([]*billing.CustomLineItem{}, nil)
}

func TestInvoiceService_Compute(t *testing.T) {
	svc, m := newInvoiceService(t)
	period, err := billing.NewPeriod(2025, 6)
	require.NoError(t, err)

	company := &inventory.Company{
		ID:            1,
		AccountNumber: "ACME-001",
		Name:          "Acme Manufacturing",
		PlanName:      "Managed Pro",
		ContractTerm:  "1-Year",
	}
	m.companies.On("FindByAccount", mock.Anything, "ACME-001").Return(company, nil)
	stubEmptyConfig(m, "ACME-001", map[string]*billing.BillingPlan{"Managed Pro": testPlan(t)})

	m.assets.On("FindByAccount", mock.Anything, "ACME-001").Return([]inventory.Asset{
		{ID: 1, AccountNumber: "ACME-001", Hostname: "ws-01", Type: "Workstation"},
		{ID: 2, AccountNumber: "ACME-001", Hostname: "srv-01", Type: "Server"},
	}, nil)
	m.contacts.On("FindByAccount", mock.Anything, "ACME-001").Return([]inventory.Contact{
		{ID: 10, AccountNumber: "ACME-001", FullName: "Ada Byrne", Paid: true},
	}, nil)
	m.tickets.On("FindByAccountAndWindow", mock.Anything, "ACME-001", period.Start(), period.End()).Return([]inventory.Ticket{
		{ID: 100, AccountNumber: "ACME-001", Number: "T-100", Hours: decimal.RequireFromString("2"), LastActivityAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}, nil)

	result, err := svc.Compute(context.Background(), "ACME-001", period)
	require.NoError(t, err)

	// 30.00 + 100.00 + 15.00 + 2h x 150.00
	assert.Equal(t, int64(44500), result.Total.MinorUnits())
	assert.Equal(t, "Managed Pro", result.PlanName)
}

func TestInvoiceService_ComputePlanNameOverride(t *testing.T) {
	svc, m := newInvoiceService(t)
	period, err := billing.NewPeriod(2025, 6)
	require.NoError(t, err)

	essentials, err := billing.NewBillingPlan("Essentials", billing.TermOneYear, "8x5", billing.RateCard{
		PerUserRate:              valueobject.NewMoneyUSD(900),
		PerWorkstationRate:       valueobject.NewMoneyUSD(2000),
		PerServerRate:            valueobject.NewMoneyUSD(6000),
		PerVMRate:                valueobject.NewMoneyUSD(3000),
		PerSwitchRate:            valueobject.NewMoneyUSD(1500),
		PerFirewallRate:          valueobject.NewMoneyUSD(2500),
		HourlyTicketRate:         valueobject.NewMoneyUSD(12000),
		BackupBaseFeeWorkstation: valueobject.NewMoneyUSD(500),
		BackupBaseFeeServer:      valueobject.NewMoneyUSD(2500),
		BackupIncludedTB:         decimal.RequireFromString("0.5"),
		BackupPerTBFee:           valueobject.NewMoneyUSD(1000),
	})
	require.NoError(t, err)

	company := &inventory.Company{
		ID:            2,
		AccountNumber: "ACME-005",
		Name:          "Acme East",
		PlanName:      "Managed Pro",
		ContractTerm:  "1-Year",
	}
	m.companies.On("FindByAccount", mock.Anything, "ACME-005").Return(company, nil)

	planName := "Essentials"
	override := &billing.ClientOverride{AccountNumber: "ACME-005", PlanName: &planName}
	m.plans.On("FindAllByName", mock.Anything, billing.TermOneYear).Return(map[string]*billing.BillingPlan{
		"Managed Pro": testPlan(t),
		"Essentials":  essentials,
	}, nil)
	m.overrides.On("FindByAccount", mock.Anything, "ACME-005").Return(override, nil)
	m.itemOverrides.On("FindAssetOverrides", mock.Anything, "ACME-005").Return([]*billing.AssetOverride{}, nil)
	m.itemOverrides.On("FindUserOverrides", mock.Anything, "ACME-005").Return([]*billing.UserOverride{}, nil)
	m.manualItems.On("FindManualAssets", mock.Anything, "ACME-005").Return([]*billing.ManualAsset{}, nil)
	m.manualItems.On("FindManualUsers", mock.Anything, "ACME-005").Return([]*billing.ManualUser{}, nil)
	m.lineItems.On("FindByAccount", mock.Anything, "ACME-005").Return([]*billing.CustomLineItem{}, nil)

	m.assets.On("FindByAccount", mock.Anything, "ACME-005").Return([]inventory.Asset{
		{ID: 3, AccountNumber: "ACME-005", Hostname: "srv-02", Type: "Server"},
	}, nil)
	m.contacts.On("FindByAccount", mock.Anything, "ACME-005").Return([]inventory.Contact{}, nil)
	m.tickets.On("FindByAccountAndWindow", mock.Anything, "ACME-005", period.Start(), period.End()).Return([]inventory.Ticket{}, nil)

	result, err := svc.Compute(context.Background(), "ACME-005", period)
	require.NoError(t, err)

	// one server billed at the Essentials rate, not Managed Pro's
	assert.Equal(t, "Essentials", result.PlanName)
	assert.Equal(t, int64(6000), result.Total.MinorUnits())
}

func TestInvoiceService_ComputeUnknownAccount(t *testing.T) {
	svc, m := newInvoiceService(t)
	period, err := billing.NewPeriod(2025, 6)
	require.NoError(t, err)

	m.companies.On("FindByAccount", mock.Anything, "GHOST").Return(nil, shared.ErrNotFound)

	_, err = svc.Compute(context.Background(), "GHOST", period)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceService_YearlyPoolUsage(t *testing.T) {
	svc, m := newInvoiceService(t)
	period, err := billing.NewPeriod(2025, 6)
	require.NoError(t, err)

	monthly := decimal.RequireFromString("5")
	yearly := decimal.RequireFromString("20")
	override := &billing.ClientOverride{
		AccountNumber:       "ACME-002",
		PrepaidHoursMonthly: &monthly,
		PrepaidHoursYearly:  &yearly,
	}

	// 40 hours Jan-May against 5 x 5 monthly pools leaves 15 drawn from the
	// yearly pool
	yearStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	m.tickets.On("SumHours", mock.Anything, "ACME-002", yearStart, period.Start()).
		Return(decimal.RequireFromString("40"), nil)

	used, err := svc.yearlyPoolUsage(context.Background(), "ACME-002", period, override)
	require.NoError(t, err)
	assert.True(t, used.Equal(decimal.RequireFromString("15")))

	// no yearly pool configured: no query, no usage
	none, err := svc.yearlyPoolUsage(context.Background(), "ACME-002", period, nil)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestInvoiceService_SaveDraftReplacesExisting(t *testing.T) {
	svc, m := newInvoiceService(t)
	period, err := billing.NewPeriod(2025, 6)
	require.NoError(t, err)

	company := &inventory.Company{ID: 1, AccountNumber: "ACME-003", Name: "Acme", PlanName: ""}
	m.companies.On("FindByAccount", mock.Anything, "ACME-003").Return(company, nil)
	stubEmptyConfig(m, "ACME-003", map[string]*billing.BillingPlan{})
	m.assets.On("FindByAccount", mock.Anything, "ACME-003").Return([]inventory.Asset{}, nil)
	m.contacts.On("FindByAccount", mock.Anything, "ACME-003").Return([]inventory.Contact{}, nil)
	m.tickets.On("FindByAccountAndWindow", mock.Anything, "ACME-003", period.Start(), period.End()).Return([]inventory.Ticket{}, nil)

	previous, err := billing.NewInvoice(&billing.InvoiceResult{
		AccountNumber: "ACME-003",
		Period:        period,
		Total:         valueobject.NewMoneyUSD(999),
	})
	require.NoError(t, err)
	m.invoices.On("FindByAccountAndPeriod", mock.Anything, "ACME-003", period).Return(previous, nil)
	m.invoices.On("Save", mock.Anything, mock.Anything).Return(nil)

	saved, err := svc.SaveDraft(context.Background(), "ACME-003", period)
	require.NoError(t, err)
	assert.Equal(t, previous.ID, saved.ID)
	assert.True(t, saved.Result.Total.IsZero())
	m.invoices.AssertCalled(t, "Save", mock.Anything, previous)
}

func TestInvoiceService_FinalizeTwiceFails(t *testing.T) {
	svc, m := newInvoiceService(t)
	period, err := billing.NewPeriod(2025, 6)
	require.NoError(t, err)

	invoice, err := billing.NewInvoice(&billing.InvoiceResult{
		AccountNumber: "ACME-004",
		Period:        period,
		Total:         valueobject.ZeroUSD(),
	})
	require.NoError(t, err)
	m.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	m.invoices.On("Save", mock.Anything, invoice).Return(nil)

	first, err := svc.Finalize(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusFinalized, first.Status)

	_, err = svc.Finalize(context.Background(), invoice.ID)
	assert.Error(t, err)
}
