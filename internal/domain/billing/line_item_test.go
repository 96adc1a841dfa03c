package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

func periodOf(t *testing.T, year, month int) Period {
	t.Helper()
	p, err := NewPeriod(year, month)
	require.NoError(t, err)
	return p
}

func TestNewCustomLineItem_Validation(t *testing.T) {
	_, err := NewCustomLineItem("", "Onboarding", valueobject.NewMoneyUSD(50000), RecurrenceOneOff)
	assert.Error(t, err)

	_, err = NewCustomLineItem("ACME-001", "", valueobject.NewMoneyUSD(50000), RecurrenceOneOff)
	assert.Error(t, err)

	_, err = NewCustomLineItem("ACME-001", "Onboarding", valueobject.NewMoneyUSD(50000), Recurrence("weekly"))
	assert.Error(t, err)

	item, err := NewCustomLineItem("ACME-001", "Onboarding", valueobject.NewMoneyUSD(50000), RecurrenceOneOff)
	require.NoError(t, err)
	assert.Equal(t, RecurrenceOneOff, item.Recurrence)
}

func TestCustomLineItem_OneOffAppliesOnce(t *testing.T) {
	target := periodOf(t, 2025, 6)
	item, err := NewCustomLineItem("ACME-001", "Migration project", valueobject.NewMoneyUSD(250000), RecurrenceOneOff)
	require.NoError(t, err)
	item.OneOffPeriod = &target

	assert.True(t, item.AppliesTo(periodOf(t, 2025, 6)))
	assert.False(t, item.AppliesTo(periodOf(t, 2025, 7)))
	assert.False(t, item.AppliesTo(periodOf(t, 2026, 6)))
}

func TestCustomLineItem_MonthlyWindow(t *testing.T) {
	from := periodOf(t, 2025, 3)
	until := periodOf(t, 2025, 8)
	item, err := NewCustomLineItem("ACME-001", "Colo rack", valueobject.NewMoneyUSD(30000), RecurrenceMonthly)
	require.NoError(t, err)
	item.ActiveFrom = &from
	item.ActiveUntil = &until

	assert.False(t, item.AppliesTo(periodOf(t, 2025, 2)))
	assert.True(t, item.AppliesTo(periodOf(t, 2025, 3)))
	assert.True(t, item.AppliesTo(periodOf(t, 2025, 8)))
	assert.False(t, item.AppliesTo(periodOf(t, 2025, 9)))
}

func TestCustomLineItem_MonthlyOpenEnded(t *testing.T) {
	item, err := NewCustomLineItem("ACME-001", "Hosted voice", valueobject.NewMoneyUSD(12000), RecurrenceMonthly)
	require.NoError(t, err)

	assert.True(t, item.AppliesTo(periodOf(t, 2025, 1)))
	assert.True(t, item.AppliesTo(periodOf(t, 2030, 12)))
}

func TestCustomLineItem_YearlyBillsInConfiguredMonth(t *testing.T) {
	item, err := NewCustomLineItem("ACME-001", "Domain renewal", valueobject.NewMoneyUSD(1500), RecurrenceYearly)
	require.NoError(t, err)
	item.YearlyBillMonth = time.June

	assert.True(t, item.AppliesTo(periodOf(t, 2025, 6)))
	assert.False(t, item.AppliesTo(periodOf(t, 2025, 7)))
	assert.True(t, item.AppliesTo(periodOf(t, 2026, 6)))
}

func TestExpandLineItems(t *testing.T) {
	target := periodOf(t, 2025, 6)

	oneOff, err := NewCustomLineItem("ACME-001", "Migration project", valueobject.NewMoneyUSD(250000), RecurrenceOneOff)
	require.NoError(t, err)
	oneOff.OneOffPeriod = &target

	monthly, err := NewCustomLineItem("ACME-001", "Colo rack", valueobject.NewMoneyUSD(30000), RecurrenceMonthly)
	require.NoError(t, err)

	wrongMonth, err := NewCustomLineItem("ACME-001", "Domain renewal", valueobject.NewMoneyUSD(1500), RecurrenceYearly)
	require.NoError(t, err)
	wrongMonth.YearlyBillMonth = time.January

	credit, err := NewCustomLineItem("ACME-001", "Service credit", valueobject.NewMoneyUSD(-10000), RecurrenceMonthly)
	require.NoError(t, err)

	entries := ExpandLineItems(target, []*CustomLineItem{oneOff, monthly, wrongMonth, credit})
	require.Len(t, entries, 3)
	assert.Equal(t, "Migration project", entries[0].Description)
	assert.Equal(t, "Colo rack", entries[1].Description)
	// credits pass through unclamped
	assert.Equal(t, int64(-10000), entries[2].Amount.MinorUnits())
	for _, e := range entries {
		assert.Equal(t, ChargeCategoryLineItem, e.Category)
	}
}
