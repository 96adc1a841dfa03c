package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

const tb = int64(1) << 40

func backupRates(t *testing.T) *EffectiveRates {
	t.Helper()
	plan, err := NewBillingPlan("Managed Pro", TermOneYear, "24x7", testRateCard())
	require.NoError(t, err)
	rates, err := ResolveRates(plan, nil, nil)
	require.NoError(t, err)
	return rates
}

func TestComputeBackup_UnderAllowance(t *testing.T) {
	// two devices at 0.5 TB included each = 1.0 TB allowance, 0.8 TB used
	assets := []ExternalAsset{
		{ID: 1, Type: "Workstation", BackupBytes: tb / 2},
		{ID: 2, Type: "Server", BackupBytes: 3 * tb / 10},
		{ID: 3, Type: "Workstation"},
	}

	breakdown, err := ComputeBackup(assets, backupRates(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), breakdown.WorkstationCount)
	assert.Equal(t, int64(1), breakdown.ServerCount)
	assert.True(t, breakdown.AllowanceTB.Equal(decimal.RequireFromString("1")))
	assert.True(t, breakdown.OverageTB.IsZero())
	assert.True(t, breakdown.OverageAmount.IsZero())
	// 500 workstation base + 2500 server base
	assert.Equal(t, int64(3000), breakdown.Amount.MinorUnits())
}

func TestComputeBackup_OverageBillsPerTB(t *testing.T) {
	// 1.5 TB used against a 1.0 TB allowance: 0.5 TB overage at $10.00/TB
	assets := []ExternalAsset{
		{ID: 1, Type: "Workstation", BackupBytes: tb},
		{ID: 2, Type: "Server", BackupBytes: tb / 2},
	}

	breakdown, err := ComputeBackup(assets, backupRates(t))
	require.NoError(t, err)
	assert.True(t, breakdown.UsageTB.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, breakdown.OverageTB.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, int64(500), breakdown.OverageAmount.MinorUnits())
	assert.Equal(t, int64(3500), breakdown.Amount.MinorUnits())
}

func TestComputeBackup_VMCountsAsServer(t *testing.T) {
	assets := []ExternalAsset{
		{ID: 1, Type: "Server", BackupBytes: tb / 4},
		{ID: 2, Type: "VM", BackupBytes: tb / 4},
	}

	breakdown, err := ComputeBackup(assets, backupRates(t))
	require.NoError(t, err)
	assert.Equal(t, int64(0), breakdown.WorkstationCount)
	assert.Equal(t, int64(2), breakdown.ServerCount)
	assert.True(t, breakdown.UsageTB.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, breakdown.AllowanceTB.Equal(decimal.RequireFromString("1")))
	// two server base fees, no overage
	assert.Equal(t, int64(5000), breakdown.Amount.MinorUnits())
}

func TestComputeBackup_NothingBackedUp(t *testing.T) {
	assets := []ExternalAsset{
		{ID: 1, Type: "Workstation"},
	}

	// nothing is backed up, so no rate is ever needed
	rates, err := ResolveRates(nil, nil, nil)
	require.NoError(t, err)
	breakdown, err := ComputeBackup(assets, rates)
	require.NoError(t, err)
	assert.True(t, breakdown.Amount.IsZero())

	// unbilled fee fields still carry a currency
	assert.Equal(t, valueobject.USD, breakdown.WorkstationBaseFee.Currency())
	assert.Equal(t, valueobject.USD, breakdown.ServerBaseFee.Currency())
	assert.Equal(t, valueobject.USD, breakdown.PerTBFee.Currency())
}

func TestComputeBackup_MissingRatesSurface(t *testing.T) {
	assets := []ExternalAsset{
		{ID: 1, Type: "Server", BackupBytes: tb},
	}

	rates, err := ResolveRates(nil, nil, nil)
	require.NoError(t, err)
	_, err = ComputeBackup(assets, rates)
	require.Error(t, err)
	assert.True(t, shared.IsConfigurationError(err))
}

func TestComputeBackup_NonPositiveAllowanceRejected(t *testing.T) {
	override := &ClientOverride{
		AccountNumber:       "ACME-020",
		BackupBaseFeeServer: moneyPtr(2500),
		BackupIncludedTB:    decPtr("0"),
		BackupPerTBFee:      moneyPtr(1000),
	}
	rates, err := ResolveRates(nil, override, nil)
	require.NoError(t, err)

	assets := []ExternalAsset{{ID: 1, Type: "Server", BackupBytes: tb}}
	_, err = ComputeBackup(assets, rates)
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))
}

func TestComputeBackup_DeduplicatesDevices(t *testing.T) {
	assets := []ExternalAsset{
		{ID: 1, Type: "Server", BackupBytes: tb / 2},
		{ID: 1, Type: "Server", BackupBytes: tb / 2},
	}

	breakdown, err := ComputeBackup(assets, backupRates(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), breakdown.ServerCount)
	assert.True(t, breakdown.UsageTB.Equal(decimal.RequireFromString("0.5")))
}
