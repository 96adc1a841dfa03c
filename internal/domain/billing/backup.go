package billing

import (
	"github.com/shopspring/decimal"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// bytesPerTB converts raw upstream byte counts to terabytes (2^40)
var bytesPerTB = decimal.NewFromInt(1 << 40)

// BackupBreakdown explains the backup portion of an invoice
type BackupBreakdown struct {
	WorkstationCount   int64             `json:"workstation_count"`
	ServerCount        int64             `json:"server_count"`
	WorkstationBaseFee valueobject.Money `json:"workstation_base_fee"`
	ServerBaseFee      valueobject.Money `json:"server_base_fee"`
	BaseAmount         valueobject.Money `json:"base_amount"`
	UsageTB            decimal.Decimal   `json:"usage_tb"`
	AllowanceTB        decimal.Decimal   `json:"allowance_tb"`
	OverageTB          decimal.Decimal   `json:"overage_tb"`
	PerTBFee           valueobject.Money `json:"per_tb_fee"`
	OverageAmount      valueobject.Money `json:"overage_amount"`
	Amount             valueobject.Money `json:"amount"`
}

// ComputeBackup prices backup protection for the period. A device counts as
// backed up when it reports nonzero usage. Each backed-up workstation and
// server pays its base fee and earns the client an included storage
// allowance; total usage beyond the pooled allowance bills per terabyte.
// Device counting uses the nominal upstream type (a VM counts as a server)
// rather than any billing reclassification, because the backup agent runs on
// the box either way.
func ComputeBackup(assets []ExternalAsset, rates *EffectiveRates) (*BackupBreakdown, error) {
	breakdown := &BackupBreakdown{
		WorkstationBaseFee: valueobject.ZeroUSD(),
		ServerBaseFee:      valueobject.ZeroUSD(),
		PerTBFee:           valueobject.ZeroUSD(),
		BaseAmount:         valueobject.ZeroUSD(),
		OverageAmount:      valueobject.ZeroUSD(),
		Amount:             valueobject.ZeroUSD(),
	}

	totalBytes := int64(0)
	seen := make(map[int64]bool, len(assets))
	for _, asset := range assets {
		if seen[asset.ID] || asset.BackupBytes <= 0 {
			continue
		}
		seen[asset.ID] = true
		switch normalizeTypeName(asset.Type) {
		case "workstation":
			breakdown.WorkstationCount++
		case "server", "vm":
			breakdown.ServerCount++
		}
		totalBytes += asset.BackupBytes
	}

	backedUpDevices := breakdown.WorkstationCount + breakdown.ServerCount
	if backedUpDevices == 0 && totalBytes == 0 {
		return breakdown, nil
	}

	if breakdown.WorkstationCount > 0 {
		fee, err := rates.BackupBaseFee(CategoryWorkstation)
		if err != nil {
			return nil, err
		}
		breakdown.WorkstationBaseFee = fee
		breakdown.BaseAmount = breakdown.BaseAmount.MustAdd(fee.MultiplyByInt(breakdown.WorkstationCount))
	}
	if breakdown.ServerCount > 0 {
		fee, err := rates.BackupBaseFee(CategoryServer)
		if err != nil {
			return nil, err
		}
		breakdown.ServerBaseFee = fee
		breakdown.BaseAmount = breakdown.BaseAmount.MustAdd(fee.MultiplyByInt(breakdown.ServerCount))
	}

	includedTB, err := rates.BackupIncludedTB()
	if err != nil {
		return nil, err
	}
	if includedTB.Sign() <= 0 {
		return nil, shared.NewValidationError("Backup included TB must be positive")
	}
	breakdown.UsageTB = decimal.NewFromInt(totalBytes).DivRound(bytesPerTB, 4)
	breakdown.AllowanceTB = includedTB.Mul(decimal.NewFromInt(backedUpDevices))

	overage := breakdown.UsageTB.Sub(breakdown.AllowanceTB)
	if overage.IsNegative() {
		overage = decimal.Zero
	}
	breakdown.OverageTB = overage

	if overage.IsPositive() {
		perTB, err := rates.BackupPerTBFee()
		if err != nil {
			return nil, err
		}
		breakdown.PerTBFee = perTB
		breakdown.OverageAmount = perTB.MultiplyDecimal(overage)
	}

	breakdown.Amount = breakdown.BaseAmount.MustAdd(breakdown.OverageAmount)
	return breakdown, nil
}
