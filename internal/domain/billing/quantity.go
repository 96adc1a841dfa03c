package billing

import (
	"fmt"

	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// UnitSource distinguishes where a billable unit came from
type UnitSource string

const (
	UnitSourceUpstream UnitSource = "upstream"
	UnitSourceManual   UnitSource = "manual"
)

// BillableUnit is one asset or user after classification: the aggregator
// merges the upstream snapshot with per-item overrides and manual additions
// into a flat list the assembler can price.
type BillableUnit struct {
	// Key is the stable identity used for deduplication: the upstream
	// numeric id for synced items, the manual item's uuid for manual ones.
	Key    string     `json:"key"`
	Name   string     `json:"name"`
	Source UnitSource `json:"source"`

	// AssetClass is set for assets, UserClass for users.
	AssetClass *AssetClass `json:"asset_class,omitempty"`
	UserClass  *UserClass  `json:"user_class,omitempty"`

	// CustomRate is the per-item rate for custom-classified units. A custom
	// unit with a nil rate bills at zero.
	CustomRate *valueobject.Money `json:"custom_rate,omitempty"`
}

// Excluded reports whether the unit was classified out of billing entirely
func (u BillableUnit) Excluded() bool {
	if u.AssetClass != nil {
		return *u.AssetClass == AssetClassNoCharge
	}
	if u.UserClass != nil {
		return *u.UserClass == UserClassFree
	}
	return true
}

// Aggregation is the output of quantity aggregation: the priced unit lists
// plus any warnings raised while merging
type Aggregation struct {
	Assets   []BillableUnit
	Users    []BillableUnit
	Warnings []Warning
}

// AggregateQuantities merges upstream assets and users with their per-item
// overrides and the manual additions. Upstream items keep snapshot order,
// manual items follow. Overrides referencing ids absent from the snapshot
// are stale: they are skipped with a warning rather than billed.
func AggregateQuantities(data ExternalData, cfg BillingConfig) Aggregation {
	var agg Aggregation

	assetOverrides := make(map[int64]*AssetOverride, len(cfg.AssetOverrides))
	for _, ov := range cfg.AssetOverrides {
		if ov != nil {
			assetOverrides[ov.AssetID] = ov
		}
	}
	userOverrides := make(map[int64]*UserOverride, len(cfg.UserOverrides))
	for _, ov := range cfg.UserOverrides {
		if ov != nil {
			userOverrides[ov.UserID] = ov
		}
	}

	seenAssets := make(map[int64]bool, len(data.Assets))
	for _, asset := range data.Assets {
		if seenAssets[asset.ID] {
			continue
		}
		seenAssets[asset.ID] = true

		unit := BillableUnit{
			Key:    fmt.Sprintf("asset:%d", asset.ID),
			Name:   asset.Hostname,
			Source: UnitSourceUpstream,
		}
		if ov, ok := assetOverrides[asset.ID]; ok {
			class := ov.Class
			unit.AssetClass = &class
			if class == AssetClassCustom {
				unit.CustomRate = ov.CustomRate
			}
		} else {
			class, ok := ParseAssetClass(asset.Type)
			if !ok {
				agg.Warnings = append(agg.Warnings, Warning{
					Code:    WarningUnknownAssetType,
					Message: fmt.Sprintf("Asset %q has unrecognized type %q and was not billed", asset.Hostname, asset.Type),
				})
				continue
			}
			unit.AssetClass = &class
		}
		agg.Assets = append(agg.Assets, unit)
	}
	for _, ov := range cfg.AssetOverrides {
		if ov != nil && !seenAssets[ov.AssetID] {
			agg.Warnings = append(agg.Warnings, Warning{
				Code:    WarningStaleOverride,
				Message: fmt.Sprintf("Asset override for id %d references an asset no longer present upstream", ov.AssetID),
			})
		}
	}

	seenUsers := make(map[int64]bool, len(data.Users))
	for _, user := range data.Users {
		if seenUsers[user.ID] {
			continue
		}
		seenUsers[user.ID] = true

		unit := BillableUnit{
			Key:    fmt.Sprintf("user:%d", user.ID),
			Name:   user.FullName,
			Source: UnitSourceUpstream,
		}
		if ov, ok := userOverrides[user.ID]; ok {
			class := ov.Class
			unit.UserClass = &class
			if class == UserClassCustom {
				unit.CustomRate = ov.CustomRate
			}
		} else {
			class := UserClassPaid
			if !user.Paid {
				class = UserClassFree
			}
			unit.UserClass = &class
		}
		agg.Users = append(agg.Users, unit)
	}
	for _, ov := range cfg.UserOverrides {
		if ov != nil && !seenUsers[ov.UserID] {
			agg.Warnings = append(agg.Warnings, Warning{
				Code:    WarningStaleOverride,
				Message: fmt.Sprintf("User override for id %d references a user no longer present upstream", ov.UserID),
			})
		}
	}

	for _, manual := range cfg.ManualAssets {
		if manual == nil {
			continue
		}
		class := manual.Class
		unit := BillableUnit{
			Key:        "manual-asset:" + manual.ID.String(),
			Name:       manual.Hostname,
			Source:     UnitSourceManual,
			AssetClass: &class,
		}
		if class == AssetClassCustom {
			unit.CustomRate = manual.CustomRate
		}
		agg.Assets = append(agg.Assets, unit)
	}
	for _, manual := range cfg.ManualUsers {
		if manual == nil {
			continue
		}
		class := manual.Class
		unit := BillableUnit{
			Key:       "manual-user:" + manual.ID.String(),
			Name:      manual.FullName,
			Source:    UnitSourceManual,
			UserClass: &class,
		}
		if class == UserClassCustom {
			unit.CustomRate = manual.CustomRate
		}
		agg.Users = append(agg.Users, unit)
	}

	return agg
}
