package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// OverrideService provides application-level override operations: the
// per-client override row plus per-asset and per-user reclassifications
type OverrideService struct {
	overrides     billing.OverrideRepository
	itemOverrides billing.ItemOverrideRepository
	plans         billing.PlanRepository
}

// NewOverrideService creates a new OverrideService
func NewOverrideService(overrides billing.OverrideRepository, itemOverrides billing.ItemOverrideRepository, plans billing.PlanRepository) *OverrideService {
	return &OverrideService{overrides: overrides, itemOverrides: itemOverrides, plans: plans}
}

// ClientOverrideRequest carries the optional override fields. Absent fields
// stay nil and fall through to the plan.
type ClientOverrideRequest struct {
	PlanName     *string `json:"plan_name"`
	SupportLevel *string `json:"support_level"`

	PerUser          *decimal.Decimal `json:"per_user"`
	PerWorkstation   *decimal.Decimal `json:"per_workstation"`
	PerServer        *decimal.Decimal `json:"per_server"`
	PerVM            *decimal.Decimal `json:"per_vm"`
	PerSwitch        *decimal.Decimal `json:"per_switch"`
	PerFirewall      *decimal.Decimal `json:"per_firewall"`
	HourlyTicketRate *decimal.Decimal `json:"hourly_ticket_rate"`

	BackupBaseFeeWorkstation *decimal.Decimal `json:"backup_base_fee_workstation"`
	BackupBaseFeeServer      *decimal.Decimal `json:"backup_base_fee_server"`
	BackupIncludedTB         *decimal.Decimal `json:"backup_included_tb"`
	BackupPerTBFee           *decimal.Decimal `json:"backup_per_tb_fee"`

	PrepaidHoursMonthly *decimal.Decimal `json:"prepaid_hours_monthly"`
	PrepaidHoursYearly  *decimal.Decimal `json:"prepaid_hours_yearly"`
}

func optionalMoney(d *decimal.Decimal) (*valueobject.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := valueobject.NewMoneyFromDecimal(*d, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// PutClientOverride creates or replaces the override row for an account
func (s *OverrideService) PutClientOverride(ctx context.Context, accountNumber string, req ClientOverrideRequest) (*billing.ClientOverride, error) {
	if accountNumber == "" {
		return nil, shared.NewValidationError("Account number cannot be empty")
	}
	if req.PlanName != nil {
		if _, err := s.plans.FindByName(ctx, *req.PlanName); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError(fmt.Sprintf("Unknown billing plan %q", *req.PlanName))
			}
			return nil, err
		}
	}
	if req.BackupIncludedTB != nil && req.BackupIncludedTB.Sign() <= 0 {
		return nil, shared.NewValidationError("Backup included TB must be positive")
	}

	override := &billing.ClientOverride{
		AccountNumber:       accountNumber,
		PlanName:            req.PlanName,
		SupportLevel:        req.SupportLevel,
		BackupIncludedTB:    req.BackupIncludedTB,
		PrepaidHoursMonthly: req.PrepaidHoursMonthly,
		PrepaidHoursYearly:  req.PrepaidHoursYearly,
	}

	var err error
	if override.PerUserRate, err = optionalMoney(req.PerUser); err != nil {
		return nil, err
	}
	if override.PerWorkstationRate, err = optionalMoney(req.PerWorkstation); err != nil {
		return nil, err
	}
	if override.PerServerRate, err = optionalMoney(req.PerServer); err != nil {
		return nil, err
	}
	if override.PerVMRate, err = optionalMoney(req.PerVM); err != nil {
		return nil, err
	}
	if override.PerSwitchRate, err = optionalMoney(req.PerSwitch); err != nil {
		return nil, err
	}
	if override.PerFirewallRate, err = optionalMoney(req.PerFirewall); err != nil {
		return nil, err
	}
	if override.HourlyTicketRate, err = optionalMoney(req.HourlyTicketRate); err != nil {
		return nil, err
	}
	if override.BackupBaseFeeWorkstation, err = optionalMoney(req.BackupBaseFeeWorkstation); err != nil {
		return nil, err
	}
	if override.BackupBaseFeeServer, err = optionalMoney(req.BackupBaseFeeServer); err != nil {
		return nil, err
	}
	if override.BackupPerTBFee, err = optionalMoney(req.BackupPerTBFee); err != nil {
		return nil, err
	}

	existing, err := s.overrides.FindByAccount(ctx, accountNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	now := time.Now()
	if existing != nil {
		override.ID = existing.ID
		override.CreatedAt = existing.CreatedAt
	} else {
		override.ID = uuid.New()
		override.CreatedAt = now
	}
	override.UpdatedAt = now

	if err := s.overrides.Save(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// GetClientOverride returns the override row for an account
func (s *OverrideService) GetClientOverride(ctx context.Context, accountNumber string) (*billing.ClientOverride, error) {
	return s.overrides.FindByAccount(ctx, accountNumber)
}

// DeleteClientOverride removes the override row for an account
func (s *OverrideService) DeleteClientOverride(ctx context.Context, accountNumber string) error {
	return s.overrides.DeleteByAccount(ctx, accountNumber)
}

// ItemOverrideRequest reclassifies a single upstream asset or user
type ItemOverrideRequest struct {
	Class      string           `json:"class" binding:"required,item_class"`
	CustomRate *decimal.Decimal `json:"custom_rate"`
}

// PutAssetOverride creates or replaces the override for one upstream asset
func (s *OverrideService) PutAssetOverride(ctx context.Context, accountNumber string, assetID int64, req ItemOverrideRequest) (*billing.AssetOverride, error) {
	class, ok := billing.ParseAssetClass(req.Class)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown asset class %q", req.Class))
	}
	rate, err := optionalMoney(req.CustomRate)
	if err != nil {
		return nil, err
	}
	if class == billing.AssetClassCustom && rate == nil {
		return nil, shared.NewValidationError("Custom class requires a custom rate")
	}

	existing, err := s.itemOverrides.FindAssetOverrides(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	override := &billing.AssetOverride{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		AssetID:       assetID,
		Class:         class,
		CustomRate:    rate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, ov := range existing {
		if ov.AssetID == assetID {
			override.ID = ov.ID
			override.CreatedAt = ov.CreatedAt
			break
		}
	}
	if err := s.itemOverrides.SaveAssetOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// PutUserOverride creates or replaces the override for one upstream user
func (s *OverrideService) PutUserOverride(ctx context.Context, accountNumber string, userID int64, req ItemOverrideRequest) (*billing.UserOverride, error) {
	class, ok := billing.ParseUserClass(req.Class)
	if !ok {
		return nil, shared.NewValidationError(fmt.Sprintf("Unknown user class %q", req.Class))
	}
	rate, err := optionalMoney(req.CustomRate)
	if err != nil {
		return nil, err
	}
	if class == billing.UserClassCustom && rate == nil {
		return nil, shared.NewValidationError("Custom class requires a custom rate")
	}

	existing, err := s.itemOverrides.FindUserOverrides(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	override := &billing.UserOverride{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		UserID:        userID,
		Class:         class,
		CustomRate:    rate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, ov := range existing {
		if ov.UserID == userID {
			override.ID = ov.ID
			override.CreatedAt = ov.CreatedAt
			break
		}
	}
	if err := s.itemOverrides.SaveUserOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// ListItemOverrides returns the asset and user overrides of one account
func (s *OverrideService) ListItemOverrides(ctx context.Context, accountNumber string) ([]*billing.AssetOverride, []*billing.UserOverride, error) {
	assets, err := s.itemOverrides.FindAssetOverrides(ctx, accountNumber)
	if err != nil {
		return nil, nil, err
	}
	users, err := s.itemOverrides.FindUserOverrides(ctx, accountNumber)
	if err != nil {
		return nil, nil, err
	}
	return assets, users, nil
}

// DeleteAssetOverride removes an asset override
func (s *OverrideService) DeleteAssetOverride(ctx context.Context, id uuid.UUID) error {
	return s.itemOverrides.DeleteAssetOverride(ctx, id)
}

// DeleteUserOverride removes a user override
func (s *OverrideService) DeleteUserOverride(ctx context.Context, id uuid.UUID) error {
	return s.itemOverrides.DeleteUserOverride(ctx, id)
}
