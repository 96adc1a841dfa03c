package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

// BillingPlanModel persists one plan rate card. A (name, term) pair is
// unique; money columns hold integer minor units in the row's currency.
type BillingPlanModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null;uniqueIndex:idx_billing_plans_name_term"`
	Term         string    `gorm:"not null;uniqueIndex:idx_billing_plans_name_term"`
	SupportLevel string
	Currency     string `gorm:"not null;default:USD"`

	PerUserRate              int64 `gorm:"not null;default:0"`
	PerWorkstationRate       int64 `gorm:"not null;default:0"`
	PerServerRate            int64 `gorm:"not null;default:0"`
	PerVMRate                int64 `gorm:"not null;default:0"`
	PerSwitchRate            int64 `gorm:"not null;default:0"`
	PerFirewallRate          int64 `gorm:"not null;default:0"`
	HourlyTicketRate         int64 `gorm:"not null;default:0"`
	BackupBaseFeeWorkstation int64 `gorm:"not null;default:0"`
	BackupBaseFeeServer      int64 `gorm:"not null;default:0"`
	BackupIncludedTB         decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	BackupPerTBFee           int64           `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for BillingPlanModel
func (BillingPlanModel) TableName() string { return "billing_plans" }

// FromDomain populates the model from a domain plan
func (m *BillingPlanModel) FromDomain(p *billing.BillingPlan) {
	m.ID = p.ID
	m.Name = p.Name
	m.Term = p.Term.String()
	m.SupportLevel = p.SupportLevel
	m.Currency = string(p.Rates.PerUserRate.Currency())
	m.PerUserRate = p.Rates.PerUserRate.MinorUnits()
	m.PerWorkstationRate = p.Rates.PerWorkstationRate.MinorUnits()
	m.PerServerRate = p.Rates.PerServerRate.MinorUnits()
	m.PerVMRate = p.Rates.PerVMRate.MinorUnits()
	m.PerSwitchRate = p.Rates.PerSwitchRate.MinorUnits()
	m.PerFirewallRate = p.Rates.PerFirewallRate.MinorUnits()
	m.HourlyTicketRate = p.Rates.HourlyTicketRate.MinorUnits()
	m.BackupBaseFeeWorkstation = p.Rates.BackupBaseFeeWorkstation.MinorUnits()
	m.BackupBaseFeeServer = p.Rates.BackupBaseFeeServer.MinorUnits()
	m.BackupIncludedTB = p.Rates.BackupIncludedTB
	m.BackupPerTBFee = p.Rates.BackupPerTBFee.MinorUnits()
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// ToDomain converts the model to a domain plan
func (m *BillingPlanModel) ToDomain() (*billing.BillingPlan, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	mk := func(minor int64) valueobject.Money {
		money, _ := valueobject.NewMoney(minor, currency)
		return money
	}
	term, _ := billing.ParseContractTerm(m.Term)
	return &billing.BillingPlan{
		ID:           m.ID,
		Name:         m.Name,
		Term:         term,
		SupportLevel: m.SupportLevel,
		Rates: billing.RateCard{
			PerUserRate:              mk(m.PerUserRate),
			PerWorkstationRate:       mk(m.PerWorkstationRate),
			PerServerRate:            mk(m.PerServerRate),
			PerVMRate:                mk(m.PerVMRate),
			PerSwitchRate:            mk(m.PerSwitchRate),
			PerFirewallRate:          mk(m.PerFirewallRate),
			HourlyTicketRate:         mk(m.HourlyTicketRate),
			BackupBaseFeeWorkstation: mk(m.BackupBaseFeeWorkstation),
			BackupBaseFeeServer:      mk(m.BackupBaseFeeServer),
			BackupIncludedTB:         m.BackupIncludedTB,
			BackupPerTBFee:           mk(m.BackupPerTBFee),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// ClientOverrideModel persists one customer's override row. NULL columns
// mean "no override, fall through to the plan".
type ClientOverrideModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;uniqueIndex"`
	Currency      string    `gorm:"not null;default:USD"`

	PlanName     *string
	SupportLevel *string

	PerUserRate        *int64
	PerWorkstationRate *int64
	PerServerRate      *int64
	PerVMRate          *int64
	PerSwitchRate      *int64
	PerFirewallRate    *int64
	HourlyTicketRate   *int64

	BackupBaseFeeWorkstation *int64
	BackupBaseFeeServer      *int64
	BackupIncludedTB         *decimal.Decimal `gorm:"type:decimal(10,4)"`
	BackupPerTBFee           *int64

	PrepaidHoursMonthly *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrepaidHoursYearly  *decimal.Decimal `gorm:"type:decimal(10,2)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for ClientOverrideModel
func (ClientOverrideModel) TableName() string { return "client_overrides" }

// FromDomain populates the model from a domain override
func (m *ClientOverrideModel) FromDomain(o *billing.ClientOverride) {
	m.ID = o.ID
	m.AccountNumber = o.AccountNumber
	m.Currency = string(valueobject.DefaultCurrency)
	m.PlanName = o.PlanName
	m.SupportLevel = o.SupportLevel
	m.PerUserRate = minorPtr(o.PerUserRate, &m.Currency)
	m.PerWorkstationRate = minorPtr(o.PerWorkstationRate, &m.Currency)
	m.PerServerRate = minorPtr(o.PerServerRate, &m.Currency)
	m.PerVMRate = minorPtr(o.PerVMRate, &m.Currency)
	m.PerSwitchRate = minorPtr(o.PerSwitchRate, &m.Currency)
	m.PerFirewallRate = minorPtr(o.PerFirewallRate, &m.Currency)
	m.HourlyTicketRate = minorPtr(o.HourlyTicketRate, &m.Currency)
	m.BackupBaseFeeWorkstation = minorPtr(o.BackupBaseFeeWorkstation, &m.Currency)
	m.BackupBaseFeeServer = minorPtr(o.BackupBaseFeeServer, &m.Currency)
	m.BackupIncludedTB = o.BackupIncludedTB
	m.BackupPerTBFee = minorPtr(o.BackupPerTBFee, &m.Currency)
	m.PrepaidHoursMonthly = o.PrepaidHoursMonthly
	m.PrepaidHoursYearly = o.PrepaidHoursYearly
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// ToDomain converts the model to a domain override
func (m *ClientOverrideModel) ToDomain() (*billing.ClientOverride, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	return &billing.ClientOverride{
		ID:                       m.ID,
		AccountNumber:            m.AccountNumber,
		PlanName:                 m.PlanName,
		SupportLevel:             m.SupportLevel,
		PerUserRate:              moneyPtr(m.PerUserRate, currency),
		PerWorkstationRate:       moneyPtr(m.PerWorkstationRate, currency),
		PerServerRate:            moneyPtr(m.PerServerRate, currency),
		PerVMRate:                moneyPtr(m.PerVMRate, currency),
		PerSwitchRate:            moneyPtr(m.PerSwitchRate, currency),
		PerFirewallRate:          moneyPtr(m.PerFirewallRate, currency),
		HourlyTicketRate:         moneyPtr(m.HourlyTicketRate, currency),
		BackupBaseFeeWorkstation: moneyPtr(m.BackupBaseFeeWorkstation, currency),
		BackupBaseFeeServer:      moneyPtr(m.BackupBaseFeeServer, currency),
		BackupIncludedTB:         m.BackupIncludedTB,
		BackupPerTBFee:           moneyPtr(m.BackupPerTBFee, currency),
		PrepaidHoursMonthly:      m.PrepaidHoursMonthly,
		PrepaidHoursYearly:       m.PrepaidHoursYearly,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}, nil
}

// AssetOverrideModel persists one per-asset reclassification
type AssetOverrideModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index;uniqueIndex:idx_asset_overrides_account_asset"`
	AssetID       int64     `gorm:"not null;uniqueIndex:idx_asset_overrides_account_asset"`
	Class         string    `gorm:"not null"`
	CustomRate    *int64
	Currency      string    `gorm:"not null;default:USD"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for AssetOverrideModel
func (AssetOverrideModel) TableName() string { return "asset_overrides" }

// FromDomain populates the model from a domain asset override
func (m *AssetOverrideModel) FromDomain(o *billing.AssetOverride) {
	m.ID = o.ID
	m.AccountNumber = o.AccountNumber
	m.AssetID = o.AssetID
	m.Class = string(o.Class)
	m.Currency = string(valueobject.DefaultCurrency)
	m.CustomRate = minorPtr(o.CustomRate, &m.Currency)
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// ToDomain converts the model to a domain asset override
func (m *AssetOverrideModel) ToDomain() (*billing.AssetOverride, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	return &billing.AssetOverride{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		AssetID:       m.AssetID,
		Class:         billing.AssetClass(m.Class),
		CustomRate:    moneyPtr(m.CustomRate, currency),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// UserOverrideModel persists one per-user reclassification
type UserOverrideModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index;uniqueIndex:idx_user_overrides_account_user"`
	UserID        int64     `gorm:"not null;uniqueIndex:idx_user_overrides_account_user"`
	Class         string    `gorm:"not null"`
	CustomRate    *int64
	Currency      string    `gorm:"not null;default:USD"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for UserOverrideModel
func (UserOverrideModel) TableName() string { return "user_overrides" }

// FromDomain populates the model from a domain user override
func (m *UserOverrideModel) FromDomain(o *billing.UserOverride) {
	m.ID = o.ID
	m.AccountNumber = o.AccountNumber
	m.UserID = o.UserID
	m.Class = string(o.Class)
	m.Currency = string(valueobject.DefaultCurrency)
	m.CustomRate = minorPtr(o.CustomRate, &m.Currency)
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// ToDomain converts the model to a domain user override
func (m *UserOverrideModel) ToDomain() (*billing.UserOverride, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	return &billing.UserOverride{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		UserID:        m.UserID,
		Class:         billing.UserClass(m.Class),
		CustomRate:    moneyPtr(m.CustomRate, currency),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// ManualAssetModel persists one manually added billable asset
type ManualAssetModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index"`
	Hostname      string    `gorm:"not null"`
	Class         string    `gorm:"not null"`
	CustomRate    *int64
	Currency      string `gorm:"not null;default:USD"`
	Notes         string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for ManualAssetModel
func (ManualAssetModel) TableName() string { return "manual_assets" }

// FromDomain populates the model from a domain manual asset
func (m *ManualAssetModel) FromDomain(a *billing.ManualAsset) {
	m.ID = a.ID
	m.AccountNumber = a.AccountNumber
	m.Hostname = a.Hostname
	m.Class = string(a.Class)
	m.Currency = string(valueobject.DefaultCurrency)
	m.CustomRate = minorPtr(a.CustomRate, &m.Currency)
	m.Notes = a.Notes
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}

// ToDomain converts the model to a domain manual asset
func (m *ManualAssetModel) ToDomain() (*billing.ManualAsset, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	return &billing.ManualAsset{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		Hostname:      m.Hostname,
		Class:         billing.AssetClass(m.Class),
		CustomRate:    moneyPtr(m.CustomRate, currency),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// ManualUserModel persists one manually added billable user
type ManualUserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index"`
	FullName      string    `gorm:"not null"`
	Class         string    `gorm:"not null"`
	CustomRate    *int64
	Currency      string `gorm:"not null;default:USD"`
	Notes         string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for ManualUserModel
func (ManualUserModel) TableName() string { return "manual_users" }

// FromDomain populates the model from a domain manual user
func (m *ManualUserModel) FromDomain(u *billing.ManualUser) {
	m.ID = u.ID
	m.AccountNumber = u.AccountNumber
	m.FullName = u.FullName
	m.Class = string(u.Class)
	m.Currency = string(valueobject.DefaultCurrency)
	m.CustomRate = minorPtr(u.CustomRate, &m.Currency)
	m.Notes = u.Notes
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// ToDomain converts the model to a domain manual user
func (m *ManualUserModel) ToDomain() (*billing.ManualUser, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	return &billing.ManualUser{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		FullName:      m.FullName,
		Class:         billing.UserClass(m.Class),
		CustomRate:    moneyPtr(m.CustomRate, currency),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// CustomLineItemModel persists one recurring or one-off charge or credit.
// Period columns are stored as separate year and month integers; NULL means
// the bound is open.
type CustomLineItemModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;index"`
	Name          string    `gorm:"not null"`
	Description   string
	Amount        int64  `gorm:"not null"`
	Currency      string `gorm:"not null;default:USD"`
	Recurrence    string `gorm:"not null"`

	OneOffYear       *int
	OneOffMonth      *int
	ActiveFromYear   *int
	ActiveFromMonth  *int
	ActiveUntilYear  *int
	ActiveUntilMonth *int
	YearlyBillMonth  int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for CustomLineItemModel
func (CustomLineItemModel) TableName() string { return "custom_line_items" }

// FromDomain populates the model from a domain line item
func (m *CustomLineItemModel) FromDomain(i *billing.CustomLineItem) {
	m.ID = i.ID
	m.AccountNumber = i.AccountNumber
	m.Name = i.Name
	m.Description = i.Description
	m.Amount = i.Amount.MinorUnits()
	m.Currency = string(i.Amount.Currency())
	m.Recurrence = string(i.Recurrence)
	m.OneOffYear, m.OneOffMonth = periodCols(i.OneOffPeriod)
	m.ActiveFromYear, m.ActiveFromMonth = periodCols(i.ActiveFrom)
	m.ActiveUntilYear, m.ActiveUntilMonth = periodCols(i.ActiveUntil)
	m.YearlyBillMonth = int(i.YearlyBillMonth)
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// ToDomain converts the model to a domain line item
func (m *CustomLineItemModel) ToDomain() (*billing.CustomLineItem, error) {
	currency, err := parseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := valueobject.NewMoney(m.Amount, currency)
	if err != nil {
		return nil, err
	}
	return &billing.CustomLineItem{
		ID:              m.ID,
		AccountNumber:   m.AccountNumber,
		Name:            m.Name,
		Description:     m.Description,
		Amount:          amount,
		Recurrence:      billing.Recurrence(m.Recurrence),
		OneOffPeriod:    colsPeriod(m.OneOffYear, m.OneOffMonth),
		ActiveFrom:      colsPeriod(m.ActiveFromYear, m.ActiveFromMonth),
		ActiveUntil:     colsPeriod(m.ActiveUntilYear, m.ActiveUntilMonth),
		YearlyBillMonth: time.Month(m.YearlyBillMonth),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

// parseCurrency maps a stored currency code to the value object type,
// defaulting to USD for empty legacy rows
func parseCurrency(s string) (valueobject.Currency, error) {
	if s == "" {
		return valueobject.DefaultCurrency, nil
	}
	// NewMoney validates the code; reuse it for the check
	if _, err := valueobject.NewMoney(0, valueobject.Currency(s)); err != nil {
		return "", err
	}
	return valueobject.Currency(s), nil
}

// minorPtr extracts minor units from an optional money value and records its
// currency in the row currency column
func minorPtr(m *valueobject.Money, currency *string) *int64 {
	if m == nil {
		return nil
	}
	minor := m.MinorUnits()
	*currency = string(m.Currency())
	return &minor
}

// moneyPtr rebuilds an optional money value from a nullable minor unit column
func moneyPtr(minor *int64, currency valueobject.Currency) *valueobject.Money {
	if minor == nil {
		return nil
	}
	money, err := valueobject.NewMoney(*minor, currency)
	if err != nil {
		return nil
	}
	return &money
}

// periodCols splits an optional period into nullable year and month columns
func periodCols(p *billing.Period) (*int, *int) {
	if p == nil {
		return nil, nil
	}
	year, month := p.Year, int(p.Month)
	return &year, &month
}

// colsPeriod rebuilds an optional period from nullable year and month columns
func colsPeriod(year, month *int) *billing.Period {
	if year == nil || month == nil {
		return nil
	}
	return &billing.Period{Year: *year, Month: time.Month(*month)}
}
