package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
)

// InvoiceService computes invoices by assembling snapshot data and billing
// configuration and handing both to the engine. All I/O happens here; the
// engine itself stays pure.
type InvoiceService struct {
	companies     inventory.CompanyRepository
	assets        inventory.AssetRepository
	contacts      inventory.ContactRepository
	tickets       inventory.TicketRepository
	plans         billing.PlanRepository
	overrides     billing.OverrideRepository
	itemOverrides billing.ItemOverrideRepository
	manualItems   billing.ManualItemRepository
	lineItems     billing.LineItemRepository
	invoices      billing.InvoiceRepository
	logger        *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	companies inventory.CompanyRepository,
	assets inventory.AssetRepository,
	contacts inventory.ContactRepository,
	tickets inventory.TicketRepository,
	plans billing.PlanRepository,
	overrides billing.OverrideRepository,
	itemOverrides billing.ItemOverrideRepository,
	manualItems billing.ManualItemRepository,
	lineItems billing.LineItemRepository,
	invoices billing.InvoiceRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		companies:     companies,
		assets:        assets,
		contacts:      contacts,
		tickets:       tickets,
		plans:         plans,
		overrides:     overrides,
		itemOverrides: itemOverrides,
		manualItems:   manualItems,
		lineItems:     lineItems,
		invoices:      invoices,
		logger:        logger,
	}
}

// Compute runs the billing engine for one account and period over the
// current snapshot and configuration
func (s *InvoiceService) Compute(ctx context.Context, accountNumber string, period billing.Period) (*billing.InvoiceResult, error) {
	company, err := s.companies.FindByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	cfg, err := s.loadConfig(ctx, accountNumber, contractTermOf(company))
	if err != nil {
		return nil, err
	}
	data, err := s.loadData(ctx, company, period, cfg.Override)
	if err != nil {
		return nil, err
	}

	result, err := billing.ComputeInvoice(accountNumber, period, data, cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		s.logger.Warn("invoice warning",
			zap.String("account", accountNumber),
			zap.String("period", period.String()),
			zap.String("code", w.Code),
			zap.String("message", w.Message))
	}
	return result, nil
}

// SaveDraft computes an invoice and persists it as a draft, replacing any
// existing draft for the same account and period
func (s *InvoiceService) SaveDraft(ctx context.Context, accountNumber string, period billing.Period) (*billing.Invoice, error) {
	result, err := s.Compute(ctx, accountNumber, period)
	if err != nil {
		return nil, err
	}

	existing, err := s.invoices.FindByAccountAndPeriod(ctx, accountNumber, period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := existing.Replace(result); err != nil {
			return nil, err
		}
		if err := s.invoices.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	invoice, err := billing.NewInvoice(result)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Finalize freezes a stored invoice
func (s *InvoiceService) Finalize(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Finalize(); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetStored returns the persisted invoice for an account and period
func (s *InvoiceService) GetStored(ctx context.Context, accountNumber string, period billing.Period) (*billing.Invoice, error) {
	return s.invoices.FindByAccountAndPeriod(ctx, accountNumber, period)
}

// contractTermOf maps a company's upstream term string to a contract term,
// defaulting to month-to-month when the string is unrecognized
func contractTermOf(company *inventory.Company) billing.ContractTerm {
	if term, ok := billing.ParseContractTerm(company.ContractTerm); ok {
		return term
	}
	return billing.TermMonthToMonth
}

// loadConfig assembles the billing configuration for one account. The plan
// catalog carries the rate card variants matching the company's contract
// term. A missing override row simply means no overrides.
func (s *InvoiceService) loadConfig(ctx context.Context, accountNumber string, term billing.ContractTerm) (billing.BillingConfig, error) {
	cfg := billing.BillingConfig{}

	plans, err := s.plans.FindAllByName(ctx, term)
	if err != nil {
		return cfg, err
	}
	cfg.Plans = plans

	override, err := s.overrides.FindByAccount(ctx, accountNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return cfg, err
	}
	cfg.Override = override

	if cfg.AssetOverrides, err = s.itemOverrides.FindAssetOverrides(ctx, accountNumber); err != nil {
		return cfg, err
	}
	if cfg.UserOverrides, err = s.itemOverrides.FindUserOverrides(ctx, accountNumber); err != nil {
		return cfg, err
	}
	if cfg.ManualAssets, err = s.manualItems.FindManualAssets(ctx, accountNumber); err != nil {
		return cfg, err
	}
	if cfg.ManualUsers, err = s.manualItems.FindManualUsers(ctx, accountNumber); err != nil {
		return cfg, err
	}
	if cfg.LineItems, err = s.lineItems.FindByAccount(ctx, accountNumber); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadData assembles the snapshot view the engine runs over
func (s *InvoiceService) loadData(ctx context.Context, company *inventory.Company, period billing.Period, override *billing.ClientOverride) (billing.ExternalData, error) {
	data := billing.ExternalData{
		Company: billing.CompanyInfo{
			AccountNumber: company.AccountNumber,
			Name:          company.Name,
			PlanName:      company.PlanName,
			ContractStart: company.ContractStart,
		},
	}
	if term, ok := billing.ParseContractTerm(company.ContractTerm); ok {
		data.Company.ContractTerm = term
	}

	assets, err := s.assets.FindByAccount(ctx, company.AccountNumber)
	if err != nil {
		return data, err
	}
	for _, a := range assets {
		data.Assets = append(data.Assets, billing.ExternalAsset{
			ID:          a.ID,
			Hostname:    a.Hostname,
			Type:        a.Type,
			BackupBytes: a.BackupBytes,
		})
	}

	contacts, err := s.contacts.FindByAccount(ctx, company.AccountNumber)
	if err != nil {
		return data, err
	}
	for _, c := range contacts {
		data.Users = append(data.Users, billing.ExternalUser{
			ID:       c.ID,
			FullName: c.FullName,
			Email:    c.Email,
			Paid:     c.Paid,
		})
	}

	tickets, err := s.tickets.FindByAccountAndWindow(ctx, company.AccountNumber, period.Start(), period.End())
	if err != nil {
		return data, err
	}
	for _, t := range tickets {
		data.Tickets = append(data.Tickets, billing.TicketRecord{
			ID:             t.ID,
			Number:         t.Number,
			Subject:        t.Subject,
			Hours:          t.Hours,
			LastActivityAt: t.LastActivityAt,
		})
	}

	data.HoursUsedEarlierInYear, err = s.yearlyPoolUsage(ctx, company.AccountNumber, period, override)
	return data, err
}

// yearlyPoolUsage estimates how much of the yearly prepaid pool the client
// consumed before this period: total hours since January 1 minus the monthly
// pools of the elapsed months, clamped at zero.
func (s *InvoiceService) yearlyPoolUsage(ctx context.Context, accountNumber string, period billing.Period, override *billing.ClientOverride) (decimal.Decimal, error) {
	if override == nil || override.PrepaidHoursYearly == nil || override.PrepaidHoursYearly.IsZero() {
		return decimal.Zero, nil
	}

	yearStart := time.Date(period.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	sum, err := s.tickets.SumHours(ctx, accountNumber, yearStart, period.Start())
	if err != nil {
		return decimal.Zero, err
	}

	monthly := decimal.Zero
	if override.PrepaidHoursMonthly != nil {
		monthly = *override.PrepaidHoursMonthly
	}
	elapsed := decimal.NewFromInt(int64(period.Month) - 1)
	used := sum.Sub(monthly.Mul(elapsed))
	if used.IsNegative() {
		return decimal.Zero, nil
	}
	return used, nil
}
