package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
)

// MockCompanyRepository is a mock implementation of inventory.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByAccount(ctx context.Context, accountNumber string) (*inventory.Company, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllActive(ctx context.Context) ([]inventory.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Company), args.Error(1)
}

func (m *MockCompanyRepository) ReplaceAll(ctx context.Context, companies []inventory.Company) error {
	args := m.Called(ctx, companies)
	return args.Error(0)
}

func (m *MockCompanyRepository) CountByPlanName(ctx context.Context, planName string) (int64, error) {
	args := m.Called(ctx, planName)
	return args.Get(0).(int64), args.Error(1)
}

// MockAssetRepository is a mock implementation of inventory.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindByAccount(ctx context.Context, accountNumber string) ([]inventory.Asset, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]inventory.Asset), args.Error(1)
}

func (m *MockAssetRepository) ReplaceAll(ctx context.Context, assets []inventory.Asset) error {
	args := m.Called(ctx, assets)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateBackupBytes(ctx context.Context, assetID int64, backupBytes int64) error {
	args := m.Called(ctx, assetID, backupBytes)
	return args.Error(0)
}

// MockContactRepository is a mock implementation of inventory.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByAccount(ctx context.Context, accountNumber string) ([]inventory.Contact, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]inventory.Contact), args.Error(1)
}

func (m *MockContactRepository) ReplaceAll(ctx context.Context, contacts []inventory.Contact) error {
	args := m.Called(ctx, contacts)
	return args.Error(0)
}

// MockTicketRepository is a mock implementation of inventory.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByAccountAndWindow(ctx context.Context, accountNumber string, from, to time.Time) ([]inventory.Ticket, error) {
	args := m.Called(ctx, accountNumber, from, to)
	return args.Get(0).([]inventory.Ticket), args.Error(1)
}

func (m *MockTicketRepository) SumHours(ctx context.Context, accountNumber string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTicketRepository) ReplaceForAccount(ctx context.Context, accountNumber string, tickets []inventory.Ticket) error {
	args := m.Called(ctx, accountNumber, tickets)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of billing.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingPlan), args.Error(1)
}

func (m *MockPlanRepository) FindByName(ctx context.Context, name string) (*billing.BillingPlan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.BillingPlan, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.BillingPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAllByName(ctx context.Context, term billing.ContractTerm) (map[string]*billing.BillingPlan, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(map[string]*billing.BillingPlan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *billing.BillingPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockOverrideRepository is a mock implementation of billing.OverrideRepository
type MockOverrideRepository struct {
	mock.Mock
}

func (m *MockOverrideRepository) FindByAccount(ctx context.Context, accountNumber string) (*billing.ClientOverride, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ClientOverride), args.Error(1)
}

func (m *MockOverrideRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.ClientOverride, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.ClientOverride), args.Error(1)
}

func (m *MockOverrideRepository) CountByPlanName(ctx context.Context, planName string) (int64, error) {
	args := m.Called(ctx, planName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOverrideRepository) Save(ctx context.Context, override *billing.ClientOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockOverrideRepository) DeleteByAccount(ctx context.Context, accountNumber string) error {
	args := m.Called(ctx, accountNumber)
	return args.Error(0)
}

// MockItemOverrideRepository is a mock implementation of billing.ItemOverrideRepository
type MockItemOverrideRepository struct {
	mock.Mock
}

func (m *MockItemOverrideRepository) FindAssetOverrides(ctx context.Context, accountNumber string) ([]*billing.AssetOverride, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]*billing.AssetOverride), args.Error(1)
}

func (m *MockItemOverrideRepository) FindUserOverrides(ctx context.Context, accountNumber string) ([]*billing.UserOverride, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]*billing.UserOverride), args.Error(1)
}

func (m *MockItemOverrideRepository) SaveAssetOverride(ctx context.Context, override *billing.AssetOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockItemOverrideRepository) SaveUserOverride(ctx context.Context, override *billing.UserOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockItemOverrideRepository) DeleteAssetOverride(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemOverrideRepository) DeleteUserOverride(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockManualItemRepository is a mock implementation of billing.ManualItemRepository
type MockManualItemRepository struct {
	mock.Mock
}

func (m *MockManualItemRepository) FindManualAssets(ctx context.Context, accountNumber string) ([]*billing.ManualAsset, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]*billing.ManualAsset), args.Error(1)
}

func (m *MockManualItemRepository) FindManualUsers(ctx context.Context, accountNumber string) ([]*billing.ManualUser, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]*billing.ManualUser), args.Error(1)
}

func (m *MockManualItemRepository) SaveManualAsset(ctx context.Context, asset *billing.ManualAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockManualItemRepository) SaveManualUser(ctx context.Context, user *billing.ManualUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockManualItemRepository) DeleteManualAsset(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManualItemRepository) DeleteManualUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLineItemRepository is a mock implementation of billing.LineItemRepository
type MockLineItemRepository struct {
	mock.Mock
}

func (m *MockLineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CustomLineItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CustomLineItem), args.Error(1)
}

func (m *MockLineItemRepository) FindByAccount(ctx context.Context, accountNumber string) ([]*billing.CustomLineItem, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]*billing.CustomLineItem), args.Error(1)
}

func (m *MockLineItemRepository) Save(ctx context.Context, item *billing.CustomLineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockLineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByAccountAndPeriod(ctx context.Context, accountNumber string, period billing.Period) (*billing.Invoice, error) {
	args := m.Called(ctx, accountNumber, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByPeriod(ctx context.Context, period billing.Period) ([]*billing.Invoice, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
