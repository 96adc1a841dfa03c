package upstream

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/infrastructure/config"
)

// InventoryClient pulls the company roster, assets and contacts from the
// inventory service. The bulk endpoint returns every company with its items
// in one call, which keeps a full snapshot pull at a single round trip.
type InventoryClient struct {
	source httpSource
	logger *zap.Logger
}

// NewInventoryClient builds an inventory source client
func NewInventoryClient(cfg config.UpstreamEndpoint, logger *zap.Logger) *InventoryClient {
	return &InventoryClient{
		source: newHTTPSource(cfg, authAPIKeyHeader),
		logger: logger,
	}
}

type companyPayload struct {
	ID            int64   `json:"id"`
	AccountNumber string  `json:"account_number"`
	Name          string  `json:"name"`
	BillingPlan   string  `json:"billing_plan"`
	ContractTerm  string  `json:"contract_term_length"`
	ContractStart *string `json:"contract_start_date"`
	Active        *bool   `json:"active"`
}

type assetPayload struct {
	ID          int64  `json:"id"`
	Hostname    string `json:"hostname"`
	BillingType string `json:"billing_type"`
}

type contactPayload struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type companyBulkPayload struct {
	Company  companyPayload   `json:"company"`
	Assets   []assetPayload   `json:"assets"`
	Contacts []contactPayload `json:"contacts"`
}

// FetchCompanies pulls the full company roster
func (c *InventoryClient) FetchCompanies(ctx context.Context) ([]inventory.Company, error) {
	var payload []companyPayload
	if err := c.source.getJSON(ctx, "/api/companies", nil, &payload); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	companies := make([]inventory.Company, 0, len(payload))
	for _, p := range payload {
		companies = append(companies, mapCompany(p, now))
	}
	return companies, nil
}

// FetchAssets pulls every company's assets via the bulk endpoint
func (c *InventoryClient) FetchAssets(ctx context.Context) ([]inventory.Asset, error) {
	bulk, err := c.fetchBulk(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var assets []inventory.Asset
	for _, entry := range bulk {
		for _, a := range entry.Assets {
			assets = append(assets, inventory.Asset{
				ID:            a.ID,
				AccountNumber: entry.Company.AccountNumber,
				Hostname:      a.Hostname,
				Type:          a.BillingType,
				SyncedAt:      now,
			})
		}
	}
	return assets, nil
}

// FetchContacts pulls every company's users via the bulk endpoint. The
// inventory service does not distinguish paid from free users; every synced
// contact bills as paid unless a user override says otherwise.
func (c *InventoryClient) FetchContacts(ctx context.Context) ([]inventory.Contact, error) {
	bulk, err := c.fetchBulk(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var contacts []inventory.Contact
	for _, entry := range bulk {
		for _, p := range entry.Contacts {
			name := p.FullName
			if name == "" {
				name = p.Name
			}
			contacts = append(contacts, inventory.Contact{
				ID:            p.ID,
				AccountNumber: entry.Company.AccountNumber,
				FullName:      name,
				Email:         p.Email,
				Paid:          true,
				SyncedAt:      now,
			})
		}
	}
	return contacts, nil
}

func (c *InventoryClient) fetchBulk(ctx context.Context) ([]companyBulkPayload, error) {
	var payload []companyBulkPayload
	if err := c.source.getJSON(ctx, "/api/companies/bulk", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func mapCompany(p companyPayload, syncedAt time.Time) inventory.Company {
	company := inventory.Company{
		ID:            p.ID,
		AccountNumber: p.AccountNumber,
		Name:          p.Name,
		PlanName:      p.BillingPlan,
		ContractTerm:  p.ContractTerm,
		Active:        true,
		SyncedAt:      syncedAt,
	}
	if p.Active != nil {
		company.Active = *p.Active
	}
	if p.ContractStart != nil {
		// The inventory service returns either a bare date or a full timestamp
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if start, err := time.Parse(layout, *p.ContractStart); err == nil {
				company.ContractStart = start
				break
			}
		}
	}
	return company
}
