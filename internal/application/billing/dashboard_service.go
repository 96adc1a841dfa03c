package billing

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/billing"
	"github.com/ledger/backend/internal/domain/inventory"
)

// dashboardWorkers bounds the per-request fan-out
const dashboardWorkers = 8

// DashboardCache caches rendered dashboard payloads between requests.
// Implementations must be safe for concurrent use.
type DashboardCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardRow is one customer's computed total on the dashboard
type DashboardRow struct {
	AccountNumber string            `json:"account_number"`
	CompanyName   string            `json:"company_name"`
	PlanName      string            `json:"plan_name,omitempty"`
	TotalMinor    int64             `json:"total_minor_units"`
	Warnings      []billing.Warning `json:"warnings,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// DashboardResponse is the all-customer billing overview for one period
type DashboardResponse struct {
	Period     string         `json:"period"`
	Rows       []DashboardRow `json:"rows"`
	TotalMinor int64          `json:"total_minor_units"`
	ComputedAt time.Time      `json:"computed_at"`
}

// DashboardService computes the all-customer overview by fanning the engine
// out across companies. Each computation runs over its own loaded snapshot,
// so the goroutines share nothing mutable.
type DashboardService struct {
	companies inventory.CompanyRepository
	invoices  *InvoiceService
	cache     DashboardCache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService. cache may be nil, in
// which case every request recomputes.
func NewDashboardService(companies inventory.CompanyRepository, invoices *InvoiceService, cache DashboardCache, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		companies: companies,
		invoices:  invoices,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Overview computes (or serves from cache) the dashboard for one period
func (s *DashboardService) Overview(ctx context.Context, period billing.Period) (*DashboardResponse, error) {
	cacheKey := "dashboard:" + period.String()
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var cached DashboardResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	companies, err := s.companies.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]DashboardRow, len(companies))
	sem := make(chan struct{}, dashboardWorkers)
	var wg sync.WaitGroup
	for i, company := range companies {
		wg.Add(1)
		go func(i int, company inventory.Company) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			rows[i] = s.computeRow(ctx, company, period)
		}(i, company)
	}
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].CompanyName < rows[j].CompanyName })

	response := &DashboardResponse{
		Period:     period.String(),
		Rows:       rows,
		ComputedAt: time.Now().UTC(),
	}
	for _, row := range rows {
		response.TotalMinor += row.TotalMinor
	}

	if s.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return response, nil
}

// computeRow computes one customer's row. A per-customer failure lands in
// the row instead of failing the whole overview.
func (s *DashboardService) computeRow(ctx context.Context, company inventory.Company, period billing.Period) DashboardRow {
	row := DashboardRow{
		AccountNumber: company.AccountNumber,
		CompanyName:   company.Name,
	}
	result, err := s.invoices.Compute(ctx, company.AccountNumber, period)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.PlanName = result.PlanName
	row.TotalMinor = result.Total.MinorUnits()
	row.Warnings = result.Warnings
	return row
}
