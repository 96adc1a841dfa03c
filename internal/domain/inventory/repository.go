package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyRepository defines the interface for company snapshot persistence
type CompanyRepository interface {
	// FindByAccount finds a company by account number
	FindByAccount(ctx context.Context, accountNumber string) (*Company, error)

	// FindAllActive lists all active companies ordered by name
	FindAllActive(ctx context.Context) ([]Company, error)

	// ReplaceAll swaps the snapshot for the given rows in one transaction:
	// rows are upserted by upstream id and rows absent from the new snapshot
	// are removed
	ReplaceAll(ctx context.Context, companies []Company) error

	// CountByPlanName counts active companies referencing a plan name
	CountByPlanName(ctx context.Context, planName string) (int64, error)
}

// AssetRepository defines the interface for asset snapshot persistence
type AssetRepository interface {
	// FindByAccount lists the assets of one company
	FindByAccount(ctx context.Context, accountNumber string) ([]Asset, error)

	// ReplaceAll swaps the asset snapshot
	ReplaceAll(ctx context.Context, assets []Asset) error

	// UpdateBackupBytes sets the reported backup usage for one device
	UpdateBackupBytes(ctx context.Context, assetID int64, backupBytes int64) error
}

// ContactRepository defines the interface for contact snapshot persistence
type ContactRepository interface {
	// FindByAccount lists the contacts of one company
	FindByAccount(ctx context.Context, accountNumber string) ([]Contact, error)

	// ReplaceAll swaps the contact snapshot
	ReplaceAll(ctx context.Context, contacts []Contact) error
}

// TicketRepository defines the interface for ticket snapshot persistence
type TicketRepository interface {
	// FindByAccountAndWindow lists tickets whose last activity falls in
	// [from, to)
	FindByAccountAndWindow(ctx context.Context, accountNumber string, from, to time.Time) ([]Ticket, error)

	// SumHours totals the hours of tickets whose last activity falls in
	// [from, to)
	SumHours(ctx context.Context, accountNumber string, from, to time.Time) (decimal.Decimal, error)

	// ReplaceForAccount swaps one company's ticket snapshot
	ReplaceForAccount(ctx context.Context, accountNumber string, tickets []Ticket) error
}

// SyncRunRepository defines the interface for sync run bookkeeping
type SyncRunRepository interface {
	// Save creates or updates a run record
	Save(ctx context.Context, run *SyncRun) error

	// FindLatestPerJob returns the most recent run of each job
	FindLatestPerJob(ctx context.Context) ([]SyncRun, error)
}
