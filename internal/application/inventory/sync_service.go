package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/domain/shared"
)

// InventoryClient pulls companies, assets and contacts from the upstream
// inventory source
type InventoryClient interface {
	FetchCompanies(ctx context.Context) ([]inventory.Company, error)
	FetchAssets(ctx context.Context) ([]inventory.Asset, error)
	FetchContacts(ctx context.Context) ([]inventory.Contact, error)
}

// TicketClient pulls closed-ticket hours from the ticketing source
type TicketClient interface {
	FetchTickets(ctx context.Context, accountNumber string, from, to time.Time) ([]inventory.Ticket, error)
}

// BackupClient pulls per-device backup usage from the backup provider.
// The returned map is keyed by upstream asset id, values are exact bytes.
type BackupClient interface {
	FetchUsage(ctx context.Context) (map[int64]int64, error)
}

// SyncService runs the upstream pull jobs and records their outcomes. Each
// job runs serially with itself; different jobs may overlap.
type SyncService struct {
	inventoryClient InventoryClient
	ticketClient    TicketClient
	backupClient    BackupClient

	companies inventory.CompanyRepository
	assets    inventory.AssetRepository
	contacts  inventory.ContactRepository
	tickets   inventory.TicketRepository
	runs      inventory.SyncRunRepository

	logger *zap.Logger
	locks  map[inventory.SyncJob]*sync.Mutex
}

// NewSyncService creates a new SyncService
func NewSyncService(
	inventoryClient InventoryClient,
	ticketClient TicketClient,
	backupClient BackupClient,
	companies inventory.CompanyRepository,
	assets inventory.AssetRepository,
	contacts inventory.ContactRepository,
	tickets inventory.TicketRepository,
	runs inventory.SyncRunRepository,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		inventoryClient: inventoryClient,
		ticketClient:    ticketClient,
		backupClient:    backupClient,
		companies:       companies,
		assets:          assets,
		contacts:        contacts,
		tickets:         tickets,
		runs:            runs,
		logger:          logger,
		locks: map[inventory.SyncJob]*sync.Mutex{
			inventory.SyncJobInventory: {},
			inventory.SyncJobTickets:   {},
			inventory.SyncJobBackup:    {},
		},
	}
}

// Run executes one named sync job
func (s *SyncService) Run(ctx context.Context, job inventory.SyncJob) error {
	lock, ok := s.locks[job]
	if !ok {
		return shared.NewValidationError(fmt.Sprintf("Unknown sync job %q", job))
	}
	lock.Lock()
	defer lock.Unlock()

	run, err := inventory.NewSyncRun(job)
	if err != nil {
		return err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return err
	}

	start := time.Now()
	var jobErr error
	switch job {
	case inventory.SyncJobInventory:
		jobErr = s.syncInventory(ctx)
	case inventory.SyncJobTickets:
		jobErr = s.syncTickets(ctx)
	case inventory.SyncJobBackup:
		jobErr = s.syncBackup(ctx)
	}

	run.Complete(jobErr)
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Error("failed to record sync run", zap.String("job", string(job)), zap.Error(err))
	}
	if jobErr != nil {
		s.logger.Error("sync job failed", zap.String("job", string(job)), zap.Error(jobErr))
		return jobErr
	}
	s.logger.Info("sync job finished", zap.String("job", string(job)), zap.Duration("took", time.Since(start)))
	return nil
}

// Statuses returns the latest run of each job
func (s *SyncService) Statuses(ctx context.Context) ([]inventory.SyncRun, error) {
	return s.runs.FindLatestPerJob(ctx)
}

// syncInventory replaces the company, asset and contact snapshots with the
// upstream state
func (s *SyncService) syncInventory(ctx context.Context) error {
	companies, err := s.inventoryClient.FetchCompanies(ctx)
	if err != nil {
		return fmt.Errorf("fetch companies: %w", err)
	}
	if err := s.companies.ReplaceAll(ctx, companies); err != nil {
		return fmt.Errorf("replace companies: %w", err)
	}

	assets, err := s.inventoryClient.FetchAssets(ctx)
	if err != nil {
		return fmt.Errorf("fetch assets: %w", err)
	}
	if err := s.assets.ReplaceAll(ctx, assets); err != nil {
		return fmt.Errorf("replace assets: %w", err)
	}

	contacts, err := s.inventoryClient.FetchContacts(ctx)
	if err != nil {
		return fmt.Errorf("fetch contacts: %w", err)
	}
	if err := s.contacts.ReplaceAll(ctx, contacts); err != nil {
		return fmt.Errorf("replace contacts: %w", err)
	}
	return nil
}

// syncTickets refreshes the current calendar year's ticket hours for every
// active company
func (s *SyncService) syncTickets(ctx context.Context) error {
	companies, err := s.companies.FindAllActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, company := range companies {
		tickets, err := s.ticketClient.FetchTickets(ctx, company.AccountNumber, yearStart, now)
		if err != nil {
			return fmt.Errorf("fetch tickets for %s: %w", company.AccountNumber, err)
		}
		if err := s.tickets.ReplaceForAccount(ctx, company.AccountNumber, tickets); err != nil {
			return fmt.Errorf("replace tickets for %s: %w", company.AccountNumber, err)
		}
	}
	return nil
}

// syncBackup writes per-device backup bytes onto the asset snapshot rows
func (s *SyncService) syncBackup(ctx context.Context) error {
	usage, err := s.backupClient.FetchUsage(ctx)
	if err != nil {
		return fmt.Errorf("fetch backup usage: %w", err)
	}
	for assetID, bytes := range usage {
		err := s.assets.UpdateBackupBytes(ctx, assetID, bytes)
		if errors.Is(err, shared.ErrNotFound) {
			// the provider can report devices the inventory no longer has
			s.logger.Warn("backup usage for unknown asset", zap.Int64("asset_id", assetID))
			continue
		}
		if err != nil {
			return fmt.Errorf("update backup bytes for asset %d: %w", assetID, err)
		}
	}
	return nil
}
