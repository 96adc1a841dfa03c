// Package scheduler runs the upstream sync jobs on cron schedules.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ledger/backend/internal/domain/inventory"
	"github.com/ledger/backend/internal/infrastructure/config"
)

// jobTimeout bounds one sync run; a wedged upstream must not pin a cron slot
// forever
const jobTimeout = 30 * time.Minute

// SyncRunner is the application service that executes one sync job
type SyncRunner interface {
	Run(ctx context.Context, job inventory.SyncJob) error
}

// SyncScheduler drives the three pull jobs on their configured cron
// schedules. Overlapping fires of the same job serialize inside the runner,
// so the scheduler never needs to skip a slot.
type SyncScheduler struct {
	cfg    config.SchedulerConfig
	runner SyncRunner
	logger *zap.Logger

	cron *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewSyncScheduler builds a scheduler over the sync service
func NewSyncScheduler(cfg config.SchedulerConfig, runner SyncRunner, logger *zap.Logger) *SyncScheduler {
	return &SyncScheduler{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the job schedules and starts the cron loop. A disabled
// scheduler starts nothing and returns nil.
func (s *SyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.Enabled {
		s.logger.Info("sync scheduler disabled")
		return nil
	}
	if s.running {
		return nil
	}

	schedules := []struct {
		job  inventory.SyncJob
		spec string
	}{
		{inventory.SyncJobInventory, s.cfg.InventorySchedule},
		{inventory.SyncJobTickets, s.cfg.TicketSchedule},
		{inventory.SyncJobBackup, s.cfg.BackupSchedule},
	}
	for _, entry := range schedules {
		job := entry.job
		if _, err := s.cron.AddFunc(entry.spec, func() { s.runJob(job) }); err != nil {
			return err
		}
		s.logger.Info("sync job scheduled",
			zap.String("job", string(entry.job)),
			zap.String("schedule", entry.spec),
		)
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop halts the cron loop and waits for in-flight jobs to finish
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("sync scheduler stopped")
}

func (s *SyncScheduler) runJob(job inventory.SyncJob) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := s.runner.Run(ctx, job); err != nil {
		s.logger.Error("scheduled sync failed",
			zap.String("job", string(job)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("scheduled sync finished",
		zap.String("job", string(job)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
