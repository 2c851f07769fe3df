package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

const (
	LowStockSweepJob = "low-stock-sweep"
	LedgerAuditJob   = "ledger-audit"
)

// LowStockSweeper is the part of the alert service the sweep job needs
type LowStockSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// LedgerAuditor is the part of the ledger service the audit job needs
type LedgerAuditor interface {
	VerifyAll(ctx context.Context) ([]*models.LedgerVerification, error)
}

// JobScheduler runs the periodic inventory maintenance jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	sweeper   LowStockSweeper
	auditor   LedgerAuditor
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(sweeper LowStockSweeper, auditor LedgerAuditor, sweepInterval, auditInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		sweeper:   sweeper,
		auditor:   auditor,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.register(LowStockSweepJob, sweepInterval, js.RunLowStockSweep); err != nil {
		return nil, err
	}
	if err := js.register(LedgerAuditJob, auditInterval, js.RunLedgerAudit); err != nil {
		return nil, err
	}

	logger.Logger.Info().Int("jobs", len(js.jobs)).Msg("registered background jobs")
	return js, nil
}

func (js *JobScheduler) register(name string, interval time.Duration, task func(ctx context.Context) error) error {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task, context.Background()),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("create %s job: %w", name, err)
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
	return nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	logger.Logger.Info().Msg("starting background job scheduler")
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	logger.Logger.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

// RunLowStockSweep raises alerts for parts under threshold that have none open
func (js *JobScheduler) RunLowStockSweep(ctx context.Context) error {
	start := time.Now()
	raised, err := js.sweeper.Sweep(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Str("job", LowStockSweepJob).Msg("low stock sweep failed")
		return err
	}

	logger.Info(ctx).
		Str("job", LowStockSweepJob).
		Int("raised", raised).
		Dur("duration", time.Since(start)).
		Msg("low stock sweep completed")
	return nil
}

// RunLedgerAudit replays every part's ledger against its stock
func (js *JobScheduler) RunLedgerAudit(ctx context.Context) error {
	start := time.Now()
	mismatches, err := js.auditor.VerifyAll(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Str("job", LedgerAuditJob).Msg("ledger audit failed")
		return err
	}

	event := logger.Info(ctx)
	if len(mismatches) > 0 {
		event = logger.Warn(ctx)
	}
	event.
		Str("job", LedgerAuditJob).
		Int("mismatches", len(mismatches)).
		Dur("duration", time.Since(start)).
		Msg("ledger audit completed")
	return nil
}

var (
	_ LowStockSweeper = services.AlertService(nil)
	_ LedgerAuditor   = services.LedgerService(nil)
)
