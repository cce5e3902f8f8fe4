package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Config holds scheduler configuration.
type Config struct {
	DailySpec  string        // Standard 5-field cron spec or descriptor
	RunOnStart bool          // Run the startup import when Start is called
	RunTimeout time.Duration // Upper bound for a single import run; 0 means none
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		DailySpec:  "0 17 * * *",
		RunOnStart: true,
		RunTimeout: 30 * time.Minute,
	}
}

// Scheduler owns the cron runner and the startup task.
type Scheduler struct {
	cfg      Config
	importer portssvc.ExchangeRateImportSvc
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler. The daily cron expression is validated here.
func New(cfg Config, importer portssvc.ExchangeRateImportSvc, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "scheduler"))

	cronLogger := slogCronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	s := &Scheduler{
		cfg:      cfg,
		importer: importer,
		cron:     c,
		logger:   logger,
	}

	if _, err := c.AddFunc(cfg.DailySpec, s.runDaily); err != nil {
		return nil, fmt.Errorf("invalid daily import schedule %q: %w", cfg.DailySpec, err)
	}
	return s, nil
}

// Start launches the startup import (if enabled) and the recurring schedule.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	if s.cfg.RunOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run("startup", s.importer.ImportInitial)
		}()
	}

	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("Daily import scheduled",
			slog.String("spec", s.cfg.DailySpec),
			slog.Time("next_run", e.Next),
		)
	}
}

// Stop cancels in-flight imports and waits for them to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runDaily() {
	s.run("daily", s.importer.ImportDaily)
}

func (s *Scheduler) run(trigger string, importFn func(context.Context) (*domain.ImportResult, error)) {
	ctx := s.ctx
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := importFn(ctx)
	attrs := []any{
		slog.String("trigger", trigger),
		slog.Duration("duration", time.Since(start)),
	}
	if result != nil {
		attrs = append(attrs,
			slog.String("range", result.Range.String()),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
		)
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.Error("Scheduled import failed", attrs...)
		return
	}
	s.logger.Info("Scheduled import completed", attrs...)
}

// slogCronLogger adapts slog to cron.Logger.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)
	l.logger.Error(msg, args...)
}
