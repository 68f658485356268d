package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/clock"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/pkg/batcher"
)

// AuditExporterConfig tunes the export pipeline.
type AuditExporterConfig struct {
	Network string
	// FetchLimit bounds the entries read per View.
	FetchLimit int
	// PollInterval is the fallback wake-up when no AuditLog event arrives.
	PollInterval time.Duration
	// ResumeAttempts bounds the reads of the last exported id at start-up.
	ResumeAttempts int
	RetryDelay     time.Duration
	Batch          batcher.Config
}

// DefaultAuditExporterConfig returns the settings used for zero fields.
func DefaultAuditExporterConfig() AuditExporterConfig {
	return AuditExporterConfig{
		FetchLimit:     1000,
		PollInterval:   5 * time.Second,
		ResumeAttempts: 5,
		RetryDelay:     2 * time.Second,
		Batch:          batcher.DefaultConfig(),
	}
}

// AuditExporter copies committed audit entries into the repository. It resumes after the
// highest id already stored for its network and is woken by AuditLog chain events.
type AuditExporter struct {
	chain   Chain
	log     AuditLog
	repo    AuditRepository
	metrics AuditExporterMetrics
	cfg     AuditExporterConfig
	sleep   func(context.Context, time.Duration) error
	logger  *zap.Logger
}

// NewAuditExporter wires an exporter for the audit log at log.Address().
func NewAuditExporter(
	c Chain,
	log AuditLog,
	repo AuditRepository,
	metrics AuditExporterMetrics,
	cfg AuditExporterConfig,
	logger *zap.Logger,
) (*AuditExporter, error) {
	if c == nil || log == nil || repo == nil || metrics == nil {
		return nil, errors.New("audit exporter: chain, log, repository and metrics are required")
	}
	if cfg.Network == "" {
		return nil, errors.New("audit exporter: network is required")
	}
	def := DefaultAuditExporterConfig()
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = def.FetchLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.ResumeAttempts <= 0 {
		cfg.ResumeAttempts = def.ResumeAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	return &AuditExporter{
		chain:   c,
		log:     log,
		repo:    repo,
		metrics: metrics,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
		logger:  logger.With(zap.String("network", cfg.Network)),
	}, nil
}

// Run exports until ctx is done. Entries read before cancellation are flushed before Run
// returns.
func (e *AuditExporter) Run(ctx context.Context) error {
	next, err := e.resume(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	wake := make(chan struct{}, 1)
	events := make(chan chain.Event, 64)
	sub := e.chain.Subscribe(events)
	defer sub.Unsubscribe()

	// The feed is written to while the chain lock is contended, so this loop only signals.
	go func() {
		addr := e.log.Address()
		for {
			select {
			case ev := <-events:
				if ev.Contract != addr || ev.Name != "AuditLog" {
					continue
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case <-sub.Err():
				return
			}
		}
	}()

	b := batcher.New(e.cfg.Batch, e.flush, e.logger.Named("batcher"))
	b.Start(ctx)
	defer b.Stop()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		next, err = e.pull(ctx, b, next)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-wake:
		case <-ticker.C:
		}
	}
}

// resume returns the first id to export. The repository is retried while it is
// unreachable.
func (e *AuditExporter) resume(ctx context.Context) (uint64, error) {
	var (
		maxID uint64
		ok    bool
		err   error
	)
	for attempt := 1; ; attempt++ {
		maxID, ok, err = e.repo.MaxLogID(ctx, e.cfg.Network)
		if err == nil {
			break
		}
		if attempt >= e.cfg.ResumeAttempts {
			return 0, fmt.Errorf("load last exported audit log id: %w", err)
		}
		e.logger.Warn("audit repository unavailable",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", e.cfg.RetryDelay),
			zap.Error(err))
		if err := e.sleep(ctx, e.cfg.RetryDelay); err != nil {
			return 0, err
		}
	}
	if !ok {
		e.logger.Info("exporting audit log from the first entry")
		return 0, nil
	}
	e.metrics.SetLastID(maxID)
	e.logger.Info("resuming audit log export", zap.Uint64("after_id", maxID))
	return maxID + 1, nil
}

// pull queues every entry from next onwards and returns the id after the last queued one.
func (e *AuditExporter) pull(ctx context.Context, b *batcher.Batcher[model.LogEntry], next uint64) (uint64, error) {
	for {
		started := time.Now()
		var entries []model.LogEntry
		err := e.chain.View(func(time.Time) error {
			entries = e.log.Entries(next, e.cfg.FetchLimit)
			return nil
		})
		e.metrics.ObserveFetch(err, started)
		if err != nil {
			return next, fmt.Errorf("read audit entries from %d: %w", next, err)
		}
		for _, entry := range entries {
			if err := b.Add(ctx, entry); err != nil {
				return next, err
			}
			next = entry.ID + 1
		}
		if len(entries) < e.cfg.FetchLimit {
			return next, nil
		}
	}
}

func (e *AuditExporter) flush(ctx context.Context, entries []model.LogEntry) error {
	started := time.Now()
	err := e.repo.InsertAuditLogs(ctx, e.cfg.Network, entries)
	e.metrics.ObserveFlush(err, len(entries), started)
	if err != nil {
		return err
	}
	last := entries[len(entries)-1].ID
	e.metrics.SetLastID(last)
	e.logger.Debug("audit entries exported",
		zap.Int("count", len(entries)),
		zap.Uint64("last_id", last))
	return nil
}
