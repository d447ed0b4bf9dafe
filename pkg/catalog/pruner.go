package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
)

// Pruner enforces the retention policy of a Store.
type Pruner struct {
	store     Store
	config    *config.RetentionConfig
	logger    *slog.Logger
	scheduler *Scheduler

	// OnPrune, when set, is called with the number of records each
	// successful Prune removed.
	OnPrune func(deleted int64)
}

// NewPruner creates a pruner for store. A nil config keeps records forever.
func NewPruner(store Store, cfg *config.RetentionConfig, logger *slog.Logger) *Pruner {
	if cfg == nil {
		cfg = &config.RetentionConfig{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pruner{
		store:  store,
		config: cfg,
		logger: logger.With("component", "catalog.retention"),
	}
	p.scheduler = NewScheduler(p, cfg.Schedule, logger)
	return p
}

// Prune deletes records scanned before the retention period, then the
// oldest records beyond MaxRecords. It returns the number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.Days > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
		p.logger.Info("pruned records by age",
			"deleted_count", deleted,
			"retention_days", p.config.Days,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
		p.logger.Info("pruned records by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	if total == 0 {
		p.logger.Debug("no records pruned",
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	}
	if p.OnPrune != nil {
		p.OnPrune(total)
	}
	return total, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.Days)
	deleted, err := p.store.Delete(ctx, &Query{ScannedBefore: &cutoff})
	if err != nil {
		return 0, &RetentionError{RetentionDays: p.config.Days, Cause: err}
	}
	return deleted, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.store.Count(ctx, &Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	excess := count - p.config.MaxRecords
	p.logger.Info("record count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", excess,
	)
	return p.store.DeleteOldest(ctx, excess)
}

// Start starts scheduled pruning. It is a no-op without a schedule.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning, or nil.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
