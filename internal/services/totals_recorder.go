package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fberrez/minihabits/internal/infrastructure/buffer"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/pkg/dateutil"
	"github.com/fberrez/minihabits/repository"
	habitsUC "github.com/fberrez/minihabits/usecase/habits"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	RedisOnline() bool
}

// RecorderConfig controls how frequently buffered deltas are drained.
type RecorderConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// TotalsRecorder applies completion deltas to the home-page daily counter.
// The counter is best-effort: a delta that cannot reach Redis is buffered
// locally and replayed by the cron drain once the connection recovers, and
// no failure ever propagates to the habit mutation that produced it.
type TotalsRecorder struct {
	totals  repository.DailyTotalsRepository
	store   *buffer.Store
	monitor ConnectionHealth
	clock   clock.Clock
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     RecorderConfig
}

func NewTotalsRecorder(
	totals repository.DailyTotalsRepository,
	store *buffer.Store,
	monitor ConnectionHealth,
	clk clock.Clock,
	logger *zap.Logger,
	cfg RecorderConfig,
) *TotalsRecorder {
	// The schedule is expressed in whole seconds; anything finer would
	// render as "@every 0s" and never fire.
	if cfg.Interval < time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &TotalsRecorder{
		totals:  totals,
		store:   store,
		monitor: monitor,
		clock:   clk,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := r.Drain(ctx); err != nil {
			r.logger.Error("totals drain failed", zap.Error(err))
		}
	}); err != nil {
		r.logger.Error("failed to schedule totals drain",
			zap.String("schedule", schedule),
			zap.Error(err))
	}

	return r
}

// Record applies a delta to today's counter, falling back to the buffer.
func (r *TotalsRecorder) Record(ctx context.Context, delta int) {
	if r == nil || delta == 0 {
		return
	}
	day := dateutil.DayOf(r.clock.Now())

	if r.monitor == nil || r.monitor.RedisOnline() {
		if err := r.totals.Add(ctx, day, int64(delta)); err == nil {
			return
		} else {
			r.logger.Warn("totals update failed, buffering", zap.String("day", day), zap.Error(err))
		}
	}

	if r.store == nil {
		return
	}
	if err := r.store.Enqueue(buffer.Delta{Day: day, Amount: int64(delta)}); err != nil {
		r.logger.Error("failed to buffer totals delta", zap.String("day", day), zap.Error(err))
	}
}

// Start launches the cron scheduler.
func (r *TotalsRecorder) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("totals recorder started")
}

// Stop gracefully stops the scheduler.
func (r *TotalsRecorder) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("totals recorder stopped")
}

// Drain replays buffered deltas synchronously.
func (r *TotalsRecorder) Drain(ctx context.Context) error {
	if r == nil || r.store == nil {
		return nil
	}
	if r.monitor != nil && !r.monitor.RedisOnline() {
		r.logger.Debug("skipping totals drain (offline)")
		return nil
	}

	deltas, err := r.store.GetBatch(r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, delta := range deltas {
		if err := r.totals.Add(ctx, delta.Day, delta.Amount); err != nil {
			r.logger.Error("failed to replay totals delta",
				zap.String("delta_id", delta.ID),
				zap.String("day", delta.Day),
				zap.Error(err))

			delta.Retries++
			if delta.Retries >= r.cfg.MaxRetries {
				r.logger.Warn("dropping totals delta (max retries reached)", zap.String("delta_id", delta.ID))
				_ = r.store.Remove(delta)
				continue
			}

			if err := r.store.Remove(delta); err != nil {
				r.logger.Warn("failed to remove totals delta", zap.Error(err))
			}
			if err := r.store.Requeue(delta); err != nil {
				r.logger.Error("failed to requeue totals delta", zap.Error(err))
			}
			continue
		}

		if err := r.store.Remove(delta); err != nil {
			r.logger.Warn("failed to purge replayed totals delta", zap.Error(err))
		}
	}
	return nil
}

var _ habitsUC.CompletionRecorder = (*TotalsRecorder)(nil)
