// Package batcher accumulates items and hands them to a flush func in size- or
// time-bounded batches, pacing flushes with a rate limiter.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once Stop has been called.
var ErrStopped = errors.New("batcher: stopped")

// FlushFunc persists a batch. The slice is owned by the callee.
type FlushFunc[T any] func(ctx context.Context, items []T) error

// Config bounds a Batcher. Zero fields take the defaults of DefaultConfig.
type Config struct {
	Size     int
	Interval time.Duration
	// RPS caps flush attempts per second.
	RPS int
	// MaxPending caps the number of items kept across failed flushes; beyond it the oldest
	// items are dropped.
	MaxPending int
}

// DefaultConfig returns the limits used when a Config field is left zero.
func DefaultConfig() Config {
	return Config{
		Size:       500,
		Interval:   time.Second,
		RPS:        10,
		MaxPending: 50_000,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Size <= 0 {
		c.Size = def.Size
	}
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.RPS <= 0 {
		c.RPS = def.RPS
	}
	if c.MaxPending < c.Size {
		c.MaxPending = max(def.MaxPending, c.Size)
	}
	return c
}

// Batcher buffers items and flushes them when Size items are pending or Interval elapses.
// A failed batch stays pending and is retried on the next tick.
type Batcher[T any] struct {
	cfg    Config
	flush  FlushFunc[T]
	items  chan T
	rl     ratelimit.Limiter
	logger *zap.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// New constructs a Batcher. Start must be called before items are flushed.
func New[T any](cfg Config, flush FlushFunc[T], logger *zap.Logger) *Batcher[T] {
	cfg = cfg.withDefaults()
	return &Batcher[T]{
		cfg:    cfg,
		flush:  flush,
		items:  make(chan T, cfg.Size*2),
		rl:     ratelimit.New(cfg.RPS),
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start launches the flushing loop. It ends when ctx is done or Stop is called, flushing
// what is pending one last time.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop ends the flushing loop and waits for the final flush. It is safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues item, blocking while the intake is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	var pending []T
	failed := false

	flush := func(fctx context.Context) {
		if len(pending) == 0 {
			return
		}
		b.rl.Take()
		batch := make([]T, len(pending))
		copy(batch, pending)
		if err := b.flush(fctx, batch); err != nil {
			failed = true
			b.logger.Warn("batch not flushed, keeping it pending",
				zap.Int("size", len(pending)),
				zap.Error(err))
			return
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(pending)))
		pending = pending[:0]
		failed = false
	}

	drain := func() {
		for {
			select {
			case item := <-b.items:
				pending = append(pending, item)
			default:
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			// the caller's context is gone; give the last flush a fresh one.
			flush(context.WithoutCancel(ctx))
			return

		case <-b.stop:
			drain()
			flush(ctx)
			return

		case item := <-b.items:
			pending = append(pending, item)
			if over := len(pending) - b.cfg.MaxPending; over > 0 {
				b.logger.Error("pending batch overflow, dropping oldest items", zap.Int("dropped", over))
				pending = append(pending[:0], pending[over:]...)
			}
			// after a failure only the ticker retries, so a broken sink is not hammered
			if !failed && len(pending) >= b.cfg.Size {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
