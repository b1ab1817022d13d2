package dashboard

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	DefaultTickInterval       = 2 * time.Second
	DefaultProductionSeed     = int64(1204520)
	DefaultRevenueSeed        = 450000.0
	DefaultMaxProductionStep  = 4
	DefaultRevenueProbability = 0.3
	DefaultMaxRevenueStep     = 50.0

	tickReason = "tick"
)

// TickerOptions configures the live counter simulator.
type TickerOptions struct {
	Interval           time.Duration
	ProductionSeed     int64
	RevenueSeed        float64
	MaxProductionStep  int
	RevenueProbability float64
	MaxRevenueStep     float64
	Source             rand.Source
	RefreshHook        RefreshHook
	Telemetry          Telemetry
}

// TickSnapshot is a point-in-time copy of the live counters.
type TickSnapshot struct {
	Production int64   `json:"production"`
	Revenue    float64 `json:"revenue"`
	Ticks      uint64  `json:"ticks"`
}

// Ticker nudges the production and revenue counters on a fixed schedule.
type Ticker struct {
	opts TickerOptions

	mu         sync.Mutex
	rng        *rand.Rand
	production int64
	revenue    float64
	ticks      uint64
}

// NewTicker builds a ticker seeded with the configured counters.
func NewTicker(opts TickerOptions) *Ticker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultTickInterval
	}
	if opts.ProductionSeed == 0 {
		opts.ProductionSeed = DefaultProductionSeed
	}
	if opts.RevenueSeed == 0 {
		opts.RevenueSeed = DefaultRevenueSeed
	}
	if opts.MaxProductionStep <= 0 {
		opts.MaxProductionStep = DefaultMaxProductionStep
	}
	if opts.RevenueProbability <= 0 || opts.RevenueProbability > 1 {
		opts.RevenueProbability = DefaultRevenueProbability
	}
	if opts.MaxRevenueStep <= 0 {
		opts.MaxRevenueStep = DefaultMaxRevenueStep
	}
	if opts.Source == nil {
		now := uint64(time.Now().UnixNano())
		opts.Source = rand.NewPCG(now, now>>1)
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Ticker{
		opts:       opts,
		rng:        rand.New(opts.Source),
		production: opts.ProductionSeed,
		revenue:    opts.RevenueSeed,
	}
}

// Options returns the effective options.
func (t *Ticker) Options() TickerOptions {
	return t.opts
}

// Snapshot returns the current counters without mutating them.
func (t *Ticker) Snapshot() TickSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Ticker) snapshotLocked() TickSnapshot {
	return TickSnapshot{
		Production: t.production,
		Revenue:    t.revenue,
		Ticks:      t.ticks,
	}
}

// Tick performs one firing: production grows by 0..MaxProductionStep and,
// with RevenueProbability, revenue grows by at most MaxRevenueStep.
func (t *Ticker) Tick() TickSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.production += int64(t.rng.IntN(t.opts.MaxProductionStep + 1))
	if t.rng.Float64() < t.opts.RevenueProbability {
		t.revenue += (1 - t.rng.Float64()) * t.opts.MaxRevenueStep
	}
	t.ticks++
	return t.snapshotLocked()
}

// Start launches the schedule. The returned handle owns the goroutine; once
// Stop returns the counters are never touched by the schedule again.
func (t *Ticker) Start(ctx context.Context) *TickerHandle {
	ctx, cancel := context.WithCancel(ctx)
	handle := &TickerHandle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, handle.done)
	t.opts.Telemetry.Record(ctx, "dashboard.ticker.start", map[string]any{
		"interval_ms": t.opts.Interval.Milliseconds(),
	})
	return handle
}

func (t *Ticker) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	clock := time.NewTicker(t.opts.Interval)
	defer clock.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-clock.C:
			if ctx.Err() != nil {
				return
			}
			snapshot := t.Tick()
			t.publish(ctx, snapshot)
		}
	}
}

func (t *Ticker) publish(ctx context.Context, snapshot TickSnapshot) {
	event := WidgetEvent{
		AreaCode: string(TabDashboard),
		Reason:   tickReason,
		Payload: map[string]any{
			"production": snapshot.Production,
			"revenue":    snapshot.Revenue,
			"ticks":      snapshot.Ticks,
		},
	}
	if err := t.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		t.opts.Telemetry.Record(ctx, "dashboard.ticker.publish_error", map[string]any{
			"error": err.Error(),
		})
	}
}

// TickerHandle is the cancellable scope of a running schedule.
type TickerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the schedule and waits for the goroutine to exit. Safe to call repeatedly.
func (h *TickerHandle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the schedule has exited.
func (h *TickerHandle) Done() <-chan struct{} {
	return h.done
}
