package dashboard

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHook struct {
	mu     sync.Mutex
	events []WidgetEvent
}

func (h *recordingHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHook) Events() []WidgetEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]WidgetEvent(nil), h.events...)
}

func TestTickerDefaults(t *testing.T) {
	ticker := NewTicker(TickerOptions{})
	snapshot := ticker.Snapshot()
	assert.Equal(t, DefaultProductionSeed, snapshot.Production)
	assert.Equal(t, DefaultRevenueSeed, snapshot.Revenue)
	assert.Zero(t, snapshot.Ticks)
	assert.Equal(t, DefaultTickInterval, ticker.Options().Interval)
}

func TestTickerStepsStayWithinBounds(t *testing.T) {
	ticker := NewTicker(TickerOptions{Source: rand.NewPCG(7, 11)})
	prev := ticker.Snapshot()
	revenueMoves := 0
	for i := 0; i < 2000; i++ {
		next := ticker.Tick()
		dp := next.Production - prev.Production
		dr := next.Revenue - prev.Revenue
		require.GreaterOrEqual(t, dp, int64(0))
		require.LessOrEqual(t, dp, int64(DefaultMaxProductionStep))
		require.GreaterOrEqual(t, dr, 0.0)
		require.LessOrEqual(t, dr, DefaultMaxRevenueStep+1e-6)
		if dr > 0 {
			revenueMoves++
		}
		require.Equal(t, prev.Ticks+1, next.Ticks)
		prev = next
	}
	// roughly 30% of ticks move revenue
	assert.InDelta(t, 600, revenueMoves, 150)
}

func TestTickerSnapshotDoesNotMutate(t *testing.T) {
	ticker := NewTicker(TickerOptions{Source: rand.NewPCG(1, 2)})
	assert.Equal(t, ticker.Snapshot(), ticker.Snapshot())
}

func TestTickerPublishesTickEvents(t *testing.T) {
	hook := &recordingHook{}
	ticker := NewTicker(TickerOptions{
		Interval:    time.Millisecond,
		Source:      rand.NewPCG(3, 4),
		RefreshHook: hook,
	})
	handle := ticker.Start(context.Background())
	require.Eventually(t, func() bool { return len(hook.Events()) >= 3 }, time.Second, time.Millisecond)
	handle.Stop()

	event := hook.Events()[0]
	assert.Equal(t, "tick", event.Reason)
	assert.Equal(t, string(TabDashboard), event.AreaCode)
	assert.Contains(t, event.Payload, "production")
	assert.Contains(t, event.Payload, "revenue")
}

func TestTickerStopHaltsMutation(t *testing.T) {
	ticker := NewTicker(TickerOptions{Interval: time.Millisecond, Source: rand.NewPCG(5, 6)})
	handle := ticker.Start(context.Background())
	require.Eventually(t, func() bool { return ticker.Snapshot().Ticks >= 2 }, time.Second, time.Millisecond)

	handle.Stop()
	frozen := ticker.Snapshot()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frozen, ticker.Snapshot())

	select {
	case <-handle.Done():
	default:
		t.Fatal("expected done channel to be closed after Stop")
	}
	handle.Stop()
}

func TestTickerStopsWithParentContext(t *testing.T) {
	ticker := NewTicker(TickerOptions{Interval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	handle := ticker.Start(ctx)
	cancel()
	select {
	case <-handle.Done():
	case <-time.After(time.Second):
		t.Fatal("ticker did not exit after context cancellation")
	}
}
