package assistant

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultOfflineLatency simulates a network round trip.
const DefaultOfflineLatency = 800 * time.Millisecond

// OfflinePrefix marks replies produced without the generation service.
const OfflinePrefix = "[OFFLINE MOCK] "

var cannedReplies = []string{
	"As the owner of NIKS-AQUA, you should focus on the 12% dip in Mumbai logistics today.",
	"Current NIKS-AQUA inventory levels are stable across all northern nodes.",
	"The NIKS-AI predictive model suggests a 5% increase in demand for 20L Jars next week.",
	"System Alert: Check reorder points for the NIKS-500ml Classic SKU.",
}

// CannedReplies returns the operational remarks used in offline mode.
func CannedReplies() []string {
	return append([]string(nil), cannedReplies...)
}

// OfflineGenerator answers with a canned remark after a fixed latency.
type OfflineGenerator struct {
	latency time.Duration
	replies []string

	mu  sync.Mutex
	rng *rand.Rand
}

// OfflineOption customizes the offline generator.
type OfflineOption func(*OfflineGenerator)

// WithOfflineLatency overrides the simulated latency. Zero disables the wait.
func WithOfflineLatency(latency time.Duration) OfflineOption {
	return func(g *OfflineGenerator) {
		if latency >= 0 {
			g.latency = latency
		}
	}
}

// WithOfflineSource makes reply selection deterministic.
func WithOfflineSource(src rand.Source) OfflineOption {
	return func(g *OfflineGenerator) {
		if src != nil {
			g.rng = rand.New(src)
		}
	}
}

// WithOfflineReplies replaces the canned remarks.
func WithOfflineReplies(replies ...string) OfflineOption {
	return func(g *OfflineGenerator) {
		if len(replies) > 0 {
			g.replies = append([]string(nil), replies...)
		}
	}
}

// NewOfflineGenerator builds the offline generator.
func NewOfflineGenerator(opts ...OfflineOption) *OfflineGenerator {
	now := uint64(time.Now().UnixNano())
	g := &OfflineGenerator{
		latency: DefaultOfflineLatency,
		replies: CannedReplies(),
		rng:     rand.New(rand.NewPCG(now, now>>3)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Latency reports the simulated latency.
func (g *OfflineGenerator) Latency() time.Duration {
	return g.latency
}

// Generate waits for the simulated latency and returns a prefixed canned
// remark. The prompt is ignored and it never fails: a cancelled context only
// cuts the wait short.
func (g *OfflineGenerator) Generate(ctx context.Context, _ GenerateRequest) (string, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
	g.mu.Lock()
	reply := g.replies[g.rng.IntN(len(g.replies))]
	g.mu.Unlock()
	return OfflinePrefix + reply, nil
}
