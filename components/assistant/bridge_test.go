package assistant

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOfflineKey(t *testing.T) {
	assert.True(t, IsOfflineKey(""))
	assert.True(t, IsOfflineKey("   "))
	assert.True(t, IsOfflineKey(PlaceholderAPIKey))
	assert.False(t, IsOfflineKey("AIza-real-key"))
}

func TestBridgeOfflineRepliesArePrefixed(t *testing.T) {
	bridge, err := NewBridge(context.Background(), Options{
		APIKey:  PlaceholderAPIKey,
		Offline: NewOfflineGenerator(WithOfflineLatency(0), WithOfflineSource(rand.NewPCG(1, 2))),
	})
	require.NoError(t, err)
	require.True(t, bridge.Offline())

	canned := CannedReplies()
	for _, prompt := range []string{"stock?", "How is Mumbai doing", "x"} {
		reply := bridge.Ask(context.Background(), prompt, "Manufacturer")
		require.True(t, strings.HasPrefix(reply, OfflinePrefix), reply)
		assert.Contains(t, canned, strings.TrimPrefix(reply, OfflinePrefix))
	}
}

func TestOfflineGeneratorWaitsForLatency(t *testing.T) {
	gen := NewOfflineGenerator(WithOfflineLatency(30 * time.Millisecond))
	start := time.Now()
	reply, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "status"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.True(t, strings.HasPrefix(reply, OfflinePrefix))
	assert.Equal(t, DefaultOfflineLatency, NewOfflineGenerator().Latency())
}

func TestOfflineGeneratorCancellationCutsWaitShort(t *testing.T) {
	gen := NewOfflineGenerator(WithOfflineLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reply, err := gen.Generate(ctx, GenerateRequest{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, OfflinePrefix))
}

func TestBridgeOfflineAnswersPastDeadline(t *testing.T) {
	bridge, err := NewBridge(context.Background(), Options{})
	require.NoError(t, err)
	require.True(t, bridge.Offline())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	reply := bridge.Ask(ctx, "stock levels?", "Manufacturer")

	assert.True(t, strings.HasPrefix(reply, OfflinePrefix), "reply %q", reply)
	assert.Less(t, time.Since(start), DefaultOfflineLatency)
}

func TestBridgeOnlineFailureReturnsFallback(t *testing.T) {
	bridge, err := NewBridge(context.Background(), Options{
		APIKey: "test-key",
		Generator: GeneratorFunc(func(context.Context, GenerateRequest) (string, error) {
			return "", errors.New("503 service unavailable")
		}),
	})
	require.NoError(t, err)
	require.False(t, bridge.Offline())

	assert.Equal(t, FallbackReply, bridge.Ask(context.Background(), "inventory status", "Retailer"))
}

func TestBridgeOnlineEmptyReply(t *testing.T) {
	bridge, err := NewBridge(context.Background(), Options{
		APIKey: "test-key",
		Generator: GeneratorFunc(func(context.Context, GenerateRequest) (string, error) {
			return "  ", nil
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, bridge.Ask(context.Background(), "anything", ""))
}

func TestBridgeOnlineRequestShape(t *testing.T) {
	var got GenerateRequest
	bridge, err := NewBridge(context.Background(), Options{
		APIKey: "test-key",
		Generator: GeneratorFunc(func(_ context.Context, req GenerateRequest) (string, error) {
			got = req
			return "Stock is stable.", nil
		}),
	})
	require.NoError(t, err)

	reply := bridge.Ask(context.Background(), "  stock levels?  ", "Wholesaler")
	assert.Equal(t, "Stock is stable.", reply)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, "stock levels?", got.Prompt)
	assert.Equal(t, DefaultTemperature, got.Temperature)
	assert.True(t, strings.HasPrefix(got.SystemInstruction, SystemInstruction))
	assert.Contains(t, got.SystemInstruction, "Wholesaler")
}

func TestBridgeCircuitOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	bridge, err := NewBridge(context.Background(), Options{
		APIKey:          "test-key",
		BreakerFailures: 2,
		BreakerCooldown: time.Hour,
		Generator: GeneratorFunc(func(context.Context, GenerateRequest) (string, error) {
			calls++
			return "", errors.New("timeout")
		}),
	})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, FallbackReply, bridge.Ask(context.Background(), "ping", ""))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, gobreaker.StateOpen, bridge.BreakerState())
}

func TestBridgeTimeoutBecomesFallback(t *testing.T) {
	bridge, err := NewBridge(context.Background(), Options{
		APIKey:  "test-key",
		Timeout: 10 * time.Millisecond,
		Generator: GeneratorFunc(func(ctx context.Context, _ GenerateRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, bridge.Ask(context.Background(), "slow", ""))
	require.NoError(t, bridge.Close())
}
