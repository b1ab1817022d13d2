package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const (
	// DefaultModel is the Gemini model queried in online mode.
	DefaultModel = "gemini-3-flash-preview"
	// DefaultTemperature keeps replies focused without being rigid.
	DefaultTemperature float32 = 0.7
	// PlaceholderAPIKey is the sample value shipped in env templates; it selects offline mode.
	PlaceholderAPIKey = "your_actual_gemini_api_key_here"

	// SystemInstruction describes the assistant persona.
	SystemInstruction = "You are an AI Supply Chain Assistant named NIKS-AI for NIKS-AQUA, a water manufacturing company. " +
		"The user is the owner browsing the dashboard. " +
		"The system was developed by QLOAX Infotech. " +
		"Provide professional, data-driven, and brief answers. Focus on inventory, logistics, and sales performance."

	// FallbackReply replaces any generation failure.
	FallbackReply = "I'm currently unable to connect to the intelligence server. Please check your API_KEY configuration."
	// EmptyReply replaces a successful call that produced no text.
	EmptyReply = "I'm sorry, I couldn't generate a response."
)

// IsOfflineKey reports whether the credential selects offline mode.
func IsOfflineKey(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)
	return apiKey == "" || apiKey == PlaceholderAPIKey
}

// Options configures the Bridge.
type Options struct {
	APIKey      string
	Model       string
	Temperature float32
	// Generator overrides the Gemini client in online mode.
	Generator Generator
	// Offline overrides the offline generator.
	Offline Generator
	// Timeout bounds a single online request. Zero means no bound.
	Timeout time.Duration
	// BreakerFailures consecutive failures open the circuit. Defaults to 5.
	BreakerFailures uint32
	// BreakerCooldown is how long the circuit stays open. Defaults to 30s.
	BreakerCooldown time.Duration
	Logger          *zerolog.Logger
}

// Bridge forwards operator queries to the generation service and turns every
// failure into a display string.
type Bridge struct {
	opts      Options
	offline   bool
	generator Generator
	breaker   *gobreaker.CircuitBreaker
	logger    zerolog.Logger
	closer    func() error
}

// NewBridge selects offline or online mode from the credential.
func NewBridge(ctx context.Context, opts Options) (*Bridge, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = 30 * time.Second
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("component", "assistant").Logger()

	b := &Bridge{opts: opts, logger: logger}
	if IsOfflineKey(opts.APIKey) && opts.Generator == nil {
		b.offline = true
		b.generator = opts.Offline
		if b.generator == nil {
			b.generator = NewOfflineGenerator()
		}
		logger.Warn().Msg("assistant api key not configured, running in offline mode")
		return b, nil
	}

	b.generator = opts.Generator
	if b.generator == nil {
		gemini, err := NewGeminiGenerator(ctx, opts.APIKey)
		if err != nil {
			return nil, err
		}
		b.generator = gemini
		b.closer = gemini.Close
	}
	failures := opts.BreakerFailures
	b.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "assistant.generate",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("assistant circuit state changed")
		},
	})
	return b, nil
}

// Offline reports whether the bridge answers with canned remarks.
func (b *Bridge) Offline() bool {
	return b.offline
}

// Model returns the configured model identifier.
func (b *Bridge) Model() string {
	return b.opts.Model
}

// Ask returns a reply for the prompt. It never returns an error: failures
// become FallbackReply and empty output becomes EmptyReply.
func (b *Bridge) Ask(ctx context.Context, prompt, role string) string {
	req := GenerateRequest{
		Model:             b.opts.Model,
		Prompt:            strings.TrimSpace(prompt),
		SystemInstruction: systemInstructionFor(role),
		Temperature:       b.opts.Temperature,
	}
	reply, err := b.generate(ctx, req)
	if err != nil {
		b.logger.Error().Err(err).Bool("offline", b.offline).Str("role", role).Msg("assistant request failed")
		return FallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		return EmptyReply
	}
	return reply
}

func (b *Bridge) generate(ctx context.Context, req GenerateRequest) (string, error) {
	if b.offline {
		return b.generator.Generate(ctx, req)
	}
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.generator.Generate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("assistant: circuit open: %w", err)
		}
		return "", err
	}
	reply, _ := out.(string)
	return reply, nil
}

// BreakerState exposes the circuit state; offline bridges report closed.
func (b *Bridge) BreakerState() gobreaker.State {
	if b.breaker == nil {
		return gobreaker.StateClosed
	}
	return b.breaker.State()
}

// Close releases the Gemini client when the bridge owns it.
func (b *Bridge) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

func systemInstructionFor(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return SystemInstruction
	}
	return SystemInstruction + " The owner is currently viewing the " + role + " perspective."
}
