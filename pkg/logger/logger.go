package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
	Log = New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	})
}

// New builds a logger writing to out with timestamps and caller info.
func New(out io.Writer) zerolog.Logger {
	return zerolog.New(out).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}

// Telemetry routes service events into a zerolog logger.
type Telemetry struct {
	Logger *zerolog.Logger
	// Level applies to every event; zero value logs at debug.
	Level zerolog.Level
}

// NewTelemetry wraps a logger. A nil logger uses the global one.
func NewTelemetry(l *zerolog.Logger) *Telemetry {
	return &Telemetry{Logger: l, Level: zerolog.DebugLevel}
}

// Record implements the dashboard telemetry contract.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	l := &Log
	if t != nil && t.Logger != nil {
		l = t.Logger
	}
	level := zerolog.DebugLevel
	if t != nil {
		level = t.Level
	}
	entry := l.WithLevel(level).Str("event", event)
	if len(payload) > 0 {
		entry = entry.Fields(payload)
	}
	entry.Msg("telemetry")
}
