package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide logger, configured once by Init.
var Logger zerolog.Logger

// Init configures the global logger. In development the output is
// pretty-printed; otherwise structured JSON goes to stdout.
func Init(serviceName, level string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if isDevelopment {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	Logger = zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// WithContext returns a logger enriched with the trace and span ids of
// the current request, when a recording span is present.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Logger
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		l = l.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
	}
	return &l
}

// Info starts an info-level event carrying trace context.
func Info(ctx context.Context) *zerolog.Event { return WithContext(ctx).Info() }

// Warn starts a warn-level event carrying trace context.
func Warn(ctx context.Context) *zerolog.Event { return WithContext(ctx).Warn() }

// Error starts an error-level event carrying trace context.
func Error(ctx context.Context) *zerolog.Event { return WithContext(ctx).Error() }
