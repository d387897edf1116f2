package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Setup configures the global zerolog logger.
func Setup(isLocalDev bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if isLocalDev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// EnrichContextWithLogger adds a zerolog logger to the context with trace information.
// Without a recording span the context still gets the global logger, so
// log.Ctx never falls back to the disabled logger.
func EnrichContextWithLogger(ctx context.Context, fields ...string) context.Context {
	lc := log.With()
	for i := 0; i+1 < len(fields); i += 2 {
		lc = lc.Str(fields[i], fields[i+1])
	}

	sCtx := trace.SpanFromContext(ctx).SpanContext()
	if sCtx.HasTraceID() {
		lc = lc.
			Str("trace_id", sCtx.TraceID().String()).
			Str("span_id", sCtx.SpanID().String())
	}

	l := lc.Logger()
	return l.WithContext(ctx)
}
