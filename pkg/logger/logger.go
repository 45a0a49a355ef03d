// Package logger provides a structured, levelled logger built on log/slog.
//
// Every handler logs through a per-request logger that already carries the
// request_id, so log lines are correlated without extra plumbing:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("review created", "product_id", productID)
//	// → time=... level=INFO msg="review created" request_id=a1b2c3d4 product_id=7
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/handcraftedhaven/haven/config"
)

// L is the process-wide base logger.
var L *slog.Logger

var mongoSink *MongoHandler

func init() {
	L = slog.New(stdoutHandler())
	slog.SetDefault(L)
}

func stdoutHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		// Structured JSON for log aggregators.
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// Human-readable for dev.
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Connect attaches the optional MongoDB log sink when LOG_MONGO_URI is set.
// Log records then fan out to both stdout and Mongo. A sink that cannot be
// reached is reported and skipped; logging never blocks the boot.
func Connect() error {
	uri := config.LogMongoURI()
	if uri == "" {
		return nil
	}

	h, err := NewMongoHandler(uri, config.LogMongoDatabase(), config.LogMongoCollection())
	if err != nil {
		return err
	}

	mongoSink = h
	L = slog.New(NewMultiHandler(stdoutHandler(), h))
	slog.SetDefault(L)
	return nil
}

// Close flushes and disconnects the Mongo sink, if one was attached.
func Close() {
	if mongoSink != nil {
		mongoSink.Close()
	}
}

// ctxKey is the unexported key under which the per-request logger is stored.
type ctxKey struct{}

// WithCtx returns the request-scoped *slog.Logger injected by the Logger
// middleware, or the base logger when the context carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a pre-tagged *slog.Logger into ctx. Called by the Logger
// middleware; application code should not need it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
