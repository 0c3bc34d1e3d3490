// Package logging is the server's structured-logging seam. The request
// middleware, services, and app lifecycle all log through the Logger
// interface; production runs on the zap adapter, tests on slog with a
// discarded handler.
package logging

import "context"

// Logger logs structured messages with variadic key-value pairs:
//
//	log.Info(ctx, "starting http server", "addr", addr)
type Logger interface {
	// Info records normal lifecycle events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn records degraded but survivable conditions, e.g. a failed
	// best-effort email delivery.
	Warn(ctx context.Context, msg string, args ...any)

	// Error records failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
