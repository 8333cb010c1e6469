package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// shutdownContext returns a context canceled by the first SIGINT/SIGTERM.
// Cancellation unblocks the authorization code prompt and aborts in-flight
// Drive requests. Default signal handling is restored right after, so a
// second Ctrl-C terminates the process even if something ignores ctx.
func shutdownContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()

		if parent.Err() == nil {
			logger.Info("interrupted, canceling")
		}

		stop()
	}()

	return ctx, stop
}
