package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hn-scraper/internal/observability"
)

// SignalContext returns a context cancelled on SIGINT/SIGTERM, so an
// interrupted run stops at the next stage boundary instead of mid-write.
func SignalContext(parent context.Context, logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
