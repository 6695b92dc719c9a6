package database

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context derived from parent that is canceled
// on SIGTERM or SIGINT. callback, if not nil, runs before the cancel. The
// returned stop function releases the signal registration.
func SetupSignalHandler(parent context.Context, callback func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if callback != nil {
				callback(sig)
			}
			cancel()
		case <-ctx.Done():
			// Context was cancelled elsewhere
		}
	}()

	stop := func() {
		signal.Stop(sigChan)
		cancel()
	}
	return ctx, stop
}
