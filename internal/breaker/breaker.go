// Package breaker provides OS signals subscription for a graceful application stopping.
package breaker

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// OSSignals allows to subscribe for system signals.
type OSSignals struct {
	ctx context.Context
	ch  chan os.Signal
}

// NewOSSignals creates new subscriber for system signals.
func NewOSSignals(ctx context.Context) OSSignals {
	return OSSignals{
		ctx: ctx,
		ch:  make(chan os.Signal, 1),
	}
}

// Subscribe for some of system signals (SIGINT and SIGTERM by default). Signal handler will be unsubscribed
// automatically on the context cancellation.
func (oss *OSSignals) Subscribe(onSignal func(os.Signal), signals ...os.Signal) {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGINT, syscall.SIGTERM}
	}

	signal.Notify(oss.ch, signals...)

	go func(ch <-chan os.Signal) {
		select {
		case <-oss.ctx.Done():
			return

		case sig, opened := <-ch:
			if oss.ctx.Err() != nil {
				return
			}

			if opened && sig != nil {
				onSignal(sig)
			}
		}
	}(oss.ch)
}

// Stop system signals listening.
func (oss *OSSignals) Stop() {
	signal.Stop(oss.ch)
	close(oss.ch)
}
