package inspect

import (
	"context"
)

// ErrorsWatcher is a channel-based errors accumulator with a limit watching.
type ErrorsWatcher chan error

type (
	errorsWatcherOptions struct {
		onError         func(error)
		onLimitExceeded func()
	}

	// ErrorsWatcherOption allows to setup some watcher properties from outside.
	ErrorsWatcherOption func(*errorsWatcherOptions)
)

// WithOnErrorHandler sets the handler that is called for every pushed error.
func WithOnErrorHandler(h func(error)) ErrorsWatcherOption {
	return func(o *errorsWatcherOptions) { o.onError = h }
}

// WithLimitExceededHandler sets the handler that is called once the errors limit is exceeded.
func WithLimitExceededHandler(h func()) ErrorsWatcherOption {
	return func(o *errorsWatcherOptions) { o.onLimitExceeded = h }
}

// Watch consumes the pushed errors until the context cancellation, channel closing or errors limit exceeding.
func (w ErrorsWatcher) Watch(ctx context.Context, errorsLimit uint, options ...ErrorsWatcherOption) {
	var (
		opt     = &errorsWatcherOptions{}
		counter uint
	)

	for _, o := range options {
		o(opt)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case err, isOpened := <-w:
			if !isOpened {
				return
			}

			if opt.onError != nil {
				opt.onError(err)
			}

			counter++

			if counter >= errorsLimit {
				if opt.onLimitExceeded != nil {
					opt.onLimitExceeded()
				}

				return
			}
		}
	}
}

// Push sends the error into the watcher (in a context-aware way).
func (w ErrorsWatcher) Push(ctx context.Context, err error) {
	select {
	case <-ctx.Done():
	case w <- err:
	}
}
