package cache

import (
	"time"

	"go.uber.org/zap"
)

// Clock supplies the current time. Tests inject a fake to step through
// sweep intervals without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures optional collaborators of a Cache.
type Option func(*options)

type options struct {
	clock  Clock
	logger *zap.Logger
}

func defaultOptions() options {
	return options{
		clock:  systemClock{},
		logger: zap.NewNop(),
	}
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger sets the logger used for evictions and sweeps (Debug level).
// The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}
