package pstr

import (
	"github.com/hupe1980/pstr/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
	heapBlocks       bool
	initialCapacity  int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		initialCapacity:  1024,
	}
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryLimit caps the block memory the store may reserve.
// The limit is rounded down to whole blocks in effect: a block is only
// created if all of its BlockSize bytes fit. Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.controller = resource.NewController(resource.Config{MemoryLimitBytes: bytes})
	}
}

// WithResourceController charges block memory against a shared controller,
// so several stores can live under one budget.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithHeapBlocks keeps block memory on the Go heap instead of anonymous mappings.
func WithHeapBlocks() Option {
	return func(o *options) {
		o.heapBlocks = true
	}
}

// WithInitialCapacity pre-sizes the intern table for n distinct strings.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.initialCapacity = n
		}
	}
}
