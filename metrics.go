package pstr

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Methods are called synchronously from Intern; keep them cheap.
type MetricsCollector interface {
	// RecordIntern is called after each successful intern.
	// hit is true when the content was already present.
	RecordIntern(hit bool, duration time.Duration)

	// RecordBlockAllocated is called whenever a new block becomes active.
	RecordBlockAllocated()

	// RecordError is called when Intern returns an error.
	RecordError(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIntern(bool, time.Duration) {}
func (NoopMetricsCollector) RecordBlockAllocated()            {}
func (NoopMetricsCollector) RecordError(error)                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InternCount      atomic.Int64
	HitCount         atomic.Int64
	MissCount        atomic.Int64
	InternTotalNanos atomic.Int64
	BlockCount       atomic.Int64
	ErrorCount       atomic.Int64
}

// RecordIntern implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntern(hit bool, duration time.Duration) {
	b.InternCount.Add(1)
	b.InternTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.HitCount.Add(1)
	} else {
		b.MissCount.Add(1)
	}
}

// RecordBlockAllocated implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBlockAllocated() {
	b.BlockCount.Add(1)
}

// RecordError implements MetricsCollector.
func (b *BasicMetricsCollector) RecordError(error) {
	b.ErrorCount.Add(1)
}

// HitRatio returns the fraction of interns served from the table.
func (b *BasicMetricsCollector) HitRatio() float64 {
	total := b.InternCount.Load()
	if total == 0 {
		return 0
	}
	return float64(b.HitCount.Load()) / float64(total)
}

// AverageInternLatency returns the mean duration of successful interns.
func (b *BasicMetricsCollector) AverageInternLatency() time.Duration {
	count := b.InternCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.InternTotalNanos.Load() / count)
}
