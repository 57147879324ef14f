package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request and import counters with atomics so it can be
// shared across handlers without locking.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	rowsAccepted uint64
	rowsRejected uint64
	rowWarnings  uint64
	filesParsed  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordImport accumulates per-batch row outcomes.
func (c *Collector) RecordImport(accepted, rejected, warnings int) {
	atomic.AddUint64(&c.filesParsed, 1)
	atomic.AddUint64(&c.rowsAccepted, uint64(accepted))
	atomic.AddUint64(&c.rowsRejected, uint64(rejected))
	atomic.AddUint64(&c.rowWarnings, uint64(warnings))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal":   atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":      avg,
		"importFilesTotal":   atomic.LoadUint64(&c.filesParsed),
		"importRowsAccepted": atomic.LoadUint64(&c.rowsAccepted),
		"importRowsRejected": atomic.LoadUint64(&c.rowsRejected),
		"importRowWarnings":  atomic.LoadUint64(&c.rowWarnings),
	}
}
