// Package stats provides the injected stats-recording port the billing
// layer reports into. The process owns a single instance created at
// startup and flushed at shutdown.
package stats

import (
	"sync"

	"riggerbackend/models"

	"go.uber.org/zap"
)

// Recorder accumulates billing counters.
type Recorder interface {
	RecordTransaction(kind models.TransactionKind, amount float64)
	RecordContribution(amount float64)
	RecordFailure(operation, code string)
	Flush()
}

type counter struct {
	count int64
	total float64
}

// LogRecorder keeps in-memory counters and writes them to the structured
// log on Flush.
type LogRecorder struct {
	mu            sync.Mutex
	logger        *zap.Logger
	transactions  map[models.TransactionKind]*counter
	contributions counter
	failures      map[string]int64
}

// NewLogRecorder returns a zap-backed stats recorder.
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{
		logger:       logger,
		transactions: make(map[models.TransactionKind]*counter),
		failures:     make(map[string]int64),
	}
}

func (r *LogRecorder) RecordTransaction(kind models.TransactionKind, amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.transactions[kind]
	if !ok {
		c = &counter{}
		r.transactions[kind] = c
	}
	c.count++
	c.total += amount
}

func (r *LogRecorder) RecordContribution(amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contributions.count++
	r.contributions.total += amount
}

func (r *LogRecorder) RecordFailure(operation, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[operation+":"+code]++
}

// Flush writes the accumulated counters to the log and resets them.
func (r *LogRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for kind, c := range r.transactions {
		r.logger.Info("billing stats",
			zap.String("kind", string(kind)),
			zap.Int64("count", c.count),
			zap.Float64("total", c.total),
		)
	}
	if r.contributions.count > 0 {
		r.logger.Info("contribution stats",
			zap.Int64("count", r.contributions.count),
			zap.Float64("total", r.contributions.total),
		)
	}
	for key, n := range r.failures {
		r.logger.Warn("billing failures", zap.String("operation", key), zap.Int64("count", n))
	}

	r.transactions = make(map[models.TransactionKind]*counter)
	r.contributions = counter{}
	r.failures = make(map[string]int64)
}
