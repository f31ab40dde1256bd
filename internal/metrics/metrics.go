// Package metrics records per-operation timings in a bounded ring
// buffer and warns about slow operations.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/keiko/fman/internal/logging"
)

// DefaultHistory bounds the ring buffer; the oldest sample is evicted
// once it is full.
const DefaultHistory = 1000

// SlowThreshold is the duration past which an operation is logged as
// slow.
const SlowThreshold = 30 * time.Second

// Sample is one recorded operation.
type Sample struct {
	Operation string        `json:"operation"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
	Files     int           `json:"files_processed"`
	Success   bool          `json:"success"`
}

// OpStats aggregates the samples of one operation.
type OpStats struct {
	Count       int           `json:"count"`
	Failures    int           `json:"failures"`
	TotalFiles  int           `json:"total_files"`
	MinDuration time.Duration `json:"min_duration"`
	MaxDuration time.Duration `json:"max_duration"`
	AvgDuration time.Duration `json:"avg_duration"`
}

// Recorder keeps recent operation samples.
type Recorder struct {
	log       *logging.Logger
	threshold time.Duration

	// Totals survive ring eviction.
	Operations atomic.Int64
	Failures   atomic.Int64
	SlowOps    atomic.Int64

	mu   sync.Mutex
	ring []Sample
	next int
	full bool
}

// NewRecorder returns a Recorder holding up to size samples.
func NewRecorder(size int) *Recorder {
	if size <= 0 {
		size = DefaultHistory
	}
	return &Recorder{
		log:       logging.New("metrics"),
		threshold: SlowThreshold,
		ring:      make([]Sample, size),
	}
}

var (
	global     *Recorder
	globalOnce sync.Once
)

// Global returns the process-wide recorder.
func Global() *Recorder {
	globalOnce.Do(func() {
		global = NewRecorder(DefaultHistory)
	})
	return global
}

// Record stores one sample and checks the slow threshold.
func (r *Recorder) Record(operation string, duration time.Duration, files int, success bool) {
	sample := Sample{
		Operation: operation,
		Duration:  duration,
		Timestamp: time.Now(),
		Files:     files,
		Success:   success,
	}

	r.mu.Lock()
	r.ring[r.next] = sample
	r.next++
	if r.next == len(r.ring) {
		r.next = 0
		r.full = true
	}
	r.mu.Unlock()

	r.Operations.Add(1)
	if !success {
		r.Failures.Add(1)
	}
	if duration > r.threshold {
		r.SlowOps.Add(1)
		r.log.Warn("slow_operation", map[string]any{
			"operation":   operation,
			"duration_ms": duration.Milliseconds(),
		}, nil)
	}
}

// Timer measures one operation from Start to Stop.
type Timer struct {
	r         *Recorder
	operation string
	start     time.Time
}

// Start begins timing an operation.
func (r *Recorder) Start(operation string) *Timer {
	return &Timer{r: r, operation: operation, start: time.Now()}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop(files int, success bool) time.Duration {
	elapsed := time.Since(t.start)
	t.r.Record(t.operation, elapsed, files, success)
	return elapsed
}

// Samples returns the recorded samples, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Sample, r.next)
		copy(out, r.ring[:r.next])
		return out
	}

	out := make([]Sample, 0, len(r.ring))
	out = append(out, r.ring[r.next:]...)
	out = append(out, r.ring[:r.next]...)
	return out
}

// Stats aggregates the retained samples per operation.
func (r *Recorder) Stats() map[string]OpStats {
	stats := make(map[string]OpStats)

	for _, s := range r.Samples() {
		st := stats[s.Operation]
		if st.Count == 0 || s.Duration < st.MinDuration {
			st.MinDuration = s.Duration
		}
		if s.Duration > st.MaxDuration {
			st.MaxDuration = s.Duration
		}
		// carry the running total in AvgDuration until the final pass
		st.AvgDuration += s.Duration
		st.Count++
		st.TotalFiles += s.Files
		if !s.Success {
			st.Failures++
		}
		stats[s.Operation] = st
	}

	for op, st := range stats {
		st.AvgDuration /= time.Duration(st.Count)
		stats[op] = st
	}
	return stats
}
