package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	dropped         int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about source calls.
// It is intentionally simple so it can be swapped for a real backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*sourceStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sourceStats),
		otel:  otel,
	}
}

// RecordSourceAttempt increments counters for a source call and stores the last observed latency.
func (r *Recorder) RecordSourceAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordSourceAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks that a source response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordDropped counts records discarded by validation for a source.
func (r *Recorder) RecordDropped(source string, count int) {
	if r == nil || count <= 0 {
		return
	}
	stats := r.ensureStats(source)
	stats.dropped += count
	if r.otel != nil {
		r.otel.recordDropped(source, count)
	}
}

// SourceCalls returns the total attempts recorded for a source.
func (r *Recorder) SourceCalls(source string) int {
	return r.Snapshot(source).Calls
}

// SourceErrors returns the total failed attempts recorded for a source.
func (r *Recorder) SourceErrors(source string) int {
	return r.Snapshot(source).Errors
}

// RateLimitHits returns the number of rate limit events seen for a source.
func (r *Recorder) RateLimitHits(source string) int {
	return r.Snapshot(source).RateLimitHits
}

// DroppedRecords returns the number of records dropped by validation for a source.
func (r *Recorder) DroppedRecords(source string) int {
	return r.Snapshot(source).Dropped
}

// LastRetryAfter returns the most recent Retry-After recorded for a source.
func (r *Recorder) LastRetryAfter(source string) time.Duration {
	return r.Snapshot(source).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a source call.
func (r *Recorder) LastCallLatency(source string) time.Duration {
	return r.Snapshot(source).LastCallLatency
}

// Snapshot is a copy of the current stats for a source.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	Dropped         int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(source)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		Dropped:         stats.dropped,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(league string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(league, duration, err)
}

func (r *Recorder) ensureStats(source string) *sourceStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}

func (r *Recorder) snapshot(source string) sourceStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[source]; ok && stats != nil {
		return *stats
	}
	return sourceStats{}
}
