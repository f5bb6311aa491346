// Package metrics defines a concurrently-accessible counter collector for
// channel statistics, following bitbucket.org/creachadair/jrpc2's
// metrics.go (the same shape jrpc2 uses per-request) and metrics/metrics.go
// (the package jrpc2 exports for callers that want their own collector
// rather than the server-wide default).
package metrics

import "sync"

// M collects counters and maximum value trackers. A nil *M is valid and
// discards everything written to it, so a Channel can always hold one
// without nil-checking at every call site. The methods of an *M are safe
// for concurrent use by multiple goroutines.
type M struct {
	mu      sync.Mutex
	counter map[string]int64
	maxVal  map[string]int64
}

// New creates a new, empty metrics collector.
func New() *M {
	return &M{counter: make(map[string]int64), maxVal: make(map[string]int64)}
}

// Count adds n to the current value of the counter named, defining it if it
// does not already exist.
func (m *M) Count(name string, n int64) {
	if m != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.counter[name] += n
	}
}

// SetMaxValue sets the maximum value metric named to the greater of n and
// its current value, defining it if it does not already exist.
func (m *M) SetMaxValue(name string, n int64) {
	if m != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		if n > m.maxVal[name] {
			m.maxVal[name] = n
		}
	}
}

// Snapshot copies an atomic snapshot of the counters and max value trackers
// into the provided non-nil maps.
func (m *M) Snapshot(counters, maxValues map[string]int64) {
	if m != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		for name, val := range m.counter {
			counters[name] = val
		}
		for name, val := range m.maxVal {
			maxValues[name] = val
		}
	}
}
