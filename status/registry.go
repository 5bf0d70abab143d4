// Package status holds the lock-free metrics shared by the engine and its frontends
package status

import (
	"strconv"
	"sync/atomic"
)

// Metric keys written by the core packages
const (
	MetricGlobalTypos     = "typing.global_typos"
	MetricIndividualTypos = "typing.individual_typos"
	MetricWordsCompleted  = "typing.words_completed"
	MetricKeystrokes      = "typing.keystrokes"
	MetricAccuracy        = "typing.accuracy"
	MetricTypoActive      = "typing.typo_active"
	MetricScript          = "typing.script"

	MetricFired    = "combat.fired"
	MetricDropped  = "combat.dropped"
	MetricSkipped  = "combat.skipped"
	MetricTimeouts = "combat.timeouts"
	MetricAborted  = "combat.aborted"
	MetricQueueLen = "combat.queue_len"
	MetricPhase    = "combat.phase"

	MetricKills = "arena.kills"
)

// Registry is the central metrics facade
// Components cache pointers at construction; update paths write directly to atomics
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
	Flags    *MetricMap[atomic.Bool]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
		Flags:    NewMetricMap[atomic.Bool](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Counter returns the current value of a counter, 0 if never registered
func (r *Registry) Counter(key string) int64 {
	if !r.Counters.Has(key) {
		return 0
	}
	return r.Counters.Get(key).Load()
}

// Entry is one formatted metric line
type Entry struct {
	Key   string
	Value string
}

// Entries returns every metric formatted for display, grouped by kind and sorted by key
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Counters.Range(func(key string, v *atomic.Int64) {
		out = append(out, Entry{Key: key, Value: strconv.FormatInt(v.Load(), 10)})
	})
	r.Gauges.Range(func(key string, v *AtomicFloat) {
		out = append(out, Entry{Key: key, Value: strconv.FormatFloat(v.Load(), 'f', 2, 64)})
	})
	r.Flags.Range(func(key string, v *atomic.Bool) {
		out = append(out, Entry{Key: key, Value: strconv.FormatBool(v.Load())})
	})
	r.Labels.Range(func(key string, v *AtomicString) {
		out = append(out, Entry{Key: key, Value: v.Load()})
	})
	return out
}

// TotalCount returns total metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count() + r.Flags.Count() + r.Labels.Count()
}
