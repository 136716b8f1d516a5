package core

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

// MemoryMetricsRecorder keeps counters and observations in process.
// lattice-helper prints its Snapshot when run with --metrics.
type MemoryMetricsRecorder struct {
	mu           sync.Mutex
	counters     map[string]int64
	observations map[string][]float64
}

func NewMemoryMetricsRecorder() *MemoryMetricsRecorder {
	return &MemoryMetricsRecorder{
		counters:     map[string]int64{},
		observations: map[string][]float64{},
	}
}

func (r *MemoryMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counters == nil {
		r.counters = map[string]int64{}
	}
	r.counters[metricKey(name, tags)] += value
}

func (r *MemoryMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observations == nil {
		r.observations = map[string][]float64{}
	}
	key := metricKey(name, tags)
	r.observations[key] = append(r.observations[key], value)
}

// Counter sums every series of name whose tags include the given tags.
func (r *MemoryMetricsRecorder) Counter(name string, tags map[string]string) int64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for key, value := range r.counters {
		if metricKeyMatches(key, name, tags) {
			total += value
		}
	}
	return total
}

func (r *MemoryMetricsRecorder) Snapshot() map[string]int64 {
	if r == nil {
		return map[string]int64{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.counters))
	for key, value := range r.counters {
		out[key] = value
	}
	return out
}

func metricKey(name string, tags map[string]string) string {
	name = strings.TrimSpace(name)
	if len(tags) == 0 {
		return name
	}
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	for _, key := range keys {
		b.WriteString("|")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(tags[key])
	}
	return b.String()
}

func metricKeyMatches(key string, name string, tags map[string]string) bool {
	parts := strings.Split(key, "|")
	if parts[0] != strings.TrimSpace(name) {
		return false
	}
	present := make(map[string]struct{}, len(parts)-1)
	for _, part := range parts[1:] {
		present[part] = struct{}{}
	}
	for key, value := range tags {
		if _, ok := present[key+"="+value]; !ok {
			return false
		}
	}
	return true
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}

var (
	_ MetricsRecorder = NopMetricsRecorder{}
	_ MetricsRecorder = (*MemoryMetricsRecorder)(nil)
)
