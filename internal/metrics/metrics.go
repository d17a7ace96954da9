// v1
// internal/metrics/metrics.go

// Package metrics implements the small counter set the nodes expose over
// their /status endpoint. Counters are plain mutex-guarded values; the node
// loops are low-frequency enough that contention is a non-issue.
package metrics

import "sync"

// Registry holds one node's counters, keyed by name.
type Registry struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func NewRegistry() *Registry {
	return &Registry{counts: map[string]uint64{}}
}

// Inc bumps the named counter by one.
func (r *Registry) Inc(name string) {
	r.mu.Lock()
	r.counts[name]++
	r.mu.Unlock()
}

// Add bumps the named counter by n.
func (r *Registry) Add(name string, n uint64) {
	r.mu.Lock()
	r.counts[name] += n
	r.mu.Unlock()
}

// Get returns the current value of one counter.
func (r *Registry) Get(name string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

// Snapshot clones all counters for status reporting.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uint64, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Counter names shared by the node loops.
const (
	Ticks             = "ticks"
	TransportFailures = "transport_failures"
	MalformedPayloads = "malformed_payloads"
	UnknownCommands   = "unknown_commands"
	RequestsServiced  = "requests_serviced"
	BundlesApplied    = "bundles_applied"
	BundlesDeduped    = "bundles_deduped"
	Renders           = "renders"
	TelemetryPushed   = "telemetry_pushed"
)
