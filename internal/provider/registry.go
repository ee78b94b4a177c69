package provider

import (
	"context"
	"sync"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

// DefaultSettleDelay is how long Discover waits for late injections.
const DefaultSettleDelay = time.Second

// Snapshot is the complete set of providers seen by one scan.
type Snapshot struct {
	order     []string
	providers map[string]Descriptor
	ScannedAt time.Time
}

func (s Snapshot) HasAny() bool {
	return len(s.order) > 0
}

// Names lists providers in enumeration order.
func (s Snapshot) Names() []string {
	return append([]string(nil), s.order...)
}

func (s Snapshot) Get(name string) (Descriptor, bool) {
	d, ok := s.providers[name]
	return d, ok
}

func (s Snapshot) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.providers[name])
	}
	return out
}

// First returns the first provider in enumeration order.
func (s Snapshot) First() (Descriptor, bool) {
	if !s.HasAny() {
		return Descriptor{}, false
	}
	return s.providers[s.order[0]], true
}

// Select returns the preferred provider if it is present, otherwise the first one.
func (s Snapshot) Select(preferred string) (Descriptor, bool) {
	if preferred != "" {
		if d, ok := s.providers[preferred]; ok {
			return d, true
		}
	}
	return s.First()
}

type Registry struct {
	source Source

	mu   sync.RWMutex
	last Snapshot
}

func NewRegistry(source Source) *Registry {
	return &Registry{source: source}
}

// Scan builds a fresh snapshot. It never fails: an unavailable source contributes nothing.
func (r *Registry) Scan(ctx context.Context) Snapshot {
	snapshot := Snapshot{
		providers: make(map[string]Descriptor),
		ScannedAt: time.Now(),
	}

	descriptors, err := r.source.Providers(ctx)
	if err != nil {
		slogctx.Warn(ctx, "Could not enumerate every wallet provider source", "error", err)
	}

	for _, d := range descriptors {
		if !d.usable() {
			slogctx.Debug(ctx, "Skipping unusable wallet provider", "name", d.Name)
			continue
		}
		if _, ok := snapshot.providers[d.Name]; ok {
			continue
		}
		snapshot.providers[d.Name] = d
		snapshot.order = append(snapshot.order, d.Name)
	}

	if snapshot.HasAny() {
		slogctx.Info(ctx, "Wallet provider detected", "providers", snapshot.order)
	} else {
		slogctx.Info(ctx, "No wallet provider found")
	}

	r.mu.Lock()
	r.last = snapshot
	r.mu.Unlock()

	return snapshot
}

// Discover scans now and, when nothing is found, once more after settleDelay.
func (r *Registry) Discover(ctx context.Context, settleDelay time.Duration) Snapshot {
	snapshot := r.Scan(ctx)
	if snapshot.HasAny() {
		return snapshot
	}

	timer := time.NewTimer(settleDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return r.Scan(ctx)
	case <-ctx.Done():
		return snapshot
	}
}

// Last returns the snapshot of the most recent scan.
func (r *Registry) Last() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}
