package status

import (
	"log/slog"
	"sync"
	"time"
)

// Registry is the shared mapping from monitor name to its current status.
// Every monitor writes its own entry, the HTTP API reads snapshots. The lock
// covers only map access: callers gather data and classify outcomes before
// calling Set, so a slow probe never blocks another monitor's update.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]MonitorStatus
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		entries: make(map[string]MonitorStatus),
		logger:  logger,
	}
}

// Register creates the entry for a monitor with an Unknown status. It is
// idempotent: a name that is already present is left untouched, so a
// monitor's current status survives repeated registration.
func (r *Registry) Register(name, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return
	}

	r.entries[name] = MonitorStatus{
		Name:   name,
		Kind:   kind,
		Status: Unknown(),
	}
}

// Set records the outcome of a check cycle. Entries are created at monitor
// construction, so an unknown name here is a bug in the caller; the update
// is logged and applied anyway rather than dropped or turned into a panic.
func (r *Registry) Set(name string, st Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[name]
	if !ok {
		r.logger.Warn("status update for unregistered monitor", "monitor", name)
		entry = MonitorStatus{Name: name}
	}

	entry.Status = st
	entry.LastChecked = time.Now()
	r.entries[name] = entry
}

// Get returns the entry for a single monitor.
func (r *Registry) Get(name string) (MonitorStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	return entry, ok
}

// Snapshot returns a point-in-time copy of all entries. The copy is the
// caller's to keep; later check cycles do not show through it.
func (r *Registry) Snapshot() map[string]MonitorStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]MonitorStatus, len(r.entries))
	for k, v := range r.entries {
		result[k] = v
	}
	return result
}

// Len returns the number of registered monitors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
