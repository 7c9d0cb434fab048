// Package monitor implements the check variants the agent can run against
// the host. Every variant gathers one observation, classifies it into a
// status and reports the result to the shared registry. Check never returns
// an error: failures become an error status on the monitor itself.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/metrics"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
	"github.com/kvistad/hostmon/store"
)

// Monitor is a single named check. Check runs one cycle and records the
// outcome; it must not panic and must not block past its configured bounds.
type Monitor interface {
	Name() string
	Kind() string
	Check(ctx context.Context)
}

// Prober provides the host readings the metric monitors consume.
type Prober interface {
	LoadAvg(ctx context.Context) (probe.LoadAvg, error)
	Memory(ctx context.Context) (probe.Memory, error)
	CPU(ctx context.Context) (probe.CPU, error)
	FindProcesses(ctx context.Context, name string) ([]probe.Process, error)
}

// Store persists readings and check events. A nil Store disables
// persistence for the monitor regardless of its configuration.
type Store interface {
	StoreLoadAvg(ctx context.Context, reading probe.LoadAvg) error
	StoreMemory(ctx context.Context, reading probe.Memory) error
	StoreCPU(ctx context.Context, reading probe.CPU) error
	StoreCheckEvent(ctx context.Context, name, kind string, st status.Status) error
}

// Deps carries the shared collaborators monitors are built against.
type Deps struct {
	Registry *status.Registry
	Prober   Prober
	Cache    *probe.Cache
	Gateway  Store
	Logger   *slog.Logger
}

// base holds the plumbing every variant shares: identity, registry
// reporting and the persistence policy.
type base struct {
	name         string
	kind         string
	registry     *status.Registry
	gateway      Store
	level        store.Level
	storeEnabled bool
	logger       *slog.Logger
}

func newBase(cfg config.MonitorConfig, deps Deps) (base, error) {
	level, err := store.ParseLevel(cfg.StoreLevel)
	if err != nil {
		return base{}, err
	}

	return base{
		name:         cfg.Name,
		kind:         cfg.Kind,
		registry:     deps.Registry,
		gateway:      deps.Gateway,
		level:        level,
		storeEnabled: cfg.Store,
		logger:       deps.Logger,
	}, nil
}

func (b *base) Name() string { return b.name }
func (b *base) Kind() string { return b.kind }

// report records one completed check cycle in the registry and the
// self-metrics.
func (b *base) report(st status.Status, started time.Time) {
	b.registry.Set(b.name, st)
	metrics.RecordCheck(b.name, b.kind, st, time.Since(started))

	if st.IsError() {
		b.logger.Warn("check failed", "monitor", b.name, "kind", b.kind, "error", st.Message)
	} else {
		b.logger.Debug("check passed", "monitor", b.name, "kind", b.kind)
	}
}

func (b *base) shouldStore(st status.Status) bool {
	return b.storeEnabled && b.gateway != nil && b.level.ShouldStore(st)
}

// finish reports the outcome and persists it as a check event when the
// store policy asks for it. Variants that persist numeric readings instead
// call report and store the reading themselves.
func (b *base) finish(ctx context.Context, st status.Status, started time.Time) {
	b.report(st, started)

	if !b.shouldStore(st) {
		return
	}
	if err := b.gateway.StoreCheckEvent(ctx, b.name, b.kind, st); err != nil {
		b.logger.Error("failed to store check event", "monitor", b.name, "error", err)
	}
}

// Build constructs the monitor described by cfg and registers it. A
// construction error leaves no trace in the registry so a skipped monitor
// never surfaces as a permanently unknown entry.
func Build(cfg config.MonitorConfig, deps Deps) (Monitor, error) {
	var (
		m   Monitor
		err error
	)

	switch cfg.Kind {
	case config.KindLoadAvg:
		m, err = newLoadAvgMonitor(cfg, deps)
	case config.KindMemory:
		m, err = newMemoryMonitor(cfg, deps)
	case config.KindCPU:
		m, err = newCPUMonitor(cfg, deps)
	case config.KindTCP:
		m, err = newTCPMonitor(cfg, deps)
	case config.KindHTTP:
		m, err = newHTTPMonitor(cfg, deps)
	case config.KindProcess:
		m, err = newProcessMonitor(cfg, deps)
	case config.KindCommand:
		m, err = newCommandMonitor(cfg, deps)
	default:
		return nil, fmt.Errorf("unknown monitor kind %q", cfg.Kind)
	}

	if err != nil {
		return nil, fmt.Errorf("monitor %q: %w", cfg.Name, err)
	}

	deps.Registry.Register(cfg.Name, cfg.Kind)

	return m, nil
}
