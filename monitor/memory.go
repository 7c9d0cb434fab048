package monitor

import (
	"context"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
)

const (
	fmtMemoryExceeded = "Memory usage %v%% is greater than max memory usage %v%%"
	fmtSwapExceeded   = "Swap usage %v%% is greater than max swap usage %v%%"
)

// MemoryMonitor reads virtual memory and swap usage and compares both
// percentages against their optional ceilings.
type MemoryMonitor struct {
	base
	prober  Prober
	cache   *probe.Cache
	maxMem  *float64
	maxSwap *float64
}

func newMemoryMonitor(cfg config.MonitorConfig, deps Deps) (*MemoryMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &MemoryMonitor{
		base:    b,
		prober:  deps.Prober,
		cache:   deps.Cache,
		maxMem:  cfg.MaxMemoryUsed,
		maxSwap: cfg.MaxSwapUsed,
	}, nil
}

func (m *MemoryMonitor) Check(ctx context.Context) {
	started := time.Now()

	reading, err := m.prober.Memory(ctx)
	if err != nil {
		m.report(status.Errorf("failed to read memory usage: %v", err), started)
		return
	}

	m.cache.SetMemory(reading)

	st := classifyMemory(reading, m.maxMem, m.maxSwap)
	m.report(st, started)

	if m.shouldStore(st) {
		if err := m.gateway.StoreMemory(ctx, reading); err != nil {
			m.logger.Error("failed to store memory usage", "monitor", m.name, "error", err)
		}
	}
}

func classifyMemory(reading probe.Memory, maxMem, maxSwap *float64) status.Status {
	return aggregate("Memory check failed", []subCheck{
		{label: "memory", current: reading.UsedPercent, max: maxMem, failFmt: fmtMemoryExceeded},
		{label: "swap", current: reading.SwapPercent, max: maxSwap, failFmt: fmtSwapExceeded},
	})
}
