package monitor

import (
	"context"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
)

const fmtCPUExceeded = "CPU usage %v%% is greater than max CPU usage %v%%"

// CPUMonitor reads the aggregate CPU utilization and compares it against an
// optional ceiling.
type CPUMonitor struct {
	base
	prober Prober
	cache  *probe.Cache
	maxCPU *float64
}

func newCPUMonitor(cfg config.MonitorConfig, deps Deps) (*CPUMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &CPUMonitor{
		base:   b,
		prober: deps.Prober,
		cache:  deps.Cache,
		maxCPU: cfg.MaxCPUUsed,
	}, nil
}

func (m *CPUMonitor) Check(ctx context.Context) {
	started := time.Now()

	reading, err := m.prober.CPU(ctx)
	if err != nil {
		m.report(status.Errorf("failed to read CPU usage: %v", err), started)
		return
	}

	m.cache.SetCPU(reading)

	st := classifyCPU(reading, m.maxCPU)
	m.report(st, started)

	if m.shouldStore(st) {
		if err := m.gateway.StoreCPU(ctx, reading); err != nil {
			m.logger.Error("failed to store CPU usage", "monitor", m.name, "error", err)
		}
	}
}

func classifyCPU(reading probe.CPU, maxCPU *float64) status.Status {
	return aggregate("CPU check failed", []subCheck{
		{label: "cpu", current: reading.UsedPercent, max: maxCPU, failFmt: fmtCPUExceeded},
	})
}
