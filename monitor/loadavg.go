package monitor

import (
	"context"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
)

const fmtLoadAvgExceeded = "Load average %v is greater than max load average %v"

// LoadAvgMonitor reads the 1, 5 and 10 minute load averages and compares
// each window against its optional ceiling.
type LoadAvgMonitor struct {
	base
	prober Prober
	cache  *probe.Cache
	max1   *float64
	max5   *float64
	max10  *float64
}

func newLoadAvgMonitor(cfg config.MonitorConfig, deps Deps) (*LoadAvgMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &LoadAvgMonitor{
		base:   b,
		prober: deps.Prober,
		cache:  deps.Cache,
		max1:   cfg.MaxLoadAvg1Min,
		max5:   cfg.MaxLoadAvg5Min,
		max10:  cfg.MaxLoadAvg10Min,
	}, nil
}

func (m *LoadAvgMonitor) Check(ctx context.Context) {
	started := time.Now()

	reading, err := m.prober.LoadAvg(ctx)
	if err != nil {
		m.report(status.Errorf("failed to read load average: %v", err), started)
		return
	}

	m.cache.SetLoadAvg(reading)

	st := classifyLoadAvg(reading, m.max1, m.max5, m.max10)
	m.report(st, started)

	if m.shouldStore(st) {
		if err := m.gateway.StoreLoadAvg(ctx, reading); err != nil {
			m.logger.Error("failed to store load average", "monitor", m.name, "error", err)
		}
	}
}

func classifyLoadAvg(reading probe.LoadAvg, max1, max5, max10 *float64) status.Status {
	return aggregate("Load average check failed", []subCheck{
		{label: "1min", current: reading.Load1, max: max1, failFmt: fmtLoadAvgExceeded},
		{label: "5min", current: reading.Load5, max: max5, failFmt: fmtLoadAvgExceeded},
		{label: "10min", current: reading.Load10, max: max10, failFmt: fmtLoadAvgExceeded},
	})
}
