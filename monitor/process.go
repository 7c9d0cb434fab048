package monitor

import (
	"context"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/status"
)

// ProcessMonitor checks that at least one process with the configured name
// is running.
type ProcessMonitor struct {
	base
	prober  Prober
	process string
}

func newProcessMonitor(cfg config.MonitorConfig, deps Deps) (*ProcessMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &ProcessMonitor{
		base:    b,
		prober:  deps.Prober,
		process: cfg.Process,
	}, nil
}

func (m *ProcessMonitor) Check(ctx context.Context) {
	started := time.Now()

	matches, err := m.prober.FindProcesses(ctx, m.process)
	if err != nil {
		m.finish(ctx, status.Errorf("failed to scan process table: %v", err), started)
		return
	}

	if len(matches) == 0 {
		m.finish(ctx, status.Errorf("process %q is not running", m.process), started)
		return
	}

	m.finish(ctx, status.Ok(), started)
}
