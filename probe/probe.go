package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var ErrProcessNotFound = errors.New("process not found")

// Prober gathers raw OS readouts. The collector functions are fields so
// tests can substitute fakes without touching the OS.
type Prober struct {
	logger *slog.Logger

	loadAvgFn    func(ctx context.Context) (*load.AvgStat, error)
	virtualMemFn func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	swapMemFn    func(ctx context.Context) (*mem.SwapMemoryStat, error)
	cpuPercentFn func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	processesFn  func(ctx context.Context) ([]Process, error)
}

func New(logger *slog.Logger) *Prober {
	p := &Prober{
		logger:       logger,
		loadAvgFn:    load.AvgWithContext,
		virtualMemFn: mem.VirtualMemoryWithContext,
		swapMemFn:    mem.SwapMemoryWithContext,
		cpuPercentFn: cpu.PercentWithContext,
	}
	p.processesFn = p.gatherProcesses
	return p
}

func (p *Prober) LoadAvg(ctx context.Context) (LoadAvg, error) {
	avg, err := p.loadAvgFn(ctx)
	if err != nil {
		return LoadAvg{}, fmt.Errorf("failed to read load average: %w", err)
	}

	return LoadAvg{
		Load1:       avg.Load1,
		Load5:       avg.Load5,
		Load10:      avg.Load15,
		CollectedAt: time.Now(),
	}, nil
}

func (p *Prober) Memory(ctx context.Context) (Memory, error) {
	vm, err := p.virtualMemFn(ctx)
	if err != nil {
		return Memory{}, fmt.Errorf("failed to read memory info: %w", err)
	}

	swap, err := p.swapMemFn(ctx)
	if err != nil {
		return Memory{}, fmt.Errorf("failed to read swap info: %w", err)
	}

	return Memory{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
		SwapTotal:   swap.Total,
		SwapUsed:    swap.Used,
		SwapPercent: swap.UsedPercent,
		CollectedAt: time.Now(),
	}, nil
}

// CPU reports total utilization since the previous call. The first readout
// after process start compares against boot and may read low.
func (p *Prober) CPU(ctx context.Context) (CPU, error) {
	percents, err := p.cpuPercentFn(ctx, 0, false)
	if err != nil {
		return CPU{}, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(percents) == 0 {
		return CPU{}, fmt.Errorf("cpu usage readout is empty")
	}

	return CPU{
		UsedPercent: percents[0],
		CollectedAt: time.Now(),
	}, nil
}

func (p *Prober) Processes(ctx context.Context) ([]Process, error) {
	return p.processesFn(ctx)
}

// FindProcesses returns the processes whose name matches exactly.
func (p *Prober) FindProcesses(ctx context.Context, name string) ([]Process, error) {
	procs, err := p.processesFn(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Process
	for _, proc := range procs {
		if proc.Name == name {
			matches = append(matches, proc)
		}
	}
	return matches, nil
}

// ProcessByPID returns the process table entry for a single pid, or
// ErrProcessNotFound.
func (p *Prober) ProcessByPID(ctx context.Context, pid int32) (Process, error) {
	procs, err := p.processesFn(ctx)
	if err != nil {
		return Process{}, err
	}

	for _, proc := range procs {
		if proc.PID == pid {
			return proc, nil
		}
	}
	return Process{}, ErrProcessNotFound
}

func (p *Prober) gatherProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	result := make([]Process, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			// Process exited between the listing and this read.
			continue
		}

		entry := Process{PID: proc.Pid, Name: name}

		if username, err := proc.UsernameWithContext(ctx); err == nil {
			entry.Username = username
		}
		if states, err := proc.StatusWithContext(ctx); err == nil && len(states) > 0 {
			entry.Status = states[0]
		}
		if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
			entry.CPUPercent = pct
		}
		if pct, err := proc.MemoryPercentWithContext(ctx); err == nil {
			entry.MemoryPercent = pct
		}
		if created, err := proc.CreateTimeWithContext(ctx); err == nil {
			entry.StartedAt = time.UnixMilli(created)
		}

		result = append(result, entry)
	}

	return result, nil
}
