package probe

import "time"

// LoadAvg is a point-in-time load average readout. Load10 carries the third
// field of the OS readout, matching the agent's 1min/5min/10min reporting
// vocabulary.
type LoadAvg struct {
	Load1       float64
	Load5       float64
	Load10      float64
	CollectedAt time.Time
}

// Memory is a point-in-time readout of RAM and swap usage.
type Memory struct {
	Total       uint64
	Available   uint64
	Used        uint64
	UsedPercent float64
	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64
	CollectedAt time.Time
}

// CPU is a point-in-time readout of total CPU utilization since the
// previous readout.
type CPU struct {
	UsedPercent float64
	CollectedAt time.Time
}

// Process is a projection of one entry in the process table.
type Process struct {
	PID           int32
	Name          string
	Username      string
	Status        string
	CPUPercent    float64
	MemoryPercent float32
	StartedAt     time.Time
}
