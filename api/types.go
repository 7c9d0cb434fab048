package api

import (
	"time"

	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
)

type MonitorStatusResponse struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
	LastChecked *time.Time `json:"lastChecked,omitempty"`
}

type LoadAvgResponse struct {
	LoadAvg1Min  float64   `json:"loadavg1min"`
	LoadAvg5Min  float64   `json:"loadavg5min"`
	LoadAvg10Min float64   `json:"loadavg10min"`
	CollectedAt  time.Time `json:"collectedAt"`
}

type MemoryResponse struct {
	TotalBytes     uint64    `json:"totalBytes"`
	AvailableBytes uint64    `json:"availableBytes"`
	UsedBytes      uint64    `json:"usedBytes"`
	UsedPercent    float64   `json:"usedPercent"`
	SwapTotalBytes uint64    `json:"swapTotalBytes"`
	SwapUsedBytes  uint64    `json:"swapUsedBytes"`
	SwapPercent    float64   `json:"swapPercent"`
	CollectedAt    time.Time `json:"collectedAt"`
}

type CPUResponse struct {
	UsedPercent float64   `json:"usedPercent"`
	CollectedAt time.Time `json:"collectedAt"`
}

type ProcessResponse struct {
	PID           int32     `json:"pid"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Status        string    `json:"status"`
	CPUPercent    float64   `json:"cpuPercent"`
	MemoryPercent float32   `json:"memoryPercent"`
	StartedAt     time.Time `json:"startedAt"`
}

func newMonitorStatusResponse(entry status.MonitorStatus) MonitorStatusResponse {
	response := MonitorStatusResponse{
		Name:    entry.Name,
		Kind:    entry.Kind,
		Status:  entry.Status.State.String(),
		Message: entry.Status.Message,
	}

	if !entry.LastChecked.IsZero() {
		lastChecked := entry.LastChecked
		response.LastChecked = &lastChecked
	}

	return response
}

func newLoadAvgResponse(reading probe.LoadAvg) LoadAvgResponse {
	return LoadAvgResponse{
		LoadAvg1Min:  reading.Load1,
		LoadAvg5Min:  reading.Load5,
		LoadAvg10Min: reading.Load10,
		CollectedAt:  reading.CollectedAt,
	}
}

func newMemoryResponse(reading probe.Memory) MemoryResponse {
	return MemoryResponse{
		TotalBytes:     reading.Total,
		AvailableBytes: reading.Available,
		UsedBytes:      reading.Used,
		UsedPercent:    reading.UsedPercent,
		SwapTotalBytes: reading.SwapTotal,
		SwapUsedBytes:  reading.SwapUsed,
		SwapPercent:    reading.SwapPercent,
		CollectedAt:    reading.CollectedAt,
	}
}

func newCPUResponse(reading probe.CPU) CPUResponse {
	return CPUResponse{
		UsedPercent: reading.UsedPercent,
		CollectedAt: reading.CollectedAt,
	}
}

func newProcessResponse(proc probe.Process) ProcessResponse {
	return ProcessResponse{
		PID:           proc.PID,
		Name:          proc.Name,
		Username:      proc.Username,
		Status:        proc.Status,
		CPUPercent:    proc.CPUPercent,
		MemoryPercent: proc.MemoryPercent,
		StartedAt:     proc.StartedAt,
	}
}
