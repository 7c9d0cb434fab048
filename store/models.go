package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
	"github.com/uptrace/bun"
)

// LoadAvgRow is one persisted load average measurement.
type LoadAvgRow struct {
	bun.BaseModel `bun:"table:hostmon_loadavg,alias:la"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	ServerName  string    `bun:"server_name,notnull"`
	Load1       float64   `bun:"load1,notnull"`
	Load5       float64   `bun:"load5,notnull"`
	Load10      float64   `bun:"load10,notnull"`
	CollectedAt time.Time `bun:"collected_at,notnull"`
}

// MemoryRow is one persisted memory measurement.
type MemoryRow struct {
	bun.BaseModel `bun:"table:hostmon_memory,alias:mem"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	ServerName  string    `bun:"server_name,notnull"`
	Total       int64     `bun:"total_bytes,notnull"`
	Available   int64     `bun:"available_bytes,notnull"`
	Used        int64     `bun:"used_bytes,notnull"`
	UsedPercent float64   `bun:"used_percent,notnull"`
	SwapTotal   int64     `bun:"swap_total_bytes,notnull"`
	SwapUsed    int64     `bun:"swap_used_bytes,notnull"`
	SwapPercent float64   `bun:"swap_percent,notnull"`
	CollectedAt time.Time `bun:"collected_at,notnull"`
}

// CPURow is one persisted CPU utilization measurement.
type CPURow struct {
	bun.BaseModel `bun:"table:hostmon_cpu,alias:cpu"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	ServerName  string    `bun:"server_name,notnull"`
	UsedPercent float64   `bun:"used_percent,notnull"`
	CollectedAt time.Time `bun:"collected_at,notnull"`
}

// CheckEventRow is one persisted check outcome for monitors without a
// numeric reading (tcp, http, process, command).
type CheckEventRow struct {
	bun.BaseModel `bun:"table:hostmon_check_events,alias:ce"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	ServerName  string    `bun:"server_name,notnull"`
	MonitorName string    `bun:"monitor_name,notnull"`
	MonitorKind string    `bun:"monitor_kind,notnull"`
	State       string    `bun:"state,notnull"`
	Message     string    `bun:"message"`
	CheckedAt   time.Time `bun:"checked_at,notnull"`
}

func newLoadAvgRow(server string, r probe.LoadAvg) *LoadAvgRow {
	return &LoadAvgRow{
		ID:          uuid.New(),
		ServerName:  server,
		Load1:       r.Load1,
		Load5:       r.Load5,
		Load10:      r.Load10,
		CollectedAt: r.CollectedAt,
	}
}

func newMemoryRow(server string, r probe.Memory) *MemoryRow {
	return &MemoryRow{
		ID:          uuid.New(),
		ServerName:  server,
		Total:       int64(r.Total),
		Available:   int64(r.Available),
		Used:        int64(r.Used),
		UsedPercent: r.UsedPercent,
		SwapTotal:   int64(r.SwapTotal),
		SwapUsed:    int64(r.SwapUsed),
		SwapPercent: r.SwapPercent,
		CollectedAt: r.CollectedAt,
	}
}

func newCPURow(server string, r probe.CPU) *CPURow {
	return &CPURow{
		ID:          uuid.New(),
		ServerName:  server,
		UsedPercent: r.UsedPercent,
		CollectedAt: r.CollectedAt,
	}
}

func newCheckEventRow(server, name, kind string, st status.Status) *CheckEventRow {
	return &CheckEventRow{
		ID:          uuid.New(),
		ServerName:  server,
		MonitorName: name,
		MonitorKind: kind,
		State:       st.State.String(),
		Message:     st.Message,
		CheckedAt:   time.Now(),
	}
}
