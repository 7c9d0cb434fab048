package config

const (
	fmtErrEmptyConfig         = "config %s cannot be empty"
	fmtErrEmptyConfigOption   = "config field '%s' cannot be empty"
	fmtErrInvalidConfigOption = "config field '%s' is invalid: %v"
)

// Monitor kinds accepted in the monitors list.
const (
	KindLoadAvg = "loadavg"
	KindMemory  = "memory"
	KindCPU     = "cpu"
	KindTCP     = "tcp"
	KindHTTP    = "http"
	KindProcess = "process"
	KindCommand = "command"
)

// Store levels controlling when a monitor's measurement is persisted.
const (
	StoreLevelNone   = "none"
	StoreLevelErrors = "errors"
	StoreLevelAll    = "all"
)
