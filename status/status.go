package status

import (
	"fmt"
	"time"
)

// State is the classification a monitor's check produces. Every monitor
// starts as StateUnknown and flips between StateOk and StateError on each
// check cycle.
type State int

const (
	StateUnknown State = iota
	StateOk
	StateError
)

func (s State) String() string {
	switch s {
	case StateOk:
		return "ok"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the outcome of a single check cycle. Message is set only for
// StateError.
type Status struct {
	State   State
	Message string
}

func Unknown() Status {
	return Status{State: StateUnknown}
}

func Ok() Status {
	return Status{State: StateOk}
}

func Errorf(format string, args ...interface{}) Status {
	return Status{State: StateError, Message: fmt.Sprintf(format, args...)}
}

func (s Status) IsError() bool {
	return s.State == StateError
}

// MonitorStatus is the registry entry for one configured monitor.
// LastChecked stays zero until the first check cycle completes.
type MonitorStatus struct {
	Name        string
	Kind        string
	Status      Status
	LastChecked time.Time
}
