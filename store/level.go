package store

import (
	"fmt"

	"github.com/kvistad/hostmon/status"
)

// Level controls which check outcomes get persisted:
//
//	level  | unknown | ok  | error
//	none   | no      | no  | no
//	errors | no      | no  | yes
//	all    | yes     | yes | yes
//
// The level only gates monitors whose store flag is on.
type Level string

const (
	LevelNone   Level = "none"
	LevelErrors Level = "errors"
	LevelAll    Level = "all"
)

func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelNone, LevelErrors, LevelAll:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown store level %q", s)
	}
}

// ShouldStore reports whether a measurement with the given check outcome is
// persisted under this level.
func (l Level) ShouldStore(st status.Status) bool {
	switch l {
	case LevelAll:
		return true
	case LevelErrors:
		return st.State == status.StateError
	default:
		return false
	}
}
