package monitor

import (
	"fmt"
	"strings"

	"github.com/kvistad/hostmon/status"
)

// subCheck is one sub-metric comparison inside a threshold check. A nil max
// means no ceiling is configured and the comparison always passes.
type subCheck struct {
	label   string
	current float64
	max     *float64
	failFmt string
}

// eval compares the measured value against the ceiling. Only strictly
// greater fails; a value equal to the ceiling passes.
func (s subCheck) eval() status.Status {
	if s.max == nil {
		return status.Ok()
	}
	if s.current > *s.max {
		return status.Errorf(s.failFmt, s.current, *s.max)
	}
	return status.Ok()
}

// aggregate folds the sub-checks into one status. Any failing sub-check
// fails the whole check, and the message enumerates every sub-check in the
// order given so the same readings always produce the same text.
func aggregate(headline string, checks []subCheck) status.Status {
	outcomes := make([]status.Status, len(checks))
	failed := false

	for i, c := range checks {
		outcomes[i] = c.eval()
		if outcomes[i].IsError() {
			failed = true
		}
	}

	if !failed {
		return status.Ok()
	}

	parts := make([]string, len(checks))
	for i, c := range checks {
		parts[i] = fmt.Sprintf("%s: %s", c.label, renderOutcome(outcomes[i]))
	}

	return status.Errorf("%s: %s", headline, strings.Join(parts, ", "))
}

func renderOutcome(st status.Status) string {
	if st.IsError() {
		return fmt.Sprintf("Error(%s)", st.Message)
	}
	return "Ok"
}
