package monitor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
)

func TestProcessCheck(t *testing.T) {
	tests := []struct {
		name          string
		procs         []probe.Process
		procsErr      error
		expectedState status.State
		expectedMsg   string
	}{
		{
			name:          "process running",
			procs:         []probe.Process{{PID: 1200, Name: "nginx"}},
			expectedState: status.StateOk,
		},
		{
			name:          "several instances running",
			procs:         []probe.Process{{PID: 1200, Name: "nginx"}, {PID: 1201, Name: "nginx"}},
			expectedState: status.StateOk,
		},
		{
			name:          "process not running",
			expectedState: status.StateError,
			expectedMsg:   `process "nginx" is not running`,
		},
		{
			name:          "process table scan fails",
			procsErr:      errors.New("permission denied"),
			expectedState: status.StateError,
			expectedMsg:   "failed to scan process table",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prober := &fakeProber{procs: tc.procs, procsErr: tc.procsErr}
			deps := testDeps(prober, nil)

			m, err := Build(baseMonitorConfig(config.KindProcess), deps)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			m.Check(context.Background())

			entry, _ := deps.Registry.Get(m.Name())
			if entry.Status.State != tc.expectedState {
				t.Errorf("Expected state %v, got %v (%s)", tc.expectedState, entry.Status.State, entry.Status.Message)
			}
			if tc.expectedMsg != "" && !strings.Contains(entry.Status.Message, tc.expectedMsg) {
				t.Errorf("Expected message containing %q, got %q", tc.expectedMsg, entry.Status.Message)
			}
		})
	}
}
