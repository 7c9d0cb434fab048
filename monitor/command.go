package monitor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/status"
)

const maxCommandOutput = 256

// CommandMonitor runs a command and checks its exit code against the
// expected one. The run is bounded by the configured timeout.
type CommandMonitor struct {
	base
	argv     []string
	expected int
	timeout  time.Duration
}

func newCommandMonitor(cfg config.MonitorConfig, deps Deps) (*CommandMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timeout: %w", err)
	}

	return &CommandMonitor{
		base:     b,
		argv:     cfg.Command,
		expected: cfg.ExpectedExitCode,
		timeout:  timeout,
	}, nil
}

func (m *CommandMonitor) Check(ctx context.Context) {
	started := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, m.argv[0], m.argv[1:]...)
	output, err := cmd.CombinedOutput()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		m.finish(ctx, status.Errorf("command %q timed out after %s", m.argv[0], m.timeout), started)
		return
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			m.finish(ctx, status.Errorf("failed to run command %q: %v", m.argv[0], err), started)
			return
		}
		exitCode = exitErr.ExitCode()
	}

	if exitCode != m.expected {
		msg := fmt.Sprintf("command %q exited with code %d, expected %d", m.argv[0], exitCode, m.expected)
		if out := truncateOutput(output); out != "" {
			msg = fmt.Sprintf("%s: %s", msg, out)
		}
		m.finish(ctx, status.Errorf("%s", msg), started)
		return
	}

	m.finish(ctx, status.Ok(), started)
}

func truncateOutput(output []byte) string {
	out := strings.TrimSpace(string(output))
	if len(out) > maxCommandOutput {
		out = out[:maxCommandOutput] + "..."
	}
	return out
}
