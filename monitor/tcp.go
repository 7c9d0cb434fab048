package monitor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/status"
)

// TCPMonitor checks that a TCP endpoint accepts connections. The dial is
// bounded by the configured timeout and the connection is closed as soon as
// it is established.
type TCPMonitor struct {
	base
	addr    string
	timeout time.Duration
}

func newTCPMonitor(cfg config.MonitorConfig, deps Deps) (*TCPMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timeout: %w", err)
	}

	return &TCPMonitor{
		base:    b,
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		timeout: timeout,
	}, nil
}

func (m *TCPMonitor) Check(ctx context.Context) {
	started := time.Now()

	dialer := net.Dialer{Timeout: m.timeout}

	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		st := status.Errorf("failed to connect to %s: %v", m.addr, err)

		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			st = status.Errorf("connection to %s timed out after %s", m.addr, m.timeout)
		}

		m.finish(ctx, st, started)
		return
	}
	_ = conn.Close()

	m.finish(ctx, status.Ok(), started)
}
