package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/status"
)

const httpUserAgent = "hostmon/1.0"

// HTTPMonitor checks that an HTTP endpoint answers with a non-error status
// code. Redirects are followed, any response below 400 passes, and the
// whole exchange is bounded by the configured timeout.
type HTTPMonitor struct {
	base
	url     string
	method  string
	timeout time.Duration
	client  *http.Client
}

func newHTTPMonitor(cfg config.MonitorConfig, deps Deps) (*HTTPMonitor, error) {
	b, err := newBase(cfg, deps)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timeout: %w", err)
	}

	return &HTTPMonitor{
		base:    b,
		url:     cfg.URL,
		method:  cfg.Method,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (m *HTTPMonitor) Check(ctx context.Context) {
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, m.method, m.url, nil)
	if err != nil {
		m.finish(ctx, status.Errorf("failed to build request for %s: %v", m.url, err), started)
		return
	}
	req.Header.Set("User-Agent", httpUserAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		st := status.Errorf("request to %s failed: %v", m.url, err)

		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			st = status.Errorf("request to %s timed out after %s", m.url, m.timeout)
		}

		m.finish(ctx, st, started)
		return
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused next cycle.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= http.StatusBadRequest {
		m.finish(ctx, status.Errorf("received status %d from %s", resp.StatusCode, m.url), started)
		return
	}

	m.finish(ctx, status.Ok(), started)
}
