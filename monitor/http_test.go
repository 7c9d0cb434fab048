package monitor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/status"
)

func buildHTTPMonitor(t *testing.T, url string, mutate func(cfg *config.MonitorConfig)) (Monitor, Deps) {
	t.Helper()

	deps := testDeps(&fakeProber{}, nil)
	cfg := baseMonitorConfig(config.KindHTTP)
	cfg.URL = url
	if mutate != nil {
		mutate(&cfg)
	}

	m, err := Build(cfg, deps)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return m, deps
}

func TestHTTPCheckStatusCodes(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		expectedState status.State
	}{
		{name: "200 passes", statusCode: http.StatusOK, expectedState: status.StateOk},
		{name: "204 passes", statusCode: http.StatusNoContent, expectedState: status.StateOk},
		{name: "399 passes", statusCode: 399, expectedState: status.StateOk},
		{name: "400 fails", statusCode: http.StatusBadRequest, expectedState: status.StateError},
		{name: "404 fails", statusCode: http.StatusNotFound, expectedState: status.StateError},
		{name: "503 fails", statusCode: http.StatusServiceUnavailable, expectedState: status.StateError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			}))
			defer server.Close()

			m, deps := buildHTTPMonitor(t, server.URL, nil)
			m.Check(context.Background())

			entry, _ := deps.Registry.Get(m.Name())
			if entry.Status.State != tc.expectedState {
				t.Errorf("Expected state %v, got %v (%s)", tc.expectedState, entry.Status.State, entry.Status.Message)
			}

			if tc.expectedState == status.StateError {
				expected := fmt.Sprintf("received status %d", tc.statusCode)
				if !strings.Contains(entry.Status.Message, expected) {
					t.Errorf("Expected message containing %q, got %q", expected, entry.Status.Message)
				}
			}
		})
	}
}

func TestHTTPCheckFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer server.Close()

	m, deps := buildHTTPMonitor(t, server.URL, nil)
	m.Check(context.Background())

	entry, _ := deps.Registry.Get(m.Name())
	if entry.Status.State != status.StateOk {
		t.Errorf("Expected state %v, got %v (%s)", status.StateOk, entry.Status.State, entry.Status.Message)
	}
}

func TestHTTPCheckSendsMethodAndUserAgent(t *testing.T) {
	var gotMethod, gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAgent = r.UserAgent()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m, _ := buildHTTPMonitor(t, server.URL, func(cfg *config.MonitorConfig) {
		cfg.Method = "HEAD"
	})
	m.Check(context.Background())

	if gotMethod != "HEAD" {
		t.Errorf("Expected method HEAD, got %q", gotMethod)
	}
	if gotAgent != httpUserAgent {
		t.Errorf("Expected user agent %q, got %q", httpUserAgent, gotAgent)
	}
}

func TestHTTPCheckUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m, deps := buildHTTPMonitor(t, url, nil)
	m.Check(context.Background())

	entry, _ := deps.Registry.Get(m.Name())
	if entry.Status.State != status.StateError {
		t.Errorf("Expected state %v, got %v", status.StateError, entry.Status.State)
	}
}

func TestHTTPCheckTimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	m, deps := buildHTTPMonitor(t, server.URL, func(cfg *config.MonitorConfig) {
		cfg.Timeout = "100ms"
	})

	started := time.Now()
	m.Check(context.Background())
	elapsed := time.Since(started)

	entry, _ := deps.Registry.Get(m.Name())
	if entry.Status.State != status.StateError {
		t.Fatalf("Expected state %v, got %v", status.StateError, entry.Status.State)
	}
	if !strings.Contains(entry.Status.Message, "timed out") {
		t.Errorf("Expected a timeout message, got %q", entry.Status.Message)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Expected the check to finish within the timeout, took %s", elapsed)
	}
}
