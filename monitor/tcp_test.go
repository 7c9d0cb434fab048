package monitor

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/status"
)

func TestTCPCheckReachableEndpoint(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Expected a listener, got %v", err)
	}
	defer listener.Close()

	deps := testDeps(&fakeProber{}, nil)
	cfg := baseMonitorConfig(config.KindTCP)
	cfg.Port = listener.Addr().(*net.TCPAddr).Port

	m, err := Build(cfg, deps)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	m.Check(context.Background())

	entry, _ := deps.Registry.Get(m.Name())
	if entry.Status.State != status.StateOk {
		t.Errorf("Expected state %v, got %v (%s)", status.StateOk, entry.Status.State, entry.Status.Message)
	}
}

func TestTCPCheckRefusedConnection(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Expected a listener, got %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	deps := testDeps(&fakeProber{}, nil)
	cfg := baseMonitorConfig(config.KindTCP)
	cfg.Port = port

	m, err := Build(cfg, deps)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	m.Check(context.Background())

	entry, _ := deps.Registry.Get(m.Name())
	if entry.Status.State != status.StateError {
		t.Fatalf("Expected state %v, got %v", status.StateError, entry.Status.State)
	}
	if !strings.Contains(entry.Status.Message, "failed to connect") {
		t.Errorf("Expected a connect failure message, got %q", entry.Status.Message)
	}
}

func TestTCPCheckTimeoutIsBounded(t *testing.T) {
	deps := testDeps(&fakeProber{}, nil)

	// Reserved address space that neither answers nor refuses.
	cfg := baseMonitorConfig(config.KindTCP)
	cfg.Host = "10.255.255.1"
	cfg.Port = 9999
	cfg.Timeout = "1s"

	m, err := Build(cfg, deps)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	started := time.Now()
	m.Check(context.Background())
	elapsed := time.Since(started)

	entry, _ := deps.Registry.Get(m.Name())
	if entry.Status.State != status.StateError {
		t.Errorf("Expected state %v, got %v", status.StateError, entry.Status.State)
	}
	if elapsed > 5*time.Second {
		t.Errorf("Expected the check to finish within the timeout, took %s", elapsed)
	}
}

func TestTCPCheckStoresEvent(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Expected a listener, got %v", err)
	}
	defer listener.Close()

	gateway := &fakeStore{}
	deps := testDeps(&fakeProber{}, gateway)

	cfg := baseMonitorConfig(config.KindTCP)
	cfg.Port = listener.Addr().(*net.TCPAddr).Port
	cfg.Store = true

	m, err := Build(cfg, deps)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	m.Check(context.Background())

	if gateway.eventCount() != 1 {
		t.Fatalf("Expected 1 stored event, got %d", gateway.eventCount())
	}
	if gateway.events[0].kind != config.KindTCP {
		t.Errorf("Expected event kind %q, got %q", config.KindTCP, gateway.events[0].kind)
	}
}
