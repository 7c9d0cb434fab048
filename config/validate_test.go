package config

import (
	"fmt"
	"strings"
	"testing"
)

type mockConfig struct {
	serverErr   error
	loggingErr  error
	databaseErr error
	monitorsErr error
}

func (m *mockConfig) validateServerConfig() error   { return m.serverErr }
func (m *mockConfig) validateLoggingConfig() error  { return m.loggingErr }
func (m *mockConfig) validateDatabaseConfig() error { return m.databaseErr }
func (m *mockConfig) validateMonitorsConfig() error { return m.monitorsErr }

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    Validator
		expectErr bool
	}{
		{"success", &mockConfig{}, false},
		{"server error", &mockConfig{serverErr: fmt.Errorf("bad server")}, true},
		{"logging error", &mockConfig{loggingErr: fmt.Errorf("bad logging")}, true},
		{"database error", &mockConfig{databaseErr: fmt.Errorf("bad database")}, true},
		{"monitors error", &mockConfig{monitorsErr: fmt.Errorf("bad monitors")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := validateConfig(test.config)
			if (result != nil) != test.expectErr {
				t.Errorf("Expected error: %v, got: %v", test.expectErr, result)
			}
		})
	}
}

func validTestConfig() *Config {
	return &Config{
		Server:  DefaultServerConfig,
		Logging: DefaultLoggingConfig,
	}
}

func TestValidateServerConfig(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad cache max age", func(c *Config) { c.Server.CacheMaxAge = "fast" }, "server.cache_max_age"},
		{"cert without key", func(c *Config) { c.Server.TLSCert = "/tmp/cert.pem" }, "tls_cert and tls_key"},
		{"key without cert", func(c *Config) { c.Server.TLSKey = "/tmp/key.pem" }, "tls_cert and tls_key"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validTestConfig()
			test.mutate(cfg)

			result := cfg.validateServerConfig()
			if test.expected == "" {
				if result != nil {
					t.Errorf("Expected no error, got '%v'", result)
				}
			} else if result == nil || !strings.Contains(result.Error(), test.expected) {
				t.Errorf("Expected error containing %q, got %v", test.expected, result)
			}
		})
	}
}

func TestValidateLoggingConfig(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected string
	}{
		{"info", "info", ""},
		{"debug", "debug", ""},
		{"empty level", "", fmt.Sprintf(fmtErrEmptyConfigOption, "logging.level")},
		{"unknown level", "verbose", "logging.level"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Logging.Level = test.level

			result := cfg.validateLoggingConfig()
			if test.expected == "" {
				if result != nil {
					t.Errorf("Expected no error, got '%v'", result)
				}
			} else if result == nil || !strings.Contains(result.Error(), test.expected) {
				t.Errorf("Expected error containing %q, got %v", test.expected, result)
			}
		})
	}
}

func TestValidateDatabaseConfig(t *testing.T) {
	tests := []struct {
		name     string
		database *DatabaseConfig
		expected string
	}{
		{"absent section", nil, ""},
		{"valid", &DatabaseConfig{Host: "db", Port: 5432, Name: "hostmon", User: "agent", Timeout: "5s"}, ""},
		{"empty host", &DatabaseConfig{Port: 5432, Name: "hostmon", User: "agent", Timeout: "5s"}, "database.host"},
		{"bad port", &DatabaseConfig{Host: "db", Port: -1, Name: "hostmon", User: "agent", Timeout: "5s"}, "database.port"},
		{"empty name", &DatabaseConfig{Host: "db", Port: 5432, User: "agent", Timeout: "5s"}, "database.name"},
		{"empty user", &DatabaseConfig{Host: "db", Port: 5432, Name: "hostmon", Timeout: "5s"}, "database.user"},
		{"bad timeout", &DatabaseConfig{Host: "db", Port: 5432, Name: "hostmon", User: "agent", Timeout: "soon"}, "database.timeout"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Database = test.database

			result := cfg.validateDatabaseConfig()
			if test.expected == "" {
				if result != nil {
					t.Errorf("Expected no error, got '%v'", result)
				}
			} else if result == nil || !strings.Contains(result.Error(), test.expected) {
				t.Errorf("Expected error containing %q, got %v", test.expected, result)
			}
		})
	}
}

func validMonitor(kind string) MonitorConfig {
	m := MonitorConfig{
		Name:       "m1",
		Kind:       kind,
		Schedule:   "@every 30s",
		StoreLevel: StoreLevelAll,
		Timeout:    "5s",
	}

	switch kind {
	case KindTCP:
		m.Host = "db.internal"
		m.Port = 5432
	case KindHTTP:
		m.URL = "https://example.com/health"
		m.Method = "GET"
	case KindProcess:
		m.Process = "nginx"
	case KindCommand:
		m.Command = []string{"/usr/bin/true"}
	}

	return m
}

func TestValidateMonitorsConfig(t *testing.T) {
	tests := []struct {
		name     string
		monitors []MonitorConfig
		expected string
	}{
		{"no monitors", nil, ""},
		{"valid loadavg", []MonitorConfig{validMonitor(KindLoadAvg)}, ""},
		{"valid tcp", []MonitorConfig{validMonitor(KindTCP)}, ""},
		{"valid http", []MonitorConfig{validMonitor(KindHTTP)}, ""},
		{"valid process", []MonitorConfig{validMonitor(KindProcess)}, ""},
		{"valid command", []MonitorConfig{validMonitor(KindCommand)}, ""},
		{"empty name", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindCPU); m.Name = ""; return m }()}, "monitors[0].name"},
		{"duplicate names", []MonitorConfig{validMonitor(KindCPU), validMonitor(KindMemory)}, "duplicate monitor name"},
		{"unknown kind", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindCPU); m.Kind = "disk"; return m }()}, "unknown monitor kind"},
		{"empty schedule", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindCPU); m.Schedule = ""; return m }()}, "schedule"},
		{"bad store level", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindCPU); m.StoreLevel = "sometimes"; return m }()}, "store_level"},
		{"bad timeout", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindTCP); m.Timeout = "quick"; return m }()}, "timeout"},
		{"tcp without host", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindTCP); m.Host = ""; return m }()}, "host"},
		{"tcp without port", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindTCP); m.Port = 0; return m }()}, "port"},
		{"http without url", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindHTTP); m.URL = ""; return m }()}, "url"},
		{"http with ftp url", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindHTTP); m.URL = "ftp://example.com"; return m }()}, "scheme"},
		{"process without target", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindProcess); m.Process = ""; return m }()}, "process"},
		{"command without argv", []MonitorConfig{func() MonitorConfig { m := validMonitor(KindCommand); m.Command = nil; return m }()}, "command"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Monitors = test.monitors

			result := cfg.validateMonitorsConfig()
			if test.expected == "" {
				if result != nil {
					t.Errorf("Expected no error, got '%v'", result)
				}
			} else if result == nil || !strings.Contains(result.Error(), test.expected) {
				t.Errorf("Expected error containing %q, got %v", test.expected, result)
			}
		})
	}
}

func TestMalformedScheduleIsNotAValidationError(t *testing.T) {
	// Cadence syntax problems are handled at job construction, where the
	// affected monitor is skipped without failing the rest.
	cfg := validTestConfig()
	m := validMonitor(KindCPU)
	m.Schedule = "not a cron expression"
	cfg.Monitors = []MonitorConfig{m}

	if err := cfg.validateMonitorsConfig(); err != nil {
		t.Errorf("Expected no error for unparsed schedule text, got %v", err)
	}
}
