package config

import (
	"fmt"
	"net/url"
	"time"
)

type Validator interface {
	validateServerConfig() error
	validateLoggingConfig() error
	validateDatabaseConfig() error
	validateMonitorsConfig() error
}

func validateConfig(config Validator) error {
	if err := config.validateServerConfig(); err != nil {
		return err
	}

	if err := config.validateLoggingConfig(); err != nil {
		return err
	}

	if err := config.validateDatabaseConfig(); err != nil {
		return err
	}

	if err := config.validateMonitorsConfig(); err != nil {
		return err
	}

	return nil
}

var knownLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var knownMonitorKinds = map[string]struct{}{
	KindLoadAvg: {},
	KindMemory:  {},
	KindCPU:     {},
	KindTCP:     {},
	KindHTTP:    {},
	KindProcess: {},
	KindCommand: {},
}

var knownStoreLevels = map[string]struct{}{
	StoreLevelNone:   {},
	StoreLevelErrors: {},
	StoreLevelAll:    {},
}

func (c *Config) validateServerConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf(fmtErrInvalidConfigOption, "server.port", "must be in the range 1-65535")
	}

	if c.Server.CacheMaxAge != "" {
		if _, err := time.ParseDuration(c.Server.CacheMaxAge); err != nil {
			return fmt.Errorf(fmtErrInvalidConfigOption, "server.cache_max_age", err)
		}
	}

	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return fmt.Errorf(fmtErrInvalidConfigOption, "server.tls_cert", "tls_cert and tls_key must be set together")
	}

	return nil
}

func (c *Config) validateLoggingConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if c.Logging.Level == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "logging.level")
	}

	if _, ok := knownLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf(fmtErrInvalidConfigOption, "logging.level", "must be one of debug, info, warn, error")
	}

	return nil
}

func (c *Config) validateDatabaseConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	// The database section is optional; the agent runs without persistence.
	if c.Database == nil {
		return nil
	}

	if c.Database.Host == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "database.host")
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf(fmtErrInvalidConfigOption, "database.port", "must be in the range 1-65535")
	}

	if c.Database.Name == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "database.name")
	}

	if c.Database.User == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "database.user")
	}

	if _, err := time.ParseDuration(c.Database.Timeout); err != nil {
		return fmt.Errorf(fmtErrInvalidConfigOption, "database.timeout", err)
	}

	return nil
}

func (c *Config) validateMonitorsConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	seen := make(map[string]struct{}, len(c.Monitors))

	for i, m := range c.Monitors {
		if m.Name == "" {
			return fmt.Errorf(fmtErrEmptyConfigOption, fmt.Sprintf("monitors[%d].name", i))
		}

		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf(fmtErrInvalidConfigOption, fmt.Sprintf("monitors[%d].name", i), fmt.Sprintf("duplicate monitor name %q", m.Name))
		}
		seen[m.Name] = struct{}{}

		if err := validateMonitor(m); err != nil {
			return fmt.Errorf("monitor %q: %w", m.Name, err)
		}
	}

	return nil
}

// validateMonitor checks the static shape of one monitor entry. Cadence
// expressions are deliberately not parsed here: a malformed schedule is a
// per-monitor construction failure, not a fatal config error.
func validateMonitor(m MonitorConfig) error {
	if _, ok := knownMonitorKinds[m.Kind]; !ok {
		return fmt.Errorf(fmtErrInvalidConfigOption, "kind", fmt.Sprintf("unknown monitor kind %q", m.Kind))
	}

	if m.Schedule == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "schedule")
	}

	if _, ok := knownStoreLevels[m.StoreLevel]; !ok {
		return fmt.Errorf(fmtErrInvalidConfigOption, "store_level", "must be one of none, errors, all")
	}

	if m.Timeout != "" {
		if _, err := time.ParseDuration(m.Timeout); err != nil {
			return fmt.Errorf(fmtErrInvalidConfigOption, "timeout", err)
		}
	}

	switch m.Kind {
	case KindTCP:
		if m.Host == "" {
			return fmt.Errorf(fmtErrEmptyConfigOption, "host")
		}
		if m.Port <= 0 || m.Port > 65535 {
			return fmt.Errorf(fmtErrInvalidConfigOption, "port", "must be in the range 1-65535")
		}
	case KindHTTP:
		if m.URL == "" {
			return fmt.Errorf(fmtErrEmptyConfigOption, "url")
		}
		parsed, err := url.Parse(m.URL)
		if err != nil {
			return fmt.Errorf(fmtErrInvalidConfigOption, "url", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf(fmtErrInvalidConfigOption, "url", "scheme must be http or https")
		}
		if m.Method == "" {
			return fmt.Errorf(fmtErrEmptyConfigOption, "method")
		}
	case KindProcess:
		if m.Process == "" {
			return fmt.Errorf(fmtErrEmptyConfigOption, "process")
		}
	case KindCommand:
		if len(m.Command) == 0 {
			return fmt.Errorf(fmtErrEmptyConfigOption, "command")
		}
	}

	return nil
}
