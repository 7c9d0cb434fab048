package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/kvistad/hostmon/utils"
	"gopkg.in/yaml.v3"
)

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required (use -config)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Secrets can come from the environment instead of the file.
	if config.Database != nil {
		if err := env.Parse(config.Database); err != nil {
			return nil, fmt.Errorf("failed to apply database environment overrides: %w", err)
		}
	}
	if config.Auth != nil {
		if err := env.Parse(config.Auth); err != nil {
			return nil, fmt.Errorf("failed to apply auth environment overrides: %w", err)
		}
	}

	if config.Server.Name == "" {
		config.Server.Name = utils.GetHostname()
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) UnmarshalYAML(unmarshall func(interface{}) error) error {
	type raw Config
	r := raw{
		Server:  DefaultServerConfig,
		Logging: DefaultLoggingConfig,
	}

	if err := unmarshall(&r); err != nil {
		return err
	}

	*c = Config(r)

	return nil
}

func (d *DatabaseConfig) UnmarshalYAML(unmarshall func(interface{}) error) error {
	type raw DatabaseConfig
	r := raw(DefaultDatabaseConfig)

	if err := unmarshall(&r); err != nil {
		return err
	}

	*d = DatabaseConfig(r)

	return nil
}

func (a *AuthConfig) UnmarshalYAML(unmarshall func(interface{}) error) error {
	type raw AuthConfig
	r := raw(DefaultAuthConfig)

	if err := unmarshall(&r); err != nil {
		return err
	}

	*a = AuthConfig(r)

	return nil
}

func (m *MonitorConfig) UnmarshalYAML(unmarshall func(interface{}) error) error {
	type raw MonitorConfig
	r := raw(DefaultMonitorConfig)

	if err := unmarshall(&r); err != nil {
		return err
	}

	*m = MonitorConfig(r)

	return nil
}
