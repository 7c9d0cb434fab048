package config

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Logging  LoggingConfig   `yaml:"logging"`
	Database *DatabaseConfig `yaml:"database"`
	Auth     *AuthConfig     `yaml:"auth"`
	Monitors []MonitorConfig `yaml:"monitors"`
}

type ServerConfig struct {
	Name           string   `yaml:"name"`
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	TLSCert        string   `yaml:"tls_cert"`
	TLSKey         string   `yaml:"tls_key"`
	CacheMaxAge    string   `yaml:"cache_max_age"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

var DefaultServerConfig = ServerConfig{
	Host:        "127.0.0.1",
	Port:        8080,
	CacheMaxAge: "15s",
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

var DefaultLoggingConfig = LoggingConfig{
	Level: "info",
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOSTMON_DB_HOST"`
	Port     int    `yaml:"port" env:"HOSTMON_DB_PORT"`
	Name     string `yaml:"name" env:"HOSTMON_DB_NAME"`
	User     string `yaml:"user" env:"HOSTMON_DB_USER"`
	Password string `yaml:"password" env:"HOSTMON_DB_PASSWORD"`
	SSLMode  string `yaml:"sslmode"`
	Timeout  string `yaml:"timeout"`
}

var DefaultDatabaseConfig = DatabaseConfig{
	Host:    "127.0.0.1",
	Port:    5432,
	SSLMode: "disable",
	Timeout: "5s",
}

type AuthConfig struct {
	SigningKeyPath string `yaml:"signing_key_path" env:"HOSTMON_SIGNING_KEY_PATH"`
	Issuer         string `yaml:"issuer"`
}

var DefaultAuthConfig = AuthConfig{
	Issuer: "hostmon",
}

type MonitorConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Schedule   string `yaml:"schedule"`
	Store      bool   `yaml:"store"`
	StoreLevel string `yaml:"store_level"`
	Timeout    string `yaml:"timeout"`

	// Soft thresholds. A nil pointer means the sub-check has no ceiling and
	// always passes; zero is a real ceiling.
	MaxLoadAvg1Min  *float64 `yaml:"max_loadavg_1min"`
	MaxLoadAvg5Min  *float64 `yaml:"max_loadavg_5min"`
	MaxLoadAvg10Min *float64 `yaml:"max_loadavg_10min"`
	MaxMemoryUsed   *float64 `yaml:"max_memory_percent"`
	MaxSwapUsed     *float64 `yaml:"max_swap_percent"`
	MaxCPUUsed      *float64 `yaml:"max_cpu_percent"`

	// Reachability targets.
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	URL    string `yaml:"url"`
	Method string `yaml:"method"`

	// Process and command targets.
	Process          string   `yaml:"process"`
	Command          []string `yaml:"command"`
	ExpectedExitCode int      `yaml:"expected_exit_code"`
}

var DefaultMonitorConfig = MonitorConfig{
	StoreLevel: StoreLevelAll,
	Timeout:    "5s",
	Method:     "GET",
}
