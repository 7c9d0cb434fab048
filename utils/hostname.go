package utils

import (
	"log/slog"
	"os"
)

// GetHostname resolves the name this agent reports itself as. An explicit
// HOSTMON_SERVER_NAME wins over the environment hostname, which wins over
// the kernel hostname.
func GetHostname() string {
	if name := os.Getenv("HOSTMON_SERVER_NAME"); name != "" {
		return name
	}

	if name := os.Getenv("HOSTNAME"); name != "" {
		return name
	}

	hostname, err := os.Hostname()
	if err != nil {
		slog.Warn("failed to resolve hostname", "error", err)
		return "unknown"
	}

	return hostname
}
