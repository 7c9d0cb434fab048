package api

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP resolves the originating client address. X-Forwarded-For is
// only honored when the direct peer is a trusted proxy.
func GetClientIP(r *http.Request, trustedProxies []string) string {
	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remoteIP = host
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && isTrustedProxy(remoteIP, trustedProxies) {
		clientIP := strings.TrimSpace(strings.Split(xff, ",")[0])
		if clientIP != "" {
			return clientIP
		}
	}

	return remoteIP
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	for _, trusted := range trustedProxies {
		if ip == trusted {
			return true
		}
	}
	return false
}
