package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kvistad/hostmon/auth"
)

// RequireAuth wraps a handler requiring a valid bearer token.
func RequireAuth(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			appCtx.SetJSONError(http.StatusUnauthorized, "Bearer token required")
			return
		}

		subject, err := auth.ValidateAPIToken(appCtx.Config, token)
		if err != nil {
			appCtx.Logger.Debug("rejected api token", "error", err)
			appCtx.SetJSONError(http.StatusUnauthorized, "Invalid token")
			return
		}

		appCtx.Logger.Debug("authenticated request", "subject", subject)
		handler(appCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LogRequests logs one line per request after it completes.
func LogRequests(logger *slog.Logger, trustedProxies []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Debug("handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"client", GetClientIP(r, trustedProxies),
				"duration", time.Since(started),
			)
		})
	}
}
