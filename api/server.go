package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler assembles the full API surface. When auth is configured every
// endpoint except health, metrics and the key set requires a bearer token.
func NewHandler(appCtx *AppContext) http.Handler {
	mux := http.NewServeMux()

	protect := Wrap
	if appCtx.Config.Auth != nil {
		protect = RequireAuth
	}

	mux.HandleFunc("GET /api/health", Wrap(handleHealthGET))
	mux.HandleFunc("GET /api/monitor/status", protect(handleMonitorStatusGET))
	mux.HandleFunc("GET /api/loadavg/current", protect(handleLoadAvgGET))
	mux.HandleFunc("GET /api/meminfo/current", protect(handleMemInfoGET))
	mux.HandleFunc("GET /api/cpuinfo/current", protect(handleCPUInfoGET))
	mux.HandleFunc("GET /api/processes", protect(handleProcessesGET))
	mux.HandleFunc("GET /api/processes/{pid}", protect(handleProcessGET))
	mux.Handle("GET /metrics", promhttp.Handler())

	if appCtx.Config.Auth != nil {
		mux.HandleFunc("GET /jwks.json", Wrap(handleJWKSPublicKeyGET))
	}

	logRequests := LogRequests(appCtx.Logger, appCtx.Config.Server.TrustedProxies)

	return logRequests(AppContextMiddleware(appCtx)(mux))
}

// StartServer runs the HTTP API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, registry *status.Registry, cache *probe.Cache, prober SystemProber) error {
	appCtx := NewAppContext(ctx, cfg, logger, registry, cache, prober)
	handler := NewHandler(appCtx)

	address := cfg.Server.Addr()

	server := &http.Server{
		Addr:    address,
		Handler: handler,
	}

	logger.Info("Listening on address", "addr", address)

	done := make(chan error, 1)

	go func() {
		var err error
		if cfg.Server.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}

	return <-done
}
