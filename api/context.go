package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
)

// SystemProber serves the on-demand readings the HTTP API exposes.
type SystemProber interface {
	LoadAvg(ctx context.Context) (probe.LoadAvg, error)
	Memory(ctx context.Context) (probe.Memory, error)
	CPU(ctx context.Context) (probe.CPU, error)
	Processes(ctx context.Context) ([]probe.Process, error)
	ProcessByPID(ctx context.Context, pid int32) (probe.Process, error)
}

type AppContext struct {
	context.Context
	Config   *config.Config
	Logger   *slog.Logger
	Registry *status.Registry
	Cache    *probe.Cache
	Prober   SystemProber
	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

// AppHandler is a handler that takes only AppContext
type AppHandler func(*AppContext)

// AppContextMiddleware injects AppContext into the request context
func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:  r.Context(),
				Config:   baseCtx.Config,
				Logger:   baseCtx.Logger,
				Registry: baseCtx.Registry,
				Cache:    baseCtx.Cache,
				Prober:   baseCtx.Prober,
				Request:  r,
				Response: w,
			}
			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Wrap converts an AppHandler to http.HandlerFunc
func Wrap(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		handler(appCtx)
	}
}

// NewAppContext creates a new AppContext
func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, registry *status.Registry, cache *probe.Cache, prober SystemProber) *AppContext {
	return &AppContext{
		Context:  ctx,
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Cache:    cache,
		Prober:   prober,
	}
}

// GetAppContext retrieves AppContext from request
func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}
	return nil
}

// Methods on AppContext for responses
func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to encode json", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}
