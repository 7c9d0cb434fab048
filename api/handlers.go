package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/kvistad/hostmon/auth"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/utils"
)

const defaultCacheMaxAge = 15 * time.Second

func cacheMaxAge(ctx *AppContext) time.Duration {
	maxAge, err := time.ParseDuration(ctx.Config.Server.CacheMaxAge)
	if err != nil {
		return defaultCacheMaxAge
	}
	return maxAge
}

// handleHealthGET reports agent liveness.
func handleHealthGET(ctx *AppContext) {
	ctx.SetJSONStatus(http.StatusOK, "ok")
}

// handleMonitorStatusGET returns the latest outcome of every monitor,
// sorted by name.
func handleMonitorStatusGET(ctx *AppContext) {
	snapshot := ctx.Registry.Snapshot()

	response := make([]MonitorStatusResponse, 0, len(snapshot))
	for _, entry := range snapshot {
		response = append(response, newMonitorStatusResponse(entry))
	}

	sort.Slice(response, func(i, j int) bool {
		return response[i].Name < response[j].Name
	})

	ctx.WriteJSON(http.StatusOK, response)
}

// handleLoadAvgGET returns the most recent load average reading. A missing
// or stale cache entry triggers a fresh probe.
func handleLoadAvgGET(ctx *AppContext) {
	reading, ok := ctx.Cache.LoadAvg()
	if !ok || time.Since(reading.CollectedAt) > cacheMaxAge(ctx) {
		fresh, err := ctx.Prober.LoadAvg(ctx)
		if err != nil {
			ctx.Logger.Error("failed to read load average", "error", err)
			ctx.SetJSONError(http.StatusInternalServerError, "Failed to read load average")
			return
		}
		ctx.Cache.SetLoadAvg(fresh)
		reading = fresh
	}

	ctx.WriteJSON(http.StatusOK, newLoadAvgResponse(reading))
}

// handleMemInfoGET returns the most recent memory reading.
func handleMemInfoGET(ctx *AppContext) {
	reading, ok := ctx.Cache.Memory()
	if !ok || time.Since(reading.CollectedAt) > cacheMaxAge(ctx) {
		fresh, err := ctx.Prober.Memory(ctx)
		if err != nil {
			ctx.Logger.Error("failed to read memory usage", "error", err)
			ctx.SetJSONError(http.StatusInternalServerError, "Failed to read memory usage")
			return
		}
		ctx.Cache.SetMemory(fresh)
		reading = fresh
	}

	ctx.WriteJSON(http.StatusOK, newMemoryResponse(reading))
}

// handleCPUInfoGET returns the most recent CPU reading.
func handleCPUInfoGET(ctx *AppContext) {
	reading, ok := ctx.Cache.CPU()
	if !ok || time.Since(reading.CollectedAt) > cacheMaxAge(ctx) {
		fresh, err := ctx.Prober.CPU(ctx)
		if err != nil {
			ctx.Logger.Error("failed to read CPU usage", "error", err)
			ctx.SetJSONError(http.StatusInternalServerError, "Failed to read CPU usage")
			return
		}
		ctx.Cache.SetCPU(fresh)
		reading = fresh
	}

	ctx.WriteJSON(http.StatusOK, newCPUResponse(reading))
}

// handleProcessesGET lists the processes currently running on the host.
func handleProcessesGET(ctx *AppContext) {
	procs, err := ctx.Prober.Processes(ctx)
	if err != nil {
		ctx.Logger.Error("failed to list processes", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to list processes")
		return
	}

	response := make([]ProcessResponse, 0, len(procs))
	for _, proc := range procs {
		response = append(response, newProcessResponse(proc))
	}

	sort.Slice(response, func(i, j int) bool {
		return response[i].PID < response[j].PID
	})

	ctx.WriteJSON(http.StatusOK, response)
}

// handleProcessGET returns one process by pid.
func handleProcessGET(ctx *AppContext) {
	pid, err := strconv.ParseInt(ctx.Request.PathValue("pid"), 10, 32)
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid pid")
		return
	}

	proc, err := ctx.Prober.ProcessByPID(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, probe.ErrProcessNotFound) {
			ctx.SetJSONError(http.StatusNotFound, "Process not found")
			return
		}
		ctx.Logger.Error("failed to read process", "pid", pid, "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to read process")
		return
	}

	ctx.WriteJSON(http.StatusOK, newProcessResponse(proc))
}

// handleJWKSPublicKeyGET publishes the token verification key set.
func handleJWKSPublicKeyGET(ctx *AppContext) {
	key, err := auth.LoadSigningKey(ctx.Config)
	if err != nil {
		ctx.Logger.Error("failed to load signing key", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Internal server error")
		return
	}

	publicKey := key.Public()

	jwk := jose.JSONWebKey{
		Key:       publicKey,
		KeyID:     utils.GenerateKeyID(publicKey),
		Algorithm: utils.GetAlgorithmFromKey(publicKey),
		Use:       "sig",
	}

	jwks := jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{jwk},
	}

	ctx.Response.Header().Set("Cache-Control", "public, max-age=3600")
	ctx.WriteJSON(http.StatusOK, jwks)
}
