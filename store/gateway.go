package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/metrics"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/status"
	"github.com/sony/gobreaker"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Gateway owns the agent's single database session. All monitors share one
// Gateway; bun's pool makes the store operations safe to call concurrently.
// Writes run through a circuit breaker so a dead database degrades to fast,
// logged failures instead of a goroutine pileup behind connection timeouts.
type Gateway struct {
	db      *bun.DB
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	server  string
	timeout time.Duration

	insert func(ctx context.Context, model interface{}) error
}

// NewGateway connects, verifies the connection, and bootstraps the schema.
// Callers treat a failure here as "run without persistence", not as fatal.
func NewGateway(ctx context.Context, cfg *config.DatabaseConfig, serverName string, logger *slog.Logger) (*Gateway, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database timeout: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	g := &Gateway{
		db:      db,
		breaker: newBreaker(logger),
		logger:  logger,
		server:  serverName,
		timeout: timeout,
	}
	g.insert = g.insertModel

	if err := g.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("database connected", "host", cfg.Host, "name", cfg.Name)

	return g, nil
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hostmon-db",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("database circuit breaker state changed",
				"from", from.String(),
				"to", to.String())
		},
	})
}

// EnsureSchema creates the measurement tables if they do not exist yet.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	models := []interface{}{
		(*LoadAvgRow)(nil),
		(*MemoryRow)(nil),
		(*CPURow)(nil),
		(*CheckEventRow)(nil),
	}

	for _, model := range models {
		if _, err := g.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	return nil
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) StoreLoadAvg(ctx context.Context, r probe.LoadAvg) error {
	return g.store(ctx, "loadavg", newLoadAvgRow(g.server, r))
}

func (g *Gateway) StoreMemory(ctx context.Context, r probe.Memory) error {
	return g.store(ctx, "memory", newMemoryRow(g.server, r))
}

func (g *Gateway) StoreCPU(ctx context.Context, r probe.CPU) error {
	return g.store(ctx, "cpu", newCPURow(g.server, r))
}

func (g *Gateway) StoreCheckEvent(ctx context.Context, name, kind string, st status.Status) error {
	return g.store(ctx, "check_event", newCheckEventRow(g.server, name, kind, st))
}

func (g *Gateway) store(ctx context.Context, operation string, model interface{}) error {
	storeCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, g.insert(storeCtx, model)
	})

	metrics.RecordStore(operation, err)

	if err != nil {
		return fmt.Errorf("failed to store %s row: %w", operation, err)
	}

	return nil
}

func (g *Gateway) insertModel(ctx context.Context, model interface{}) error {
	_, err := g.db.NewInsert().Model(model).Exec(ctx)
	return err
}
