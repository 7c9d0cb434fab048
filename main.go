package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kvistad/hostmon/api"
	"github.com/kvistad/hostmon/auth"
	"github.com/kvistad/hostmon/config"
	"github.com/kvistad/hostmon/monitor"
	"github.com/kvistad/hostmon/probe"
	"github.com/kvistad/hostmon/scheduler"
	"github.com/kvistad/hostmon/status"
	"github.com/kvistad/hostmon/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	var (
		configPath    = flag.String("config", "config.yaml", "config file path")
		validateMode  = flag.Bool("validate", false, "validate the config and constructed monitors, then exit")
		generateToken = flag.Bool("generate-api-token", false, "generate an api bearer token")
		tokenSubject  = flag.String("token-subject", "", "subject for the new api token")
		tokenExpiry   = flag.Duration("token-expiry", 720*time.Hour, "token expiry duration")
		verifyToken   = flag.Bool("verify-api-token", false, "verify an api bearer token")
		tokenValue    = flag.String("token", "", "token value")
	)
	flag.Parse()

	// Secrets may live in a .env file next to the binary.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	// Verifies api bearer tokens.
	if *verifyToken {
		verifyAPIToken(configPath, tokenValue)
		return
	}

	// Generates an api bearer token for a specific subject.
	if *generateToken {
		generateAPIToken(configPath, tokenSubject, tokenExpiry)
		return
	}

	// Normal mode: load config and run.
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()}))

	if cfg.Logging.Path != "" && !*validateMode {
		logFile, err := os.OpenFile(cfg.Logging.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}

		defer func(logFile *os.File) {
			if err := logFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}(logFile)

		logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()}))
	}

	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")
		cancel()
	}()

	registry := status.NewRegistry(logger)
	cache := probe.NewCache()
	prober := probe.New(logger)

	deps := monitor.Deps{
		Registry: registry,
		Prober:   prober,
		Cache:    cache,
		Logger:   logger,
	}

	if cfg.Database != nil && !*validateMode {
		gateway, err := store.NewGateway(ctx, cfg.Database, cfg.Server.Name, logger)
		if err != nil {
			logger.Error("failed to connect to database, running without persistence", "error", err)
		} else {
			deps.Gateway = gateway
			defer func() {
				if err := gateway.Close(); err != nil {
					logger.Warn("failed to close database", "error", err)
				}
			}()
		}
	}

	sched := scheduler.New(logger)

	scheduled := 0
	skipped := 0
	for _, monitorCfg := range cfg.Monitors {
		m, err := monitor.Build(monitorCfg, deps)
		if err != nil {
			logger.Error("skipping monitor", "monitor", monitorCfg.Name, "error", err)
			skipped++
			continue
		}

		if _, err := sched.Add(m.Name(), monitorCfg.Schedule, m.Check); err != nil {
			logger.Error("skipping monitor with unschedulable cadence",
				"monitor", m.Name(), "cadence", monitorCfg.Schedule, "error", err)
			skipped++
			continue
		}
		scheduled++
	}

	logger.Info("monitors configured", "scheduled", scheduled, "skipped", skipped)

	if *validateMode {
		fmt.Printf("Configuration valid: %d monitors scheduled, %d skipped\n", scheduled, skipped)
		if skipped > 0 {
			os.Exit(1)
		}
		return
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return sched.Run(groupCtx)
	})

	group.Go(func() error {
		return api.StartServer(groupCtx, cfg, logger, registry, cache, prober)
	})

	if err := group.Wait(); err != nil {
		logger.Error("agent terminated with error", "error", err)
		os.Exit(1)
	}
}

func generateAPIToken(configPath *string, tokenSubject *string, tokenExpiry *time.Duration) {
	if *tokenSubject == "" {
		slog.Error("--token-subject required with --generate-api-token")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth == nil {
		slog.Error("auth is not configured")
		os.Exit(1)
	}

	token, err := auth.GenerateAPIToken(cfg, *tokenSubject, *tokenExpiry)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

func verifyAPIToken(configPath *string, tokenValue *string) {
	if *tokenValue == "" {
		slog.Error("--token required with --verify-api-token")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth == nil {
		slog.Error("auth is not configured")
		os.Exit(1)
	}

	subject, err := auth.ValidateAPIToken(cfg, *tokenValue)
	if err != nil {
		slog.Error("failed to verify token", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Token is valid (subject: %s)\n", subject)
}
