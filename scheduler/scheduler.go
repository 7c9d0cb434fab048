// Package scheduler runs recurring monitor checks on cron cadences.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Task is one scheduled unit of work. It receives the scheduler's run
// context, which is cancelled on shutdown.
type Task func(ctx context.Context)

// Scheduler owns a single cron runner. Each monitor gets one recurring
// entry; a cadence that fails to parse is reported to the caller and never
// reaches the runner.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.RWMutex
	baseCtx context.Context
	jobs    map[uuid.UUID]cron.EntryID
}

func New(logger *slog.Logger) *Scheduler {
	cronLogger := &cronLogAdapter{logger: logger}

	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.Recover(cronLogger)),
			cron.WithLogger(cronLogger),
		),
		logger: logger,
		jobs:   make(map[uuid.UUID]cron.EntryID),
	}
}

// Add registers a recurring task. The cadence accepts five-field cron
// expressions, an optional leading seconds field and descriptors like
// "@every 30s".
func (s *Scheduler) Add(name, cadence string, task Task) (uuid.UUID, error) {
	entryID, err := s.cron.AddFunc(cadence, func() {
		task(s.runContext())
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to schedule %q: %w", name, err)
	}

	id := uuid.New()

	s.mu.Lock()
	s.jobs[id] = entryID
	s.mu.Unlock()

	s.logger.Debug("scheduled recurring task", "task", name, "cadence", cadence)

	return id, nil
}

// Remove drops a previously added task.
func (s *Scheduler) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.jobs[id]
	if !ok {
		return
	}

	s.cron.Remove(entryID)
	delete(s.jobs, id)
}

// Jobs reports how many tasks are currently registered.
func (s *Scheduler) Jobs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

func (s *Scheduler) runContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.baseCtx == nil {
		return context.Background()
	}
	return s.baseCtx
}

// Start launches the runner without blocking. Tasks added afterwards are
// picked up on their next cadence.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", s.Jobs())
}

// Run starts the runner and blocks until ctx is cancelled, then waits for
// in-flight tasks to drain.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start(ctx)

	<-ctx.Done()

	drained := s.cron.Stop()
	select {
	case <-drained.Done():
		s.logger.Info("scheduler stopped")
	case <-time.After(30 * time.Second):
		s.logger.Warn("scheduler stopped with tasks still running")
	}

	return nil
}
