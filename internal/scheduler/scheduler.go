// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/errors"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// Config holds scheduler configuration
type Config struct {
	// MaxJobDuration bounds a single job run.
	MaxJobDuration time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{MaxJobDuration: 2 * time.Minute}
}

// Job is a named unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name implements Job.
func (j JobFunc) Name() string { return j.JobName }

// Run implements Job.
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

// RunStats records the outcome of the most recent runs of a job.
type RunStats struct {
	Runs      int
	Failures  int
	LastRun   time.Time
	LastError string
}

type entry struct {
	job      Job
	schedule string
	id       cron.EntryID
	stats    RunStats
}

// Scheduler coordinates cron-driven jobs.
type Scheduler struct {
	config *Config
	cron   *cron.Cron
	logger *logger.Logger

	mu      sync.RWMutex
	running bool
	entries map[string]*entry

	// lifecycleCtx is the context passed to Start. Job runs derive their
	// timeouts from it so shutdown cancels them.
	lifecycleCtx context.Context
	wg           sync.WaitGroup
}

// New creates a new scheduler
func New(config *Config, log *logger.Logger) *Scheduler {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}

	// Seconds field enabled, panics recovered
	cronInstance := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Scheduler{
		config:       config,
		cron:         cronInstance,
		logger:       log.Named("scheduler"),
		entries:      make(map[string]*entry),
		lifecycleCtx: context.Background(),
	}
}

// Register adds job on a six-field cron schedule. Names must be unique.
func (s *Scheduler) Register(schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[job.Name()]; ok {
		return errors.Conflict("job already registered: " + job.Name())
	}
	e := &entry{job: job, schedule: schedule}
	id, err := s.cron.AddFunc(schedule, func() { s.run(e) })
	if err != nil {
		return errors.Wrap(err, errors.CodeBadRequest, "invalid cron schedule "+schedule)
	}
	e.id = id
	s.entries[job.Name()] = e
	s.logger.Debug("registered job", "job", job.Name(), "schedule", schedule)
	return nil
}

// ============================================================================
// Lifecycle
// ============================================================================

// Start starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New(errors.CodeConflict, "scheduler already running")
	}
	s.running = true
	s.lifecycleCtx = ctx
	n := len(s.entries)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", n)
	return nil
}

// Stop stops the cron loop and waits for running jobs.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// ============================================================================
// Runs
// ============================================================================

// RunNow runs the named job synchronously, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return errors.NotFound("job")
	}
	return s.execute(ctx, e)
}

// Stats returns run stats keyed by job name.
func (s *Scheduler) Stats() map[string]RunStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]RunStats, len(s.entries))
	for name, e := range s.entries {
		out[name] = e.stats
	}
	return out
}

// Jobs returns registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) run(e *entry) {
	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.RLock()
	ctx := s.lifecycleCtx
	s.mu.RUnlock()

	if err := s.execute(ctx, e); err != nil {
		s.logger.Error("job failed", "job", e.job.Name(), "error", err)
	}
}

func (s *Scheduler) execute(parent context.Context, e *entry) error {
	ctx, cancel := context.WithTimeout(parent, s.config.MaxJobDuration)
	defer cancel()

	started := time.Now()
	err := e.job.Run(ctx)

	s.mu.Lock()
	e.stats.Runs++
	e.stats.LastRun = started
	e.stats.LastError = ""
	if err != nil {
		e.stats.Failures++
		e.stats.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("job %s: %w", e.job.Name(), err)
	}
	s.logger.Debug("job completed", "job", e.job.Name(), "duration", time.Since(started))
	return nil
}
