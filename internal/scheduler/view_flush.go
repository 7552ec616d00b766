// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
)

// ViewFlushJobName is the registered name of the view count flush.
const ViewFlushJobName = "product-view-flush"

// ViewBuffer holds pending view increments.
type ViewBuffer interface {
	Drain(ctx context.Context) (map[string]int64, error)
	Restore(ctx context.Context, counts map[string]int64) error
}

// ViewSink persists view increments.
type ViewSink interface {
	AddViewCounts(ctx context.Context, counts map[uuid.UUID]int64) error
}

// Locker hands out the cluster-wide flush lock.
type Locker interface {
	AcquireLock(ctx context.Context, resource string, ttl time.Duration) (*redisrepo.Lock, error)
}

// ViewFlushJob moves buffered product views from Redis into PostgreSQL.
// Only one replica flushes at a time.
type ViewFlushJob struct {
	buffer  ViewBuffer
	sink    ViewSink
	locker  Locker
	lockTTL time.Duration
	logger  *logger.Logger
}

// NewViewFlushJob creates the flush job.
func NewViewFlushJob(buffer ViewBuffer, sink ViewSink, locker Locker, lockTTL time.Duration, log *logger.Logger) *ViewFlushJob {
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ViewFlushJob{
		buffer:  buffer,
		sink:    sink,
		locker:  locker,
		lockTTL: lockTTL,
		logger:  log.Named("view-flush"),
	}
}

// Name implements Job.
func (j *ViewFlushJob) Name() string { return ViewFlushJobName }

// Run drains the buffer and writes the counts. On a write failure the
// drained counts go back into the buffer.
func (j *ViewFlushJob) Run(ctx context.Context) error {
	lock, err := j.locker.AcquireLock(ctx, ViewFlushJobName, j.lockTTL)
	if err != nil {
		return err
	}
	if lock == nil {
		j.logger.Debug("flush held by another instance")
		return nil
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			j.logger.Warn("failed to release flush lock", "error", err)
		}
	}()

	raw, err := j.buffer.Drain(ctx)
	if err != nil {
		return fmt.Errorf("drain views: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	counts := make(map[uuid.UUID]int64, len(raw))
	for key, n := range raw {
		id, err := uuid.Parse(key)
		if err != nil || n <= 0 {
			j.logger.Warn("dropping bad view entry", "key", key, "count", n)
			continue
		}
		counts[id] += n
	}
	if len(counts) == 0 {
		return nil
	}

	if err := j.sink.AddViewCounts(ctx, counts); err != nil {
		if rerr := j.buffer.Restore(context.WithoutCancel(ctx), raw); rerr != nil {
			j.logger.Error("failed to restore view counts", "error", rerr, "entries", len(raw))
		}
		return fmt.Errorf("persist views: %w", err)
	}
	j.logger.Info("flushed product views", "products", len(counts))
	return nil
}
