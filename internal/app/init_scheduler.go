// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"context"
	"fmt"

	"github.com/skursatToklucu/ozanparquet/internal/scheduler"
)

// initScheduler registers the periodic jobs and starts the cron loop.
// Requires initRepositories.
func (app *Application) initScheduler(ctx context.Context, ic *initContext) error {
	sched := scheduler.New(scheduler.DefaultConfig(), app.Logger)

	flush := scheduler.NewViewFlushJob(ic.productViews, ic.products, app.Redis, 0, app.Logger)
	if err := sched.Register(app.Config.Catalog.ViewFlushSchedule, flush); err != nil {
		return fmt.Errorf("failed to register view flush job: %w", err)
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	app.Scheduler = sched
	app.Logger.Info("Scheduler started",
		"jobs", sched.Jobs(),
		"view_flush_schedule", app.Config.Catalog.ViewFlushSchedule,
	)
	return nil
}
