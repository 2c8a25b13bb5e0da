// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the console's periodic maintenance jobs on a cron
// schedule: pruning stale notifications and refreshing the cached service
// health probes.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler handles periodic background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// AddJob registers a named job on the given cron spec. Job panics and errors
// are logged, never propagated; one broken job must not stop the rest.
func (s *Scheduler) AddJob(spec, name string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("scheduled job panicked", "job", name, "panic", rec)
			}
		}()
		if err := job(); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	})
	return err
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
