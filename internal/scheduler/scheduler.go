// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs: purging expired
// bearer tokens and trimming the event log.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/intravvel/console-go/internal/store"
)

// eventRetention is how long event log entries are kept.
const eventRetention = 90 * 24 * time.Hour

// Scheduler handles periodic maintenance tasks.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
// Tokens are purged hourly; the event log is trimmed once a day.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", func() {
		if err := s.purgeExpiredTokens(); err != nil {
			s.logger.Error("failed to purge expired tokens", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("@daily", func() {
		if err := s.trimEventLog(); err != nil {
			s.logger.Error("failed to trim event log", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeExpiredTokens removes expired and revoked bearer tokens.
func (s *Scheduler) purgeExpiredTokens() error {
	deleted, err := store.New(s.db).DeleteExpiredAuthTokens(context.Background(), time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("purged expired tokens", "count", deleted)
	}
	return nil
}

// trimEventLog removes event log entries past the retention window.
func (s *Scheduler) trimEventLog() error {
	cutoff := time.Now().Add(-eventRetention)
	deleted, err := store.New(s.db).DeleteEventsBefore(context.Background(), cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("trimmed event log", "count", deleted, "cutoff", cutoff)
	}
	return nil
}
