// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/store"
	"github.com/intravvel/console-go/internal/testutil"
)

func TestPurgeExpiredTokens(t *testing.T) {
	db := testutil.MemoryDB(t)
	s := New(db, testutil.TestLogger())

	user := testutil.CreateUser(t, db, "ops@intravvel.com", "changeme")
	testutil.IssueToken(t, db, user.ID, -time.Minute)
	live := testutil.IssueToken(t, db, user.ID, time.Hour)

	if err := s.purgeExpiredTokens(); err != nil {
		t.Fatalf("purgeExpiredTokens: %v", err)
	}

	q := store.New(db)
	if _, err := q.GetAuthTokenByHash(context.Background(), model.HashToken(live)); err != nil {
		t.Errorf("live token should survive purge: %v", err)
	}
}

func TestTrimEventLog(t *testing.T) {
	db := testutil.MemoryDB(t)
	s := New(db, testutil.TestLogger())
	q := store.New(db)
	ctx := context.Background()

	if err := q.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategorySystem,
		Message:   "ancient",
		CreatedAt: time.Now().Add(-eventRetention - time.Hour),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := q.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategorySystem,
		Message:   "fresh",
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := s.trimEventLog(); err != nil {
		t.Fatalf("trimEventLog: %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 || events[0].Message != "fresh" {
		t.Errorf("remaining events: %+v", events)
	}
}

func TestStartAndStop(t *testing.T) {
	db := testutil.MemoryDB(t)
	s := New(db, testutil.TestLogger())

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
