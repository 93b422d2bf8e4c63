// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/intravvel/console-go/internal/model"
	"github.com/intravvel/console-go/internal/store"
	"github.com/intravvel/console-go/internal/testutil"
)

func testLogger(t *testing.T) (*slog.Logger, *store.Queries) {
	t.Helper()
	db := testutil.MemoryDB(t)
	inner := slog.NewTextHandler(io.Discard, nil)
	return slog.New(NewEventLogHandler(inner, db)), store.New(db)
}

func TestWarnAndErrorAreRecorded(t *testing.T) {
	logger, q := testLogger(t)

	logger.Warn("service update failed", "id", "abc")
	logger.Error("database unavailable")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	byMsg := map[string]model.Event{}
	for _, e := range events {
		byMsg[e.Message] = e
	}
	if e := byMsg["service update failed"]; e.Level != model.EventLevelWarning {
		t.Errorf("warn level = %q", e.Level)
	}
	if e := byMsg["database unavailable"]; e.Level != model.EventLevelError {
		t.Errorf("error level = %q", e.Level)
	}
}

func TestInfoIsNotRecorded(t *testing.T) {
	logger, q := testLogger(t)

	logger.Info("routine startup")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("info record should not reach the event log, got %d events", len(events))
	}
}

func TestCategoryExtraction(t *testing.T) {
	logger, q := testLogger(t)

	logger.Warn("something odd", "category", model.EventCategoryMail)
	logger.Warn("login attempt rejected")
	logger.Warn("disk almost full")

	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	byMsg := map[string]string{}
	for _, e := range events {
		byMsg[e.Message] = e.Category
	}
	if byMsg["something odd"] != model.EventCategoryMail {
		t.Errorf("explicit category attr not honored: %q", byMsg["something odd"])
	}
	if byMsg["login attempt rejected"] != model.EventCategoryAuth {
		t.Errorf("inferred category = %q, want auth", byMsg["login attempt rejected"])
	}
	if byMsg["disk almost full"] != model.EventCategorySystem {
		t.Errorf("fallback category = %q, want system", byMsg["disk almost full"])
	}
}

func TestMetadataSerialization(t *testing.T) {
	logger, q := testLogger(t)

	logger.Warn("content upsert rejected", "section", "hero", "detail", `bad "quote"`)

	events, err := q.ListRecentEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	meta := events[0].Metadata
	for _, want := range []string{`"section":"hero"`, `\"quote\"`} {
		if !strings.Contains(meta, want) {
			t.Errorf("metadata %q missing %q", meta, want)
		}
	}
}
