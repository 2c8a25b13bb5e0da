// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/hrops/hrops-go/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// discardHandler discards all records.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func countEvents(t *testing.T, db *sql.DB, level string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM event_log WHERE level = ?`, level).Scan(&n); err != nil {
		t.Fatalf("counting events: %v", err)
	}
	return n
}

func TestEventLogHandlerMirrorsWarnAndAbove(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Info("routine", "key", "value")
	logger.Warn("remote service slow", "component", "hrclient")
	logger.Error("remote service down", "component", "hrclient", "error", "connection refused")

	if n := countEvents(t, db, EventLevelWarning); n != 1 {
		t.Errorf("warning events = %d, want 1", n)
	}
	if n := countEvents(t, db, EventLevelError); n != 1 {
		t.Errorf("error events = %d, want 1", n)
	}
	if n := countEvents(t, db, EventLevelInfo); n != 0 {
		t.Errorf("info events = %d, want 0 (below threshold)", n)
	}
}

func TestEventLogHandlerCategoryAndMetadata(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Error("login failed", "component", "auth", "username", "jdoe")

	var category, metadata string
	err := db.QueryRow(`SELECT category, metadata FROM event_log LIMIT 1`).Scan(&category, &metadata)
	if err != nil {
		t.Fatalf("reading event: %v", err)
	}
	if category != "auth" {
		t.Errorf("category = %q, want auth", category)
	}
	if metadata == "" || metadata == "{}" {
		t.Error("metadata should carry the remaining attrs")
	}
}

func TestEventLogHandlerCustomLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))

	logger.Info("captured at info threshold")

	if n := countEvents(t, db, EventLevelInfo); n != 1 {
		t.Errorf("info events = %d, want 1", n)
	}
}
