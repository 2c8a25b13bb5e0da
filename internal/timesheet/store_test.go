// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package timesheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hrops/hrops-go/internal/model"
)

func TestStoreAddAndEntries(t *testing.T) {
	s := NewStore()
	for _, e := range []model.TimesheetEntry{
		{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 4},
		{WorkDate: "2026-08-26", ProjectName: "Atlas", Hours: 8},
		{WorkDate: "2026-08-25", ProjectName: "Borealis", Hours: 6},
	} {
		if err := s.Add("jdoe", e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	entries := s.Entries("jdoe")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].WorkDate != "2026-08-26" {
		t.Errorf("expected newest entry first, got %s", entries[0].WorkDate)
	}
	if len(s.Entries("other")) != 0 {
		t.Error("entries leaked across users")
	}
}

func TestStoreAddValidation(t *testing.T) {
	s := NewStore()
	cases := []struct {
		name  string
		user  string
		entry model.TimesheetEntry
	}{
		{"no username", "", model.TimesheetEntry{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 4}},
		{"bad date", "jdoe", model.TimesheetEntry{WorkDate: "24/08/2026", ProjectName: "Atlas", Hours: 4}},
		{"zero hours", "jdoe", model.TimesheetEntry{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 0}},
		{"too many hours", "jdoe", model.TimesheetEntry{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 25}},
		{"no project", "jdoe", model.TimesheetEntry{WorkDate: "2026-08-24", Hours: 4}},
	}
	for _, tc := range cases {
		if err := s.Add(tc.user, tc.entry); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
	if len(s.Entries("jdoe")) != 0 {
		t.Error("invalid entries were stored")
	}
}

func TestStoreWeek(t *testing.T) {
	s := NewStore()
	// Monday 2026-08-24 through Sunday 2026-08-30.
	for _, e := range []model.TimesheetEntry{
		{WorkDate: "2026-08-23", ProjectName: "Atlas", Hours: 3}, // previous week
		{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 8},
		{WorkDate: "2026-08-28", ProjectName: "Atlas", Hours: 6},
		{WorkDate: "2026-08-31", ProjectName: "Atlas", Hours: 5}, // next week
	} {
		if err := s.Add("jdoe", e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	day := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) // Wednesday
	entries, total := s.Week("jdoe", day)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in week, got %d", len(entries))
	}
	if entries[0].WorkDate != "2026-08-24" {
		t.Errorf("expected oldest first, got %s", entries[0].WorkDate)
	}
	if total != 14 {
		t.Errorf("expected total 14, got %v", total)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	if err := s.Add("jdoe", model.TimesheetEntry{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 4}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Clear("jdoe")
	if len(s.Entries("jdoe")) != 0 {
		t.Error("Clear left entries behind")
	}
}

func TestExportRoundTrip(t *testing.T) {
	entries := []model.TimesheetEntry{
		{WorkDate: "2026-08-24", ProjectName: "Atlas", Hours: 8, Notes: "API work"},
		{WorkDate: "2026-08-25", ProjectName: "Borealis", Hours: 6.5},
	}

	var buf bytes.Buffer
	if err := Export(&buf, "jdoe", entries); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Timesheet")
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	// Header + 2 entries + totals.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][2] != "Hours" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "Atlas" {
		t.Errorf("unexpected first entry row: %v", rows[1])
	}
	if rows[3][0] != "Total" {
		t.Errorf("unexpected totals row: %v", rows[3])
	}
}
