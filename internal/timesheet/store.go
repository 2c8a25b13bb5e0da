// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package timesheet keeps per-user work log entries for the timesheet page.
// The remote HR services have no timesheet endpoint, so entries live in
// process memory and exist to be reviewed and exported, not archived.
package timesheet

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hrops/hrops-go/internal/model"
)

// maxEntriesPerUser bounds one user's log so the store cannot grow without
// limit; the oldest entries are evicted first.
const maxEntriesPerUser = 500

// Store holds timesheet entries keyed by username.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]model.TimesheetEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string][]model.TimesheetEntry)}
}

// Add validates and appends one entry for the user.
func (s *Store) Add(username string, e model.TimesheetEntry) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := time.Parse("2006-01-02", e.WorkDate); err != nil {
		return fmt.Errorf("work date must be YYYY-MM-DD: %w", err)
	}
	if e.Hours <= 0 || e.Hours > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	if e.ProjectName == "" {
		return fmt.Errorf("project is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.entries[username], e)
	if len(list) > maxEntriesPerUser {
		list = list[len(list)-maxEntriesPerUser:]
	}
	s.entries[username] = list
	return nil
}

// Entries returns the user's entries sorted by work date, newest first.
func (s *Store) Entries(username string) []model.TimesheetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TimesheetEntry, len(s.entries[username]))
	copy(out, s.entries[username])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WorkDate > out[j].WorkDate
	})
	return out
}

// Week returns the user's entries for the ISO week containing day, oldest
// first, plus the total hours.
func (s *Store) Week(username string, day time.Time) ([]model.TimesheetEntry, float64) {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	start := day.AddDate(0, 0, 1-weekday).Format("2006-01-02")
	end := day.AddDate(0, 0, 7-weekday).Format("2006-01-02")

	var out []model.TimesheetEntry
	var total float64
	for _, e := range s.Entries(username) {
		if e.WorkDate >= start && e.WorkDate <= end {
			out = append(out, e)
			total += e.Hours
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WorkDate < out[j].WorkDate
	})
	return out, total
}

// Clear removes all entries for the user.
func (s *Store) Clear(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, username)
}
