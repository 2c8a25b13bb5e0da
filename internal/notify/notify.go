// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify maintains one long-lived WebSocket subscription to the
// leave service's notification feed and keeps a bounded in-memory history of
// what arrived. The browser never opens a socket itself; pages read the
// history and unread count from here on each render.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// ChannelState describes the subscription's connection lifecycle.
type ChannelState int32

const (
	StateConnecting ChannelState = iota
	StateOpen
	StateErrored
	StateClosed
)

func (s ChannelState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateErrored:
		return "errored"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Notification is one received feed entry. Messages arrive as plain text
// frames and are sanitized before they are stored.
type Notification struct {
	ID         string
	Message    string
	ReceivedAt time.Time
	Read       bool
}

// history is a bounded, newest-first notification store with an unread
// counter. It is the part of the channel that pages actually read.
type history struct {
	mu      sync.Mutex
	entries []Notification
	limit   int
	unread  int
	policy  *bluemonday.Policy
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = 200
	}
	return &history{
		limit:  limit,
		policy: bluemonday.StrictPolicy(),
	}
}

// add sanitizes and stores one message, evicting the oldest entry once the
// limit is reached. Blank messages (including ones that sanitize to
// nothing) are dropped.
func (h *history) add(raw string, at time.Time) (Notification, bool) {
	msg := h.policy.Sanitize(raw)
	if msg == "" {
		return Notification{}, false
	}

	n := Notification{
		ID:         uuid.NewString(),
		Message:    msg,
		ReceivedAt: at,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, n)
	if len(h.entries) > h.limit {
		evicted := h.entries[0]
		h.entries = append(h.entries[:0], h.entries[1:]...)
		if !evicted.Read && h.unread > 0 {
			h.unread--
		}
	}
	h.unread++
	return n, true
}

// Notifications returns the stored entries in arrival order, so the panel
// lists the newest entry last.
func (h *history) Notifications() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.entries))
	copy(out, h.entries)
	return out
}

// UnreadCount returns the number of entries not yet marked read.
func (h *history) UnreadCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unread
}

// MarkAllRead flags every stored entry as read.
func (h *history) MarkAllRead() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.entries {
		h.entries[i].Read = true
	}
	h.unread = 0
}

// ClearAll drops the stored entries and resets the unread counter.
func (h *history) ClearAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.unread = 0
}

// Prune drops entries received before cutoff. The scheduler calls this so
// stale notifications do not sit in memory for days.
func (h *history) Prune(cutoff time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.entries[:0]
	removed := 0
	for _, n := range h.entries {
		if n.ReceivedAt.Before(cutoff) {
			removed++
			if !n.Read && h.unread > 0 {
				h.unread--
			}
			continue
		}
		kept = append(kept, n)
	}
	h.entries = kept
	return removed
}
