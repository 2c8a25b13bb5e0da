// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestHistoryEvictsOldest(t *testing.T) {
	h := newHistory(3)
	base := time.Now()
	for i := 0; i < 5; i++ {
		h.add(fmt.Sprintf("message %d", i), base.Add(time.Duration(i)*time.Second))
	}

	got := h.Notifications()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Arrival order survives eviction: oldest of the kept entries first.
	if got[0].Message != "message 2" || got[2].Message != "message 4" {
		t.Errorf("unexpected order: %q .. %q", got[0].Message, got[2].Message)
	}
	if h.UnreadCount() != 3 {
		t.Errorf("UnreadCount = %d, want 3 after eviction", h.UnreadCount())
	}
}

func TestHistoryKeepsArrivalOrder(t *testing.T) {
	h := newHistory(10)
	now := time.Now()
	for _, msg := range []string{"first", "second", "third"} {
		h.add(msg, now)
	}

	got := h.Notifications()
	// The panel appends newest last, so arrival order must be preserved.
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Message != want {
			t.Errorf("entry %d = %q, want %q", i, got[i].Message, want)
		}
	}
}

func TestHistoryMarkAllRead(t *testing.T) {
	h := newHistory(10)
	h.add("one", time.Now())
	h.add("two", time.Now())
	if h.UnreadCount() != 2 {
		t.Fatalf("UnreadCount = %d, want 2", h.UnreadCount())
	}

	h.MarkAllRead()
	if h.UnreadCount() != 0 {
		t.Errorf("UnreadCount = %d after MarkAllRead", h.UnreadCount())
	}
	for _, n := range h.Notifications() {
		if !n.Read {
			t.Errorf("entry %q still unread", n.Message)
		}
	}
}

func TestHistoryClearAll(t *testing.T) {
	h := newHistory(10)
	h.add("one", time.Now())
	h.ClearAll()
	if len(h.Notifications()) != 0 || h.UnreadCount() != 0 {
		t.Error("ClearAll left state behind")
	}
}

func TestHistorySanitizesMarkup(t *testing.T) {
	h := newHistory(10)
	if _, ok := h.add(`<script>alert(1)</script>leave approved`, time.Now()); !ok {
		t.Fatal("message was dropped")
	}
	got := h.Notifications()[0].Message
	if got != "leave approved" {
		t.Errorf("Message = %q", got)
	}

	if _, ok := h.add(`<img src=x>`, time.Now()); ok {
		t.Error("markup-only message should be dropped")
	}
}

func TestHistoryPrune(t *testing.T) {
	h := newHistory(10)
	now := time.Now()
	h.add("old", now.Add(-2*time.Hour))
	h.add("fresh", now)
	h.MarkAllRead()
	h.add("fresh unread", now)

	removed := h.Prune(now.Add(-time.Hour))
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if got := h.Notifications(); len(got) != 2 || got[1].Message != "fresh" {
		t.Errorf("unexpected survivors %+v", got)
	}
	if h.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d, want 1", h.UnreadCount())
	}
}

// scriptConn feeds fixed frames then fails.
type scriptConn struct {
	frames []string
	i      int
}

func (c *scriptConn) ReadMessage() (int, []byte, error) {
	if c.i >= len(c.frames) {
		return 0, nil, errors.New("connection reset")
	}
	f := c.frames[c.i]
	c.i++
	return 1, []byte(f), nil
}

func (c *scriptConn) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChannelReceivesAndReconnects(t *testing.T) {
	conns := make(chan wsConn, 2)
	conns <- &scriptConn{frames: []string{"first"}}
	conns <- &scriptConn{frames: []string{"second"}}

	c := NewChannel("ws://test/leaveNotification", 10, discardLogger())
	c.dial = func(ctx context.Context, url string) (wsConn, error) {
		select {
		case conn := <-conns:
			return conn, nil
		default:
			<-ctx.Done()
			return nil, ctx.Err()
		}
	}

	sub, cancel := c.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	go c.Run(ctx)

	var got []string
	timeout := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case n := <-sub:
			got = append(got, n.Message)
		case <-timeout:
			t.Fatalf("received %v before timing out", got)
		}
	}
	if got[0] != "first" || got[1] != "second" {
		t.Errorf("messages = %v", got)
	}

	stop()
	c.Close()
	if c.State() != StateClosed {
		t.Errorf("State = %v after Close", c.State())
	}
}

func TestChannelErroredWhileUnreachable(t *testing.T) {
	c := NewChannel("ws://test/leaveNotification", 10, discardLogger())
	c.dial = func(ctx context.Context, url string) (wsConn, error) {
		return nil, errors.New("connection refused")
	}

	ctx, stop := context.WithCancel(context.Background())
	go c.Run(ctx)

	deadline := time.After(5 * time.Second)
	for c.State() != StateErrored {
		select {
		case <-deadline:
			t.Fatalf("State = %v, never reached errored", c.State())
		case <-time.After(10 * time.Millisecond):
		}
	}

	stop()
	c.Close()
}

func TestSubscribeCancelIsIdempotent(t *testing.T) {
	c := NewChannel("ws://test", 10, discardLogger())
	_, cancel := c.Subscribe()
	cancel()
	cancel()
}
