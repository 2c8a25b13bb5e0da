// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package toast keeps short-lived per-session status messages. A toast shows
// up on the next rendered page and disappears on its own after a fixed
// duration, or earlier when the user dismisses it.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind selects the toast's visual treatment.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Toast is one queued message.
type Toast struct {
	ID      string
	Kind    Kind
	Message string
	Created time.Time
}

// Queue holds the pending toasts for one session, oldest first. Each entry
// carries its own expiry timer.
type Queue struct {
	mu       sync.Mutex
	entries  []Toast
	timers   map[string]*time.Timer
	duration time.Duration
	stopped  bool
}

// NewQueue creates a queue whose toasts expire after duration.
func NewQueue(duration time.Duration) *Queue {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return &Queue{
		timers:   make(map[string]*time.Timer),
		duration: duration,
	}
}

// Enqueue appends a toast and arms its expiry timer. The assigned id is
// returned so it can be dismissed early.
func (q *Queue) Enqueue(kind Kind, message string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return ""
	}

	id := uuid.NewString()
	q.entries = append(q.entries, Toast{
		ID:      id,
		Kind:    kind,
		Message: message,
		Created: time.Now(),
	})
	q.timers[id] = time.AfterFunc(q.duration, func() {
		q.Dismiss(id)
	})
	return id
}

// Dismiss removes one toast by id. Dismissing an already-expired or unknown
// id is a no-op, so a user click racing the timer is harmless.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.remove(id)
}

func (q *Queue) remove(id string) {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, e := range q.entries {
		if e.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// Snapshot returns the pending toasts in enqueue order.
func (q *Queue) Snapshot() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of pending toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Stop cancels every pending timer and rejects further enqueues.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.entries = nil
}

// Registry maps session tokens to their queues. Queues are created lazily
// and dropped when the session signs out.
type Registry struct {
	mu       sync.Mutex
	queues   map[string]*Queue
	duration time.Duration
}

// NewRegistry creates a registry whose queues use the given toast duration.
func NewRegistry(duration time.Duration) *Registry {
	return &Registry{
		queues:   make(map[string]*Queue),
		duration: duration,
	}
}

// For returns the queue for the given session token, creating it on first
// use. An empty token gets a throwaway queue so anonymous requests cannot
// grow the registry.
func (r *Registry) For(token string) *Queue {
	if token == "" {
		return NewQueue(r.duration)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.queues[token]
	if !ok {
		q = NewQueue(r.duration)
		r.queues[token] = q
	}
	return q
}

// Drop stops and removes the queue for a session token.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	q, ok := r.queues[token]
	delete(r.queues, token)
	r.mu.Unlock()
	if ok {
		q.Stop()
	}
}

// Close stops every queue.
func (r *Registry) Close() {
	r.mu.Lock()
	queues := make([]*Queue, 0, len(r.queues))
	for _, q := range r.queues {
		queues = append(queues, q)
	}
	r.queues = make(map[string]*Queue)
	r.mu.Unlock()
	for _, q := range queues {
		q.Stop()
	}
}
