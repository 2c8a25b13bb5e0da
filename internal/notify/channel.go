// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	backoffBase = time.Second
	backoffCap  = 60 * time.Second
)

// dialFunc matches websocket.DefaultDialer.DialContext; tests swap it out.
type dialFunc func(ctx context.Context, url string) (wsConn, error)

// wsConn is the slice of *websocket.Conn the channel uses.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	Close() error
}

func defaultDial(ctx context.Context, url string) (wsConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Channel owns the subscription goroutine. It reconnects on failure with
// exponential backoff and never gives up until Close is called.
type Channel struct {
	*history

	url  string
	log  *slog.Logger
	dial dialFunc

	state atomic.Int32

	mu   sync.Mutex
	subs map[int]chan Notification
	next int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewChannel creates a channel for the given ws:// URL keeping at most
// limit entries. Run must be called to start it.
func NewChannel(url string, limit int, log *slog.Logger) *Channel {
	c := &Channel{
		history: newHistory(limit),
		url:     url,
		log:     log.With("component", "notify"),
		dial:    defaultDial,
		subs:    make(map[int]chan Notification),
		done:    make(chan struct{}),
	}
	c.state.Store(int32(StateConnecting))
	return c
}

// State returns the current connection state.
func (c *Channel) State() ChannelState {
	return ChannelState(c.state.Load())
}

// Subscribe returns a channel receiving each notification as it arrives,
// plus a cancel func that must be called when done. Slow subscribers drop
// messages rather than stall the read loop.
func (c *Channel) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 16)
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Channel) publish(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Run connects and keeps reading until ctx is canceled or Close is called.
// It is meant to be started once from main as a goroutine.
func (c *Channel) Run(ctx context.Context) {
	defer close(c.done)

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	backoff := backoffBase
	for {
		if ctx.Err() != nil {
			c.state.Store(int32(StateClosed))
			return
		}

		c.state.Store(int32(StateConnecting))
		conn, err := c.dial(ctx, c.url)
		if err != nil {
			c.state.Store(int32(StateErrored))
			c.log.Warn("notification feed unreachable", "url", c.url, "error", err, "retry_in", backoff)
			if !sleep(ctx, withJitter(backoff)) {
				c.state.Store(int32(StateClosed))
				return
			}
			backoff = min(backoff*2, backoffCap)
			continue
		}

		c.state.Store(int32(StateOpen))
		c.log.Info("notification feed connected", "url", c.url)
		backoff = backoffBase

		c.readLoop(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			c.state.Store(int32(StateClosed))
			return
		}
		c.state.Store(int32(StateErrored))
		c.log.Warn("notification feed dropped", "url", c.url, "retry_in", backoff)
		if !sleep(ctx, withJitter(backoff)) {
			c.state.Store(int32(StateClosed))
			return
		}
		backoff = min(backoff*2, backoffCap)
	}
}

// readLoop consumes frames until the connection breaks or ctx ends. A
// watcher goroutine closes the connection on cancellation so ReadMessage
// unblocks.
func (c *Channel) readLoop(ctx context.Context, conn wsConn) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if n, ok := c.add(string(data), time.Now()); ok {
			c.publish(n)
		}
	}
}

// Close stops the subscription and waits for the goroutine to exit. It may
// only be called after Run has started.
func (c *Channel) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	<-c.done
}

// withJitter spreads retries out so restarts do not thundering-herd the
// leave service.
func withJitter(d time.Duration) time.Duration {
	return d + rand.N(d/4+1)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
