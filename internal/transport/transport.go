// Package transport serializes holding register reads and writes against a
// single Parmair unit. The device tolerates exactly one outstanding request
// and desynchronizes its transaction ids when operations arrive back to back,
// so the client owns a single lock, paces consecutive operations, and lets
// the device settle once after each (re)connect.
package transport

import (
	"fmt"
	"sync"
	"time"
)

// Defaults matching observed device behavior.
const (
	// DefaultPace is the minimum delay between consecutive operations.
	DefaultPace = 300 * time.Millisecond
	// DefaultSettle is the one-time delay after (re)connecting before the
	// first operation.
	DefaultSettle = 500 * time.Millisecond
)

// Client serializes register operations through one protocol client using
// the calling convention negotiated by the probe.
type Client struct {
	mu sync.Mutex

	raw    any
	unitID uint8

	pace   time.Duration
	settle time.Duration

	probe       probe
	lastOp      time.Time
	settleUntil time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithPace overrides the minimum inter-operation delay.
func WithPace(d time.Duration) Option {
	return func(c *Client) { c.pace = d }
}

// WithSettle overrides the post-connect settle delay.
func WithSettle(d time.Duration) Option {
	return func(c *Client) { c.settle = d }
}

// New wraps a protocol client. The client's unit-id calling convention is
// negotiated lazily on the first operation.
func New(raw any, unitID uint8, opts ...Option) *Client {
	c := &Client{
		raw:    raw,
		unitID: unitID,
		pace:   DefaultPace,
		settle: DefaultSettle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MarkConnected records that the underlying connection was just
// (re)established; the next operation waits out the settle delay first.
func (c *Client) MarkConnected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleUntil = time.Now().Add(c.settle)
}

// Replace swaps the underlying protocol client, e.g. after a reconnect that
// produced a fresh instance. The cached convention is discarded and
// re-negotiated on the next operation.
func (c *Client) Replace(raw any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raw = raw
	c.probe.reset()
	c.settleUntil = time.Now().Add(c.settle)
}

// reopener is the optional connection-lifecycle surface of a wrapped client.
type reopener interface {
	Open() error
	Close() error
}

// Reconnect tears the wrapped client's connection down and re-establishes it.
// The client instance is unchanged, so the negotiated convention survives;
// only the settle delay is re-armed. Returns an error when the wrapped client
// has no connection lifecycle or the new connection cannot be opened.
func (c *Client) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ro, ok := c.raw.(reopener)
	if !ok {
		return fmt.Errorf("transport: client %T cannot reopen its connection", c.raw)
	}
	_ = ro.Close()
	if err := ro.Open(); err != nil {
		return fmt.Errorf("transport: reconnect: %w", err)
	}
	c.settleUntil = time.Now().Add(c.settle)
	return nil
}

// Read fetches one holding register.
func (c *Client) Read(addr uint16) (uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.waitTurn()
	raw, err := c.probe.readThrough(c.raw, c.unitID, addr)
	c.lastOp = time.Now()
	if err != nil {
		return 0, fmt.Errorf("transport: read register %d: %w", addr, err)
	}
	return raw, nil
}

// Write stores one holding register.
func (c *Client) Write(addr uint16, value uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.waitTurn()
	err := c.probe.writeThrough(c.raw, c.unitID, addr, value)
	c.lastOp = time.Now()
	if err != nil {
		return fmt.Errorf("transport: write register %d: %w", addr, err)
	}
	return nil
}

// Convention reports the negotiated calling convention name, or
// "unresolved" / "exhausted".
func (c *Client) Convention() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.probe.conventionName()
}

// ProbeAttempts reports how many signature trials the probe has performed.
func (c *Client) ProbeAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.probe.attempts
}

// waitTurn enforces the settle and pacing delays. Caller holds c.mu.
func (c *Client) waitTurn() {
	now := time.Now()
	wait := time.Duration(0)
	if until := c.settleUntil.Sub(now); until > wait {
		wait = until
	}
	if !c.lastOp.IsZero() {
		if until := c.lastOp.Add(c.pace).Sub(now); until > wait {
			wait = until
		}
	}
	if wait > 0 {
		time.Sleep(wait)
	}
}
