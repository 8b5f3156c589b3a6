// Package coordinator drives the register sweep cycle and owns the published
// snapshot.
package coordinator

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/oskari/Hassio-Parmair/internal/codec"
	"github.com/oskari/Hassio-Parmair/internal/metrics"
	"github.com/oskari/Hassio-Parmair/internal/registers"
)

// Transport is the serialized register access the coordinator reads and
// writes through.
type Transport interface {
	Read(addr uint16) (uint16, error)
	Write(addr uint16, value uint16) error
}

// Summary is the device identity established at setup and fixed for the
// connection's lifetime.
type Summary struct {
	Generation      registers.Generation
	SoftwareVersion float64
	Heater          registers.HeaterType
	Model           string
}

// Coordinator performs full catalog sweeps and exposes the latest snapshot.
type Coordinator struct {
	catalog *registers.Table
	tr      Transport
	summary Summary

	snap     atomic.Pointer[Snapshot]
	sweeping atomic.Bool
	linkDown atomic.Bool

	wakeup    bool
	reconnect func() error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithoutWakeup disables the keep-alive read issued before each sweep.
func WithoutWakeup() Option {
	return func(c *Coordinator) { c.wakeup = false }
}

// WithReconnect installs the hook that re-establishes the transport link
// after a cycle in which every read failed. The hook runs at the start of the
// next sweep; while it keeps failing, cycles are abandoned and the previous
// snapshot stays published.
func WithReconnect(fn func() error) Option {
	return func(c *Coordinator) { c.reconnect = fn }
}

// New builds a coordinator over the catalog selected for the detected
// generation.
func New(catalog *registers.Table, tr Transport, summary Summary, opts ...Option) *Coordinator {
	c := &Coordinator{
		catalog: catalog,
		tr:      tr,
		summary: summary,
		wakeup:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeviceSummary returns the identity established at setup.
func (c *Coordinator) DeviceSummary() Summary { return c.summary }

// Snapshot returns the latest published snapshot, or nil before the first
// sweep completes.
func (c *Coordinator) Snapshot() *Snapshot { return c.snap.Load() }

// Sweep reads every catalog register once and publishes a fresh snapshot.
// Individual read failures mark their key failed-this-cycle and the sweep
// carries on; the snapshot is only published after every key was attempted.
//
// A cycle in which every read fails is treated as a lost connection, not as
// per-register faults: the cycle is abandoned, the previous snapshot stays
// published, and the link is re-established before the next cycle runs.
func (c *Coordinator) Sweep() *Snapshot {
	started := time.Now()

	if c.linkDown.Load() {
		if c.reconnect != nil {
			if err := c.reconnect(); err != nil {
				metrics.ReconnectFailures.Inc()
				log.Printf("coordinator: reconnect failed, keeping previous snapshot: %v", err)
				return c.snap.Load()
			}
			log.Printf("coordinator: link re-established")
		}
		c.linkDown.Store(false)
	}

	if c.wakeup {
		// The device drops into a sluggish state between polls; one
		// throwaway read of the power register wakes it. Failures here
		// are irrelevant.
		if def, err := c.catalog.Lookup(registers.KeyPower); err == nil {
			_, _ = c.tr.Read(def.Address())
		}
	}

	keys := c.catalog.Keys()
	next := &Snapshot{
		At:         started,
		Generation: c.catalog.Generation(),
		Values:     make(map[string]Reading, len(keys)),
	}

	failed := 0
	for _, key := range keys {
		def, err := c.catalog.Lookup(key)
		if err != nil {
			// Keys come from the catalog itself; a miss is a programming
			// error and must not be papered over with a default reading.
			panic(err)
		}
		raw, err := c.tr.Read(def.Address())
		if err != nil {
			next.Values[key] = Reading{Failed: true}
			failed++
			metrics.ReadFailures.Inc()
			// An unreadable register has no current value; scraping the
			// previous cycle's gauge as if it were fresh would lie.
			metrics.RegisterValue.DeleteLabelValues(key)
			metrics.RegisterAbsent.DeleteLabelValues(key)
			continue
		}
		v := codec.Decode(def, raw)
		next.Values[key] = Reading{Value: v}
		if v.Absent {
			metrics.RegisterAbsent.WithLabelValues(key).Set(1)
			metrics.RegisterValue.DeleteLabelValues(key)
		} else {
			metrics.RegisterAbsent.WithLabelValues(key).Set(0)
			metrics.RegisterValue.WithLabelValues(key).Set(v.Number)
		}
	}

	if failed == len(keys) && len(keys) > 0 {
		c.linkDown.Store(true)
		metrics.LinkLosses.Inc()
		log.Printf("coordinator: link lost (%d/%d reads failed), keeping previous snapshot", failed, len(keys))
		return c.snap.Load()
	}

	c.deriveUserStates(next)

	c.snap.Store(next)
	metrics.SweepsTotal.Inc()
	metrics.SweepDuration.Set(time.Since(started).Seconds())
	if failed > 0 {
		log.Printf("coordinator: sweep finished with %d/%d failed reads", failed, len(keys))
	}
	return next
}

// deriveUserStates fills in the home/boost/overpressure readings that 2.xx
// firmware folded into the single user state register. 0=Off 1=Away 2=Home
// 3=Boost 4=Sauna 5=Fireplace.
func (c *Coordinator) deriveUserStates(s *Snapshot) {
	if c.catalog.Generation() != registers.Gen2 {
		return
	}
	state, ok := s.Values[registers.KeyControlState]
	if !ok || state.Failed || state.Value.Absent {
		s.Values[registers.KeyHomeState] = Reading{Failed: true}
		s.Values[registers.KeyBoostState] = Reading{Failed: true}
		s.Values[registers.KeyOverpressureState] = Reading{Failed: true}
		return
	}
	us := int(state.Value.Number)
	s.Values[registers.KeyHomeState] = boolReading(us == registers.UserStateHome)
	s.Values[registers.KeyBoostState] = boolReading(us == registers.UserStateBoost)
	s.Values[registers.KeyOverpressureState] = boolReading(
		us == registers.UserStateSauna || us == registers.UserStateFireplace)
}

func boolReading(b bool) Reading {
	if b {
		return Reading{Value: codec.Number(1)}
	}
	return Reading{Value: codec.Number(0)}
}

// Write encodes value for key and dispatches a single register write. A
// rejected or failed write never touches the current snapshot; the next
// sweep reflects the device's true post-write state.
func (c *Coordinator) Write(key string, value float64) error {
	def, err := c.catalog.Lookup(key)
	if err != nil {
		return err
	}
	raw, err := codec.Encode(def, value)
	if err != nil {
		metrics.WriteFailures.Inc()
		return err
	}
	metrics.WritesTotal.Inc()
	if err := c.tr.Write(def.Address(), raw); err != nil {
		metrics.WriteFailures.Inc()
		return fmt.Errorf("coordinator: write %s: %w", key, err)
	}
	log.Printf("coordinator: wrote %s=%v (raw=%d addr=%d)", key, value, raw, def.Address())
	return nil
}
