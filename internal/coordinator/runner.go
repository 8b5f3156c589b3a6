package coordinator

import (
	"context"
	"time"

	"github.com/oskari/Hassio-Parmair/internal/metrics"
)

// Run sweeps immediately and then on every tick until ctx is cancelled. If a
// sweep is still in flight when the next tick fires, that tick is skipped:
// at most one cycle is ever outstanding, and skipped cycles are not queued.
func (c *Coordinator) Run(ctx context.Context, interval time.Duration) {
	c.sweepGuarded()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweepGuarded()
		}
	}
}

func (c *Coordinator) sweepGuarded() {
	if !c.sweeping.CompareAndSwap(false, true) {
		metrics.SweepsSkipped.Inc()
		return
	}
	defer c.sweeping.Store(false)
	c.Sweep()
}
