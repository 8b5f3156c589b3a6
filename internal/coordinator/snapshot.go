package coordinator

import (
	"time"

	"github.com/oskari/Hassio-Parmair/internal/codec"
	"github.com/oskari/Hassio-Parmair/internal/registers"
)

// Reading is one register's entry in a Snapshot.
type Reading struct {
	// Failed marks a register whose read failed this cycle. Value is
	// meaningless then; the next cycle retries naturally.
	Failed bool
	Value  codec.Value
}

// Snapshot is one sweep's decoded state. It is immutable once published;
// consumers share the same instance until the next sweep replaces it.
type Snapshot struct {
	At         time.Time
	Generation registers.Generation
	Values     map[string]Reading
}

// Get returns the reading for key, with ok=false for keys the snapshot does
// not carry.
func (s *Snapshot) Get(key string) (Reading, bool) {
	if s == nil {
		return Reading{}, false
	}
	r, ok := s.Values[key]
	return r, ok
}

// Number returns the numeric value for key, with ok=false when the key is
// missing, failed this cycle, or absent hardware.
func (s *Snapshot) Number(key string) (float64, bool) {
	r, ok := s.Get(key)
	if !ok || r.Failed || r.Value.Absent {
		return 0, false
	}
	return r.Value.Number, true
}
