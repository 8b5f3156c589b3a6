// Package detect identifies the firmware generation and hardware fit of a
// Parmair unit at connect time.
package detect

import (
	"log"
	"time"

	"github.com/oskari/Hassio-Parmair/internal/codec"
	"github.com/oskari/Hassio-Parmair/internal/registers"
)

// Reader is the single-register read surface the detector needs.
type Reader interface {
	Read(addr uint16) (uint16, error)
}

// Result is the outcome of one detection run. Defaulted is set when every
// attempt failed and the safe fallback (oldest generation, no heater) is in
// effect.
type Result struct {
	Generation      registers.Generation
	SoftwareVersion float64
	Heater          registers.HeaterType
	Model           string

	// Attempt is the 1-based attempt that succeeded; 0 when Defaulted.
	Attempt   int
	Defaulted bool
}

// Detector runs a bounded number of identification attempts with increasing
// backoff between them.
type Detector struct {
	maxAttempts int
	backoff     time.Duration

	// sleep is swappable so tests do not wait out real backoffs.
	sleep func(time.Duration)
}

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 500 * time.Millisecond
)

// New returns a Detector with the standard 3-attempt schedule.
func New() *Detector {
	return &Detector{
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		sleep:       time.Sleep,
	}
}

// MaxWait returns the worst-case total backoff time of a full run.
func (d *Detector) MaxWait() time.Duration {
	total := time.Duration(0)
	for k := 1; k < d.maxAttempts; k++ {
		total += time.Duration(k) * d.backoff
	}
	return total
}

// Detect reads the software version, heater configuration and hardware type
// registers. Attempts are independent: a failed read ends the attempt, the
// next one starts fresh after the backoff. Detect never fails; on exhaustion
// it returns the documented safe default so setup can proceed with a usable
// catalog.
func (d *Detector) Detect(r Reader) Result {
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if attempt > 1 {
			d.sleep(time.Duration(attempt-1) * d.backoff)
		}
		res, ok := d.attempt(r)
		if !ok {
			continue
		}
		res.Attempt = attempt
		log.Printf("detect: generation=%s sw=%.2f heater=%s model=%q (attempt %d)",
			res.Generation, res.SoftwareVersion, res.Heater, res.Model, attempt)
		return res
	}
	log.Printf("detect: all %d attempts failed, falling back to generation=%s heater=%s",
		d.maxAttempts, registers.DefaultGeneration, registers.HeaterNone)
	return Result{
		Generation: registers.DefaultGeneration,
		Heater:     registers.HeaterNone,
		Model:      "MAC",
		Defaulted:  true,
	}
}

// attempt is one identification pass. The software version read decides the
// generation; the follow-up reads refine the result but cannot fail the
// attempt, they only degrade it to unknown.
func (d *Detector) attempt(r Reader) (Result, bool) {
	swDef, err := registers.Lookup(registers.DefaultGeneration, registers.KeySoftwareVersion)
	if err != nil {
		// Catalog construction guarantees this key; reaching here is a
		// programming error.
		panic(err)
	}
	raw, err := r.Read(swDef.Address())
	if err != nil {
		return Result{}, false
	}
	version := codec.Decode(swDef, raw).Number
	gen := registers.GenerationForVersion(version)

	res := Result{
		Generation:      gen,
		SoftwareVersion: version,
		Heater:          registers.HeaterUnknown,
		Model:           "MAC",
	}

	if def, err := registers.Lookup(gen, registers.KeyHeaterType); err == nil {
		if raw, err := r.Read(def.Address()); err == nil {
			res.Heater = registers.HeaterTypeForGeneration(gen, raw)
		}
	}
	if def, err := registers.Lookup(gen, registers.KeyHardwareType); err == nil {
		if raw, err := r.Read(def.Address()); err == nil {
			res.Model = registers.ModelForHardwareType(gen, raw)
		}
	}
	return res, true
}
