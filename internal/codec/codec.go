// Package codec converts between raw 16-bit register words and scaled
// engineering values. It is pure: no IO, no state.
package codec

import (
	"errors"
	"fmt"

	"github.com/oskari/Hassio-Parmair/internal/registers"
)

// AbsentWord is the sentinel an optional register reports when the backing
// hardware is not installed.
const AbsentWord uint16 = 0xFFFF

var (
	// ErrNotWritable is returned by Encode for read-only registers.
	ErrNotWritable = errors.New("codec: register is not writable")
	// ErrOutOfRange is returned by Encode when the scaled value does not
	// fit the register's signed or unsigned 16-bit width.
	ErrOutOfRange = errors.New("codec: value out of register range")
)

// Value is one decoded register reading.
type Value struct {
	// Absent is true when an optional register reported the absent
	// sentinel; Number is meaningless in that case.
	Absent bool
	Number float64
}

// Absent is the decoded "hardware not installed" marker.
func Absent() Value { return Value{Absent: true} }

// Number wraps a numeric reading.
func Number(v float64) Value { return Value{Number: v} }

// Decode interprets a raw register word according to def.
//
// The sentinel check runs first: an optional register reading 0xFFFF is
// absent no matter how the word would otherwise decode. Sign reinterpretation
// happens strictly before scaling, so a signed word 0xFFCE with scale 10
// decodes to -5.0 and never to 6553.5-ish garbage.
func Decode(def registers.Definition, raw uint16) Value {
	if def.Optional && raw == AbsentWord {
		return Absent()
	}
	var n int32
	if def.Signed {
		n = int32(int16(raw))
	} else {
		n = int32(raw)
	}
	if def.Scale <= 1 {
		return Number(float64(n))
	}
	return Number(float64(n) / float64(def.Scale))
}

// Encode converts an engineering value back to the raw word for def.
func Encode(def registers.Definition, value float64) (uint16, error) {
	if !def.Writable {
		return 0, fmt.Errorf("%w: %s", ErrNotWritable, def.Key)
	}
	scaled := value
	if def.Scale > 1 {
		scaled = value * float64(def.Scale)
	}
	// Round half away from zero, matching the device's own display rounding.
	var n int64
	if scaled >= 0 {
		n = int64(scaled + 0.5)
	} else {
		n = int64(scaled - 0.5)
	}
	if def.Signed {
		if n < -32768 || n > 32767 {
			return 0, fmt.Errorf("%w: %s=%v (raw %d)", ErrOutOfRange, def.Key, value, n)
		}
		return uint16(int16(n)), nil
	}
	if n < 0 || n > 65535 {
		return 0, fmt.Errorf("%w: %s=%v (raw %d)", ErrOutOfRange, def.Key, value, n)
	}
	return uint16(n), nil
}
