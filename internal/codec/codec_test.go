package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskari/Hassio-Parmair/internal/registers"
)

func TestDecode_SignedBeforeScaling(t *testing.T) {
	def := registers.Definition{Key: "t", Scale: 10, Signed: true}

	// 0xFFCE is -50 in two's complement; with divisor 10 that is -5.0.
	// An unsigned reinterpretation would give 6548.6.
	got := Decode(def, 0xFFCE)
	require.False(t, got.Absent)
	assert.Equal(t, -5.0, got.Number)
}

func TestDecode_Unsigned(t *testing.T) {
	def := registers.Definition{Key: "u", Scale: 1}

	got := Decode(def, 0xFFCE)
	require.False(t, got.Absent)
	assert.Equal(t, 65486.0, got.Number)
}

func TestDecode_ScaleOne(t *testing.T) {
	def := registers.Definition{Key: "n", Scale: 1, Signed: true}

	assert.Equal(t, -1.0, Decode(def, 0xFFFF).Number)
	assert.Equal(t, 210.0, Decode(def, 210).Number)
}

func TestDecode_AbsentSentinel(t *testing.T) {
	cases := []registers.Definition{
		{Key: "a", Scale: 1, Optional: true},
		{Key: "b", Scale: 10, Optional: true},
		{Key: "c", Scale: 10, Signed: true, Optional: true},
		{Key: "d", Scale: 100, Signed: true, Optional: true},
	}
	for _, def := range cases {
		got := Decode(def, AbsentWord)
		assert.True(t, got.Absent, "definition %q must decode 0xFFFF as absent", def.Key)
	}

	// Non-optional registers decode 0xFFFF as a plain word.
	def := registers.Definition{Key: "e", Scale: 1}
	got := Decode(def, AbsentWord)
	require.False(t, got.Absent)
	assert.Equal(t, 65535.0, got.Number)
}

func TestEncode_NotWritable(t *testing.T) {
	def := registers.Definition{Key: "ro", Scale: 1}

	_, err := Encode(def, 1)
	assert.ErrorIs(t, err, ErrNotWritable)
}

func TestEncode_OutOfRange(t *testing.T) {
	signed := registers.Definition{Key: "s", Scale: 10, Signed: true, Writable: true}
	unsigned := registers.Definition{Key: "u", Scale: 1, Writable: true}

	_, err := Encode(signed, 3276.8)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Encode(signed, -3276.9)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Encode(unsigned, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Encode(unsigned, 65536)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncode_Boundaries(t *testing.T) {
	signed := registers.Definition{Key: "s", Scale: 10, Signed: true, Writable: true}

	raw, err := Encode(signed, -3276.8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8000), raw)

	raw, err = Encode(signed, 3276.7)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x7FFF), raw)
}

func TestRoundTrip_WritableRegisters(t *testing.T) {
	defs := []registers.Definition{
		{Key: "setpoint", Scale: 10, Signed: true, Writable: true},
		{Key: "speed", Scale: 1, Writable: true},
		{Key: "limit", Scale: 100, Signed: true, Writable: true},
	}
	for _, def := range defs {
		var values []float64
		switch def.Scale {
		case 1:
			values = []float64{0, 1, 2, 100, 255, 65535}
		case 10:
			values = []float64{-50.0, -5.0, -0.1, 0, 0.1, 21.5, 3000.4}
		case 100:
			values = []float64{-10.25, -0.01, 0, 1.87, 2.15, 300.99}
		}
		for _, v := range values {
			raw, err := Encode(def, v)
			require.NoError(t, err, "%s encode %v", def.Key, v)
			got := Decode(def, raw)
			require.False(t, got.Absent)
			assert.InDelta(t, v, got.Number, 1e-9, "%s round trip %v", def.Key, v)
		}
	}
}
