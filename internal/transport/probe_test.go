package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modern per-call client
type fakeDeviceID struct {
	raw   uint16
	err   error
	reads int
	units []uint8
}

func (f *fakeDeviceID) ReadHoldingRegister(unit uint8, addr uint16) (uint16, error) {
	f.reads++
	f.units = append(f.units, unit)
	return f.raw, f.err
}

func (f *fakeDeviceID) WriteHoldingRegister(unit uint8, addr uint16, value uint16) error {
	f.units = append(f.units, unit)
	return f.err
}

// simonvetter-style client
type fakeUnitSetter struct {
	raw    uint16
	unitID uint8
	setErr error
	reads  int
	writes int
}

func (f *fakeUnitSetter) SetUnitId(id uint8) error {
	f.unitID = id
	return f.setErr
}

func (f *fakeUnitSetter) ReadRegister(addr uint16) (uint16, error) {
	f.reads++
	return f.raw, nil
}

func (f *fakeUnitSetter) WriteRegister(addr uint16, value uint16) error {
	f.writes++
	return nil
}

// grid-x-style client
type fakeSlaveSetter struct {
	slave byte
	raw   uint16
	reads int
}

func (f *fakeSlaveSetter) SetSlave(id byte) { f.slave = id }

func (f *fakeSlaveSetter) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	f.reads++
	return []uint16{f.raw}, nil
}

func (f *fakeSlaveSetter) WriteSingleRegister(addr, value uint16) error { return nil }

// goburrow-style client, unit id fixed at construction
type fakeFixedUnit struct {
	raw   uint16
	reads int
}

func (f *fakeFixedUnit) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	f.reads++
	return []uint16{f.raw}, nil
}

func (f *fakeFixedUnit) WriteSingleRegister(addr, value uint16) error { return nil }

// client that structurally matches device-id but rejects the convention, and
// also supports the fixed-unit fallback
type fakeRejectsDeviceID struct {
	fakeFixedUnit
}

func (f *fakeRejectsDeviceID) ReadHoldingRegister(unit uint8, addr uint16) (uint16, error) {
	return 0, ErrConventionUnsupported
}

func (f *fakeRejectsDeviceID) WriteHoldingRegister(unit uint8, addr uint16, value uint16) error {
	return ErrConventionUnsupported
}

func newTestClient(raw any, unit uint8) *Client {
	return New(raw, unit, WithPace(0), WithSettle(0))
}

func TestProbe_ResolvesMostModernFirst(t *testing.T) {
	fake := &fakeDeviceID{raw: 42}
	c := newTestClient(fake, 7)

	raw, err := c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, uint16(42), raw)
	assert.Equal(t, "device-id", c.Convention())
	assert.Equal(t, []uint8{7}, fake.units)
}

func TestProbe_FallsBackThroughOrder(t *testing.T) {
	fake := &fakeUnitSetter{raw: 11}
	c := newTestClient(fake, 3)

	raw, err := c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, uint16(11), raw)
	assert.Equal(t, "unit-id-setter", c.Convention())
	assert.Equal(t, uint8(3), fake.unitID)

	slave := &fakeSlaveSetter{raw: 12}
	c = newTestClient(slave, 4)
	raw, err = c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, uint16(12), raw)
	assert.Equal(t, "slave-setter", c.Convention())
	assert.Equal(t, byte(4), slave.slave)

	fixed := &fakeFixedUnit{raw: 13}
	c = newTestClient(fixed, 5)
	raw, err = c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, uint16(13), raw)
	assert.Equal(t, "fixed-unit", c.Convention())
}

func TestProbe_ProtocolErrorStillResolves(t *testing.T) {
	// The convention was honored; only the requested register was bad.
	// That must resolve the probe, not advance it.
	protoErr := errors.New("modbus exception: illegal data address")
	fake := &fakeDeviceID{err: protoErr}
	c := newTestClient(fake, 0)

	_, err := c.Read(9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, protoErr)
	assert.Equal(t, "device-id", c.Convention())

	// Subsequent operations reuse the resolved convention.
	fake.err = nil
	_, err = c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.reads)
}

func TestProbe_ConventionUnsupportedAdvances(t *testing.T) {
	fake := &fakeRejectsDeviceID{fakeFixedUnit{raw: 99}}
	c := newTestClient(fake, 0)

	raw, err := c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, uint16(99), raw)
	assert.Equal(t, "fixed-unit", c.Convention())
}

func TestProbe_Exhausted(t *testing.T) {
	c := newTestClient(struct{}{}, 0)

	_, err := c.Read(1023)
	assert.ErrorIs(t, err, ErrIncompatibleClient)
	assert.Equal(t, "exhausted", c.Convention())

	// Exhaustion is terminal; no re-probing on later calls.
	attempts := c.ProbeAttempts()
	_, err = c.Read(1023)
	assert.ErrorIs(t, err, ErrIncompatibleClient)
	err = c.Write(1023, 1)
	assert.ErrorIs(t, err, ErrIncompatibleClient)
	assert.Equal(t, attempts, c.ProbeAttempts())
}

func TestProbe_NoReprobeAfterResolution(t *testing.T) {
	fake := &fakeUnitSetter{}
	c := newTestClient(fake, 0)

	_, err := c.Read(1023)
	require.NoError(t, err)
	attempts := c.ProbeAttempts()

	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			_, err = c.Read(1023)
		} else {
			err = c.Write(1023, uint16(i))
		}
		require.NoError(t, err)
	}
	assert.Equal(t, attempts, c.ProbeAttempts(), "resolved probe must not trial signatures again")
	assert.Equal(t, 501, fake.reads)
	assert.Equal(t, 500, fake.writes)
}

func TestProbe_ReplaceResets(t *testing.T) {
	c := newTestClient(&fakeUnitSetter{}, 0)
	_, err := c.Read(1023)
	require.NoError(t, err)
	require.Equal(t, "unit-id-setter", c.Convention())

	c.Replace(&fakeDeviceID{})
	assert.Equal(t, "unresolved", c.Convention())

	_, err = c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, "device-id", c.Convention())
}

func TestProbe_SetterErrorIsSignatureRejection(t *testing.T) {
	// SetUnitId failing means the client does not honor the convention.
	fake := &struct {
		fakeUnitSetter
		fakeFixedUnit
	}{fakeUnitSetter{setErr: errors.New("no such unit accessor")}, fakeFixedUnit{raw: 5}}
	c := newTestClient(fake, 0)

	raw, err := c.Read(1023)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), raw)
	assert.Equal(t, "fixed-unit", c.Convention())
}
