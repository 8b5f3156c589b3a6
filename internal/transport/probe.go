package transport

import (
	"errors"
)

// The Modbus client libraries this gateway has been run against disagree on
// how the target unit id is supplied: newer ones take it per call, older
// ones expose SetUnitId or SetSlave on the client, and the oldest bake it in
// at construction. The probe trials each shape against the live device, in
// priority order, and caches the first that the client honors.

// ErrIncompatibleClient is returned once every known convention has been
// rejected at the signature level. It indicates the wrong client library is
// loaded, not a device fault, and is never retried automatically.
var ErrIncompatibleClient = errors.New("transport: protocol client accepts no known unit-id convention")

// ErrConventionUnsupported can be returned by a client to reject a calling
// convention it structurally matches but does not honor. It is treated like
// a signature rejection: the probe moves on to the next convention.
var ErrConventionUnsupported = errors.New("transport: unit-id convention not supported by client")

// Candidate client shapes, most modern first.

type deviceIDClient interface {
	ReadHoldingRegister(deviceID uint8, addr uint16) (uint16, error)
	WriteHoldingRegister(deviceID uint8, addr uint16, value uint16) error
}

type unitIDSetterClient interface {
	SetUnitId(id uint8) error
	ReadRegister(addr uint16) (uint16, error)
	WriteRegister(addr uint16, value uint16) error
}

type slaveSetterClient interface {
	SetSlave(id byte)
	ReadHoldingRegisters(addr, quantity uint16) ([]uint16, error)
	WriteSingleRegister(addr, value uint16) error
}

type fixedUnitClient interface {
	ReadHoldingRegisters(addr, quantity uint16) ([]uint16, error)
	WriteSingleRegister(addr, value uint16) error
}

// convention is one named calling convention. read and write report
// honored=false when the client does not structurally match the shape; an
// honored call that fails with a device-level error still resolves the probe.
type convention struct {
	name  string
	read  func(client any, unit uint8, addr uint16) (raw uint16, honored bool, err error)
	write func(client any, unit uint8, addr uint16, value uint16) (honored bool, err error)
}

var conventions = []convention{
	{
		name: "device-id",
		read: func(client any, unit uint8, addr uint16) (uint16, bool, error) {
			c, ok := client.(deviceIDClient)
			if !ok {
				return 0, false, nil
			}
			raw, err := c.ReadHoldingRegister(unit, addr)
			return raw, true, err
		},
		write: func(client any, unit uint8, addr uint16, value uint16) (bool, error) {
			c, ok := client.(deviceIDClient)
			if !ok {
				return false, nil
			}
			return true, c.WriteHoldingRegister(unit, addr, value)
		},
	},
	{
		name: "unit-id-setter",
		read: func(client any, unit uint8, addr uint16) (uint16, bool, error) {
			c, ok := client.(unitIDSetterClient)
			if !ok {
				return 0, false, nil
			}
			if err := c.SetUnitId(unit); err != nil {
				// A failing setter is a signature-level rejection.
				return 0, false, nil
			}
			raw, err := c.ReadRegister(addr)
			return raw, true, err
		},
		write: func(client any, unit uint8, addr uint16, value uint16) (bool, error) {
			c, ok := client.(unitIDSetterClient)
			if !ok {
				return false, nil
			}
			if err := c.SetUnitId(unit); err != nil {
				return false, nil
			}
			return true, c.WriteRegister(addr, value)
		},
	},
	{
		name: "slave-setter",
		read: func(client any, unit uint8, addr uint16) (uint16, bool, error) {
			c, ok := client.(slaveSetterClient)
			if !ok {
				return 0, false, nil
			}
			c.SetSlave(unit)
			regs, err := c.ReadHoldingRegisters(addr, 1)
			if err != nil {
				return 0, true, err
			}
			return firstRegister(regs)
		},
		write: func(client any, unit uint8, addr uint16, value uint16) (bool, error) {
			c, ok := client.(slaveSetterClient)
			if !ok {
				return false, nil
			}
			c.SetSlave(unit)
			return true, c.WriteSingleRegister(addr, value)
		},
	},
	{
		name: "fixed-unit",
		read: func(client any, _ uint8, addr uint16) (uint16, bool, error) {
			c, ok := client.(fixedUnitClient)
			if !ok {
				return 0, false, nil
			}
			regs, err := c.ReadHoldingRegisters(addr, 1)
			if err != nil {
				return 0, true, err
			}
			return firstRegister(regs)
		},
		write: func(client any, _ uint8, addr uint16, value uint16) (bool, error) {
			c, ok := client.(fixedUnitClient)
			if !ok {
				return false, nil
			}
			return true, c.WriteSingleRegister(addr, value)
		},
	},
}

func firstRegister(regs []uint16) (uint16, bool, error) {
	if len(regs) < 1 {
		return 0, true, errors.New("transport: empty register response")
	}
	return regs[0], true, nil
}

// probe tracks the convention negotiation for one client instance.
type probe struct {
	resolved  *convention
	exhausted bool
	attempts  int // signature trials performed, cumulative
}

func (p *probe) reset() {
	p.resolved = nil
	p.exhausted = false
}

// readThrough performs a read with the resolved convention, resolving it
// first if needed.
func (p *probe) readThrough(client any, unit uint8, addr uint16) (uint16, error) {
	if conv := p.resolved; conv != nil {
		raw, honored, err := conv.read(client, unit, addr)
		if !honored {
			// Client instance changed shape under us; force a re-probe.
			p.reset()
			return p.readThrough(client, unit, addr)
		}
		return raw, err
	}
	if p.exhausted {
		return 0, ErrIncompatibleClient
	}
	for i := range conventions {
		conv := &conventions[i]
		p.attempts++
		raw, honored, err := conv.read(client, unit, addr)
		if !honored || errors.Is(err, ErrConventionUnsupported) {
			continue
		}
		p.resolved = conv
		return raw, err
	}
	p.exhausted = true
	return 0, ErrIncompatibleClient
}

// writeThrough mirrors readThrough for single register writes.
func (p *probe) writeThrough(client any, unit uint8, addr uint16, value uint16) error {
	if conv := p.resolved; conv != nil {
		honored, err := conv.write(client, unit, addr, value)
		if !honored {
			p.reset()
			return p.writeThrough(client, unit, addr, value)
		}
		return err
	}
	if p.exhausted {
		return ErrIncompatibleClient
	}
	for i := range conventions {
		conv := &conventions[i]
		p.attempts++
		honored, err := conv.write(client, unit, addr, value)
		if !honored || errors.Is(err, ErrConventionUnsupported) {
			continue
		}
		p.resolved = conv
		return err
	}
	p.exhausted = true
	return ErrIncompatibleClient
}

func (p *probe) conventionName() string {
	if p.resolved == nil {
		if p.exhausted {
			return "exhausted"
		}
		return "unresolved"
	}
	return p.resolved.name
}
