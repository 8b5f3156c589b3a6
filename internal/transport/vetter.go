package transport

import (
	"fmt"
	"time"

	"github.com/simonvetter/modbus"
)

// VetterClient adapts github.com/simonvetter/modbus to the shapes the probe
// understands. That library carries the unit id as client state behind
// SetUnitId, so this adapter resolves as the "unit-id-setter" convention.
type VetterClient struct {
	mc *modbus.ModbusClient
}

// DialTCP builds a Modbus TCP client for host:port. The connection is not
// opened yet; call Open before the first operation.
func DialTCP(host string, port uint16, timeout time.Duration) (*VetterClient, error) {
	mc, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     fmt.Sprintf("tcp://%s:%d", host, port),
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: create modbus client: %w", err)
	}
	return &VetterClient{mc: mc}, nil
}

// Open establishes the TCP connection.
func (v *VetterClient) Open() error { return v.mc.Open() }

// Close tears the connection down.
func (v *VetterClient) Close() error { return v.mc.Close() }

// SetUnitId selects the target unit for subsequent operations.
func (v *VetterClient) SetUnitId(id uint8) error { return v.mc.SetUnitId(id) }

// ReadRegister reads one holding register.
func (v *VetterClient) ReadRegister(addr uint16) (uint16, error) {
	return v.mc.ReadRegister(addr, modbus.HOLDING_REGISTER)
}

// WriteRegister writes one holding register.
func (v *VetterClient) WriteRegister(addr uint16, value uint16) error {
	return v.mc.WriteRegister(addr, value)
}
