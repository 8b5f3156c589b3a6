// Package registers holds the per-generation Parmair MAC holding register
// catalogs. Each firmware generation gets its own immutable table; the tables
// are built once at init and never mutated afterwards.
package registers

import (
	"errors"
	"fmt"
)

// Generation identifies a firmware register-map generation.
type Generation string

const (
	// Gen1 covers firmware 1.xx (Modbus spec 1.87).
	Gen1 Generation = "1.x"
	// Gen2 covers firmware 2.xx.
	Gen2 Generation = "2.x"

	// DefaultGeneration is the fallback when detection is inconclusive.
	// Oldest supported map: a Gen1 read plan is harmless on newer firmware,
	// the reverse is not guaranteed.
	DefaultGeneration = Gen1
)

// baseAddress is the device-specific offset added to every register id.
// The vendor documentation numbers registers from zero; the device exposes
// them at 1000 + id.
const baseAddress uint16 = 1000

// Definition describes one holding register.
type Definition struct {
	Key   string
	ID    uint16 // zero-based register id; wire address is baseAddress+ID
	Label string // vendor label from the Modbus specification

	// Scale is the divisor applied to the raw word: raw 210 with Scale 10
	// reads as 21.0. Scale 1 means the register is integer-valued.
	Scale int

	// Signed marks registers whose raw word is two's-complement int16.
	Signed bool

	Writable bool

	// Optional marks registers backed by hardware that may not be
	// installed; such registers report the absent sentinel (0xFFFF).
	Optional bool
}

// Address returns the holding register address on the wire.
func (d Definition) Address() uint16 {
	return baseAddress + d.ID
}

// ErrUnknownKey is returned by Lookup for keys absent from a generation's
// table. Seeing it against live traffic means a programming error, not a
// device condition.
var ErrUnknownKey = errors.New("registers: unknown key")

// Register keys, stable across generations even where the underlying
// address or encoding differs.
const (
	KeyHardwareType         = "hardware_type"
	KeySoftwareVersion      = "software_version"
	KeyPower                = "power"
	KeyControlState         = "control_state"
	KeySpeedControl         = "speed_control"
	KeyFreshAirTemp         = "fresh_air_temp"
	KeySupplyAfterRecovTemp = "supply_after_recovery_temp"
	KeySupplyTemp           = "supply_temp"
	KeyExhaustTemp          = "exhaust_temp"
	KeyWasteTemp            = "waste_temp"
	KeyExhaustTempSetpoint  = "exhaust_temp_setpoint"
	KeySupplyTempSetpoint   = "supply_temp_setpoint"
	KeyHomeSpeed            = "home_speed"
	KeyAwaySpeed            = "away_speed"
	KeyBoostSetting         = "boost_setting"
	KeyHomeState            = "home_state"
	KeyBoostState           = "boost_state"
	KeyBoostTimer           = "boost_timer"
	KeyHumidity             = "humidity"
	KeyCO2                  = "co2"
	KeyAlarmCount           = "alarm_count"
	KeySumAlarm             = "sum_alarm"
	KeyAlarmsState          = "alarms_state"
	KeySummerMode           = "summer_mode"
	KeyTimeProgramEnable    = "time_program_enable"
	KeyHeaterEnable         = "heater_enable"
	KeyAcknowledgeAlarms    = "acknowledge_alarms"
	KeyHeaterType           = "heater_type"
	KeySummerModeTempLimit  = "summer_mode_temp_limit"
	KeyFilterInterval       = "filter_interval"
	KeyHeatRecoveryEff      = "heat_recovery_efficiency"
	KeyOverpressureTimer    = "overpressure_timer"
	KeyDefrostState         = "defrost_state"
	KeySupplyFanSpeed       = "supply_fan_speed"
	KeyExhaustFanSpeed      = "exhaust_fan_speed"
	KeyFilterState          = "filter_state"

	// KeyOverpressureState names the overpressure reading that 2.xx firmware
	// derives from the shared user state register; no register backs it.
	KeyOverpressureState = "overpressure_state"
)

// Table is one generation's immutable register catalog.
type Table struct {
	gen   Generation
	order []string
	defs  map[string]Definition
}

func newTable(gen Generation, defs []Definition) *Table {
	t := &Table{
		gen:   gen,
		order: make([]string, 0, len(defs)),
		defs:  make(map[string]Definition, len(defs)),
	}
	seenAddr := make(map[uint16]string, len(defs))
	for _, d := range defs {
		if _, dup := t.defs[d.Key]; dup {
			panic(fmt.Sprintf("registers: duplicate key %q in generation %s", d.Key, gen))
		}
		if prev, dup := seenAddr[d.ID]; dup {
			panic(fmt.Sprintf("registers: id %d shared by %q and %q in generation %s", d.ID, prev, d.Key, gen))
		}
		seenAddr[d.ID] = d.Key
		t.defs[d.Key] = d
		t.order = append(t.order, d.Key)
	}
	return t
}

// Generation returns the generation this table describes.
func (t *Table) Generation() Generation { return t.gen }

// Lookup returns the definition for key or ErrUnknownKey.
func (t *Table) Lookup(key string) (Definition, error) {
	d, ok := t.defs[key]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q (generation %s)", ErrUnknownKey, key, t.gen)
	}
	return d, nil
}

// Keys returns the catalog keys in sweep order. The returned slice is a
// copy; callers may not reorder the catalog.
func (t *Table) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of registers in the table.
func (t *Table) Len() int { return len(t.order) }

var tables = map[Generation]*Table{
	Gen1: newTable(Gen1, gen1Definitions()),
	Gen2: newTable(Gen2, gen2Definitions()),
}

// ForGeneration returns the catalog for gen, or the default catalog when gen
// is not a known generation.
func ForGeneration(gen Generation) *Table {
	if t, ok := tables[gen]; ok {
		return t
	}
	return tables[DefaultGeneration]
}

// Lookup is a convenience over ForGeneration(gen).Lookup(key).
func Lookup(gen Generation, key string) (Definition, error) {
	return ForGeneration(gen).Lookup(key)
}

// GenerationForVersion maps a decoded software version (e.g. 1.87, 2.15) to
// its register-map generation.
func GenerationForVersion(version float64) Generation {
	if version >= 2.0 {
		return Gen2
	}
	return Gen1
}
