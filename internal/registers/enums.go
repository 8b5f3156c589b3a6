package registers

import "strconv"

// Operating modes for the control state register.
//
// On 1.xx (IV01_CONTROLSTATE_FO) the full timer variants exist; on 2.xx the
// single USERSTATECONTROL_FO register uses the compact encoding below it.
const (
	ModeStop              = 0
	ModeAway              = 1
	ModeHome              = 2
	ModeBoost             = 3
	ModeOverpressure      = 4
	ModeAwayTimer         = 5
	ModeHomeTimer         = 6
	ModeBoostTimer        = 7
	ModeOverpressureTimer = 8
	ModeManual            = 9
)

// User states for USERSTATECONTROL_FO (2.xx only).
const (
	UserStateOff       = 0
	UserStateAway      = 1
	UserStateHome      = 2
	UserStateBoost     = 3
	UserStateSauna     = 4
	UserStateFireplace = 5
)

// Speed control values for IV01_SPEED_FOC.
const (
	SpeedAuto = 0
	SpeedStop = 1
	Speed1    = 2
	Speed2    = 3
	Speed3    = 4
	Speed4    = 5
	Speed5    = 6
)

// Power button states.
const (
	PowerOff          = 0
	PowerShuttingDown = 1
	PowerStarting     = 2
	PowerRunning      = 3
)

// HeaterType is the decoded heater configuration. The raw register encoding
// is generation-specific and reversed between 1.xx and 2.xx, so raw values
// must always go through HeaterTypeForGeneration.
type HeaterType string

const (
	HeaterWater    HeaterType = "water"
	HeaterElectric HeaterType = "electric"
	HeaterNone     HeaterType = "none"
	HeaterUnknown  HeaterType = "unknown"
)

// HeaterTypeForGeneration decodes a raw heater type register value.
//
// 1.xx: 0=Water 1=Electric 2=None. 2.xx: 0=Electric 1=Water 2=None.
func HeaterTypeForGeneration(gen Generation, raw uint16) HeaterType {
	switch gen {
	case Gen2:
		switch raw {
		case 0:
			return HeaterElectric
		case 1:
			return HeaterWater
		case 2:
			return HeaterNone
		}
	default:
		switch raw {
		case 0:
			return HeaterWater
		case 1:
			return HeaterElectric
		case 2:
			return HeaterNone
		}
	}
	return HeaterUnknown
}

// ModelForHardwareType maps the VENT_MACHINE register to a model name.
// 1.xx firmware reports a type code (1 = MAC 80); 2.xx reports the machine
// size directly (80, 100, 150, ...).
func ModelForHardwareType(gen Generation, raw uint16) string {
	if gen == Gen2 {
		if raw == 0 {
			return "MAC"
		}
		return "MAC " + strconv.Itoa(int(raw))
	}
	switch raw {
	case 1:
		return "MAC 80"
	default:
		if raw >= 50 && raw <= 500 {
			return "MAC " + strconv.Itoa(int(raw))
		}
		return "MAC"
	}
}
