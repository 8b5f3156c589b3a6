package registers

// Register maps per firmware generation. Ids follow the vendor Modbus
// specification numbering (wire address = 1000 + id). Tables are independent:
// a delta in one generation never touches the other.

func gen1Definitions() []Definition {
	return []Definition{
		{Key: KeyHardwareType, ID: 244, Label: "VENT_MACHINE", Scale: 1},
		{Key: KeySoftwareVersion, ID: 18, Label: "MULTI_SW_VER", Scale: 100},
		{Key: KeyPower, ID: 208, Label: "POWER_BTN_FI", Scale: 1, Writable: true},
		{Key: KeyControlState, ID: 185, Label: "IV01_CONTROLSTATE_FO", Scale: 1, Writable: true},
		{Key: KeySpeedControl, ID: 187, Label: "IV01_SPEED_FOC", Scale: 1, Writable: true},
		{Key: KeyFreshAirTemp, ID: 20, Label: "TE01_M", Scale: 10, Signed: true},
		{Key: KeySupplyAfterRecovTemp, ID: 22, Label: "TE05_M", Scale: 10, Signed: true},
		{Key: KeySupplyTemp, ID: 23, Label: "TE10_M", Scale: 10, Signed: true},
		{Key: KeyExhaustTemp, ID: 24, Label: "TE30_M", Scale: 10, Signed: true},
		{Key: KeyWasteTemp, ID: 25, Label: "TE31_M", Scale: 10, Signed: true},
		{Key: KeyExhaustTempSetpoint, ID: 60, Label: "TE30_S", Scale: 10, Signed: true, Writable: true},
		{Key: KeySupplyTempSetpoint, ID: 65, Label: "TE10_S", Scale: 10, Signed: true, Writable: true},
		{Key: KeyHomeSpeed, ID: 104, Label: "HOME_SPEED_S", Scale: 1, Writable: true},
		{Key: KeyAwaySpeed, ID: 105, Label: "AWAY_SPEED_S", Scale: 1, Writable: true},
		{Key: KeyBoostSetting, ID: 117, Label: "BOOST_SETTING_S", Scale: 1, Writable: true},
		{Key: KeyHomeState, ID: 200, Label: "HOME_STATE_FI", Scale: 1},
		{Key: KeyBoostState, ID: 201, Label: "BOOST_STATE_FI", Scale: 1},
		{Key: KeyBoostTimer, ID: 202, Label: "BOOST_TIMER_FM", Scale: 1},
		{Key: KeyHumidity, ID: 180, Label: "MEXX_FM", Scale: 1, Signed: true, Optional: true},
		{Key: KeyCO2, ID: 31, Label: "QE20_M", Scale: 1, Signed: true, Optional: true},
		{Key: KeyAlarmCount, ID: 4, Label: "ALARM_COUNT", Scale: 1},
		{Key: KeySumAlarm, ID: 5, Label: "SUM_ALARM", Scale: 1},
		{Key: KeyAlarmsState, ID: 206, Label: "ALARMS_STATE_FI", Scale: 1},
		{Key: KeySummerMode, ID: 79, Label: "SUMMER_MODE_S", Scale: 1, Writable: true},
		{Key: KeyTimeProgramEnable, ID: 108, Label: "TP_ENABLE_S", Scale: 1, Writable: true},
		{Key: KeyHeaterEnable, ID: 109, Label: "HEATER_ENABLE_S", Scale: 1, Writable: true},
		{Key: KeyAcknowledgeAlarms, ID: 3, Label: "ACK_ALARMS", Scale: 1, Writable: true},
		{Key: KeyHeaterType, ID: 240, Label: "HEAT_RADIATOR_TYPE", Scale: 1, Writable: true},
		{Key: KeySummerModeTempLimit, ID: 78, Label: "SUMMER_MODE_TE01_LIMIT", Scale: 10, Signed: true, Writable: true},
		{Key: KeyFilterInterval, ID: 85, Label: "FILTER_INTERVAL_S", Scale: 1, Writable: true},
		{Key: KeyHeatRecoveryEff, ID: 190, Label: "FG50_EA_M", Scale: 10},
		{Key: KeyOverpressureTimer, ID: 204, Label: "OVERP_TIMER_FM", Scale: 1},
		{Key: KeyDefrostState, ID: 183, Label: "DFRST_FI", Scale: 1},
		{Key: KeySupplyFanSpeed, ID: 40, Label: "TF10_Y", Scale: 10},
		{Key: KeyExhaustFanSpeed, ID: 42, Label: "PF30_Y", Scale: 10},
		// Writing 0 here acknowledges a filter replacement.
		{Key: KeyFilterState, ID: 205, Label: "FILTER_STATE_FI", Scale: 1, Writable: true},
	}
}

// gen2Definitions mirrors the 1.xx map where the device kept the layout and
// diverges where firmware 2.xx moved things:
//   - software version moved to MULTI_SW_VER at id 15
//   - the per-state HOME/BOOST flags were replaced by a single user state
//     control register (USERSTATECONTROL_FO, id 181); home/boost/overpressure
//     readings are derived from it by the coordinator
//   - heater type moved to id 127 and its value encoding is reversed
//     (0=Electric on 2.xx, 0=Water on 1.xx)
func gen2Definitions() []Definition {
	return []Definition{
		{Key: KeyHardwareType, ID: 244, Label: "VENT_MACHINE", Scale: 1},
		{Key: KeySoftwareVersion, ID: 15, Label: "MULTI_SW_VER", Scale: 100},
		{Key: KeyPower, ID: 208, Label: "POWER_BTN_FI", Scale: 1, Writable: true},
		{Key: KeyControlState, ID: 181, Label: "USERSTATECONTROL_FO", Scale: 1, Writable: true},
		{Key: KeySpeedControl, ID: 187, Label: "IV01_SPEED_FOC", Scale: 1, Writable: true},
		{Key: KeyFreshAirTemp, ID: 20, Label: "TE01_M", Scale: 10, Signed: true},
		{Key: KeySupplyAfterRecovTemp, ID: 22, Label: "TE05_M", Scale: 10, Signed: true},
		{Key: KeySupplyTemp, ID: 23, Label: "TE10_M", Scale: 10, Signed: true},
		{Key: KeyExhaustTemp, ID: 24, Label: "TE30_M", Scale: 10, Signed: true},
		{Key: KeyWasteTemp, ID: 25, Label: "TE31_M", Scale: 10, Signed: true},
		{Key: KeyExhaustTempSetpoint, ID: 60, Label: "TE30_S", Scale: 10, Signed: true, Writable: true},
		{Key: KeySupplyTempSetpoint, ID: 65, Label: "TE10_S", Scale: 10, Signed: true, Writable: true},
		{Key: KeyHomeSpeed, ID: 104, Label: "HOME_SPEED_S", Scale: 1, Writable: true},
		{Key: KeyAwaySpeed, ID: 105, Label: "AWAY_SPEED_S", Scale: 1, Writable: true},
		{Key: KeyBoostSetting, ID: 117, Label: "BOOST_SETTING_S", Scale: 1, Writable: true},
		{Key: KeyBoostTimer, ID: 202, Label: "BOOST_TIMER_FM", Scale: 1},
		{Key: KeyHumidity, ID: 180, Label: "MEXX_FM", Scale: 1, Signed: true, Optional: true},
		{Key: KeyCO2, ID: 31, Label: "QE20_M", Scale: 1, Signed: true, Optional: true},
		{Key: KeyAlarmCount, ID: 4, Label: "ALARM_COUNT", Scale: 1},
		{Key: KeySumAlarm, ID: 5, Label: "SUM_ALARM", Scale: 1},
		{Key: KeyAlarmsState, ID: 206, Label: "ALARMS_STATE_FI", Scale: 1},
		{Key: KeySummerMode, ID: 79, Label: "SUMMER_MODE_S", Scale: 1, Writable: true},
		{Key: KeyTimeProgramEnable, ID: 108, Label: "TP_ENABLE_S", Scale: 1, Writable: true},
		{Key: KeyHeaterEnable, ID: 109, Label: "HEATER_ENABLE_S", Scale: 1, Writable: true},
		{Key: KeyAcknowledgeAlarms, ID: 3, Label: "ACK_ALARMS", Scale: 1, Writable: true},
		{Key: KeyHeaterType, ID: 127, Label: "HEAT_RADIATOR_TYPE", Scale: 1, Writable: true},
		{Key: KeySummerModeTempLimit, ID: 78, Label: "SUMMER_MODE_TE01_LIMIT", Scale: 10, Signed: true, Writable: true},
		{Key: KeyFilterInterval, ID: 85, Label: "FILTER_INTERVAL_S", Scale: 1, Writable: true},
		{Key: KeyHeatRecoveryEff, ID: 190, Label: "FG50_EA_M", Scale: 10},
		{Key: KeyOverpressureTimer, ID: 204, Label: "OVERP_TIMER_FM", Scale: 1},
		{Key: KeyDefrostState, ID: 183, Label: "DFRST_FI", Scale: 1},
		{Key: KeySupplyFanSpeed, ID: 40, Label: "TF10_Y", Scale: 10},
		{Key: KeyExhaustFanSpeed, ID: 42, Label: "PF30_Y", Scale: 10},
		{Key: KeyFilterState, ID: 205, Label: "FILTER_STATE_FI", Scale: 1, Writable: true},
	}
}
