// internal/config/normalize.go
package config

import "log"

// Defaults applied by Normalize.
const (
	DefaultPort          uint16 = 502
	DefaultUnitID        uint8  = 0
	DefaultTimeoutMs            = 5000
	DefaultScanIntervalS        = 30
	DefaultPaceMs               = 300
	DefaultSettleMs             = 500
	DefaultHTTPListen           = ":9090"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	conn := &cfg.Connection

	if conn.Port == 0 {
		conn.Port = DefaultPort
	}
	if conn.TimeoutMs == 0 {
		conn.TimeoutMs = DefaultTimeoutMs
	}
	if conn.ScanIntervalS == 0 {
		conn.ScanIntervalS = DefaultScanIntervalS
	}
	if conn.PaceMs == 0 {
		conn.PaceMs = DefaultPaceMs
	}
	if conn.SettleMs == 0 {
		conn.SettleMs = DefaultSettleMs
	}

	// Descriptors written by very old releases defaulted unit_id to 1,
	// but most controllers answer on unit 0. The value stays as the
	// operator set it; the warning is there for descriptors nobody ever
	// touched.
	if conn.UnitID == 1 {
		log.Printf("config: unit_id is 1; most Parmair controllers answer on unit 0, set unit_id: 0 if polling times out")
	}

	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = DefaultHTTPListen
	}
}
