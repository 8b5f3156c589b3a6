// internal/config/validate.go
package config

import (
	"fmt"
	"net"
	"strconv"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	conn := cfg.Connection

	if conn.Host == "" {
		return fmt.Errorf("connection: host is required")
	}
	if ip := net.ParseIP(conn.Host); ip == nil {
		// Not an IP literal; must at least look like a resolvable name.
		if _, err := strconv.Atoi(conn.Host); err == nil {
			return fmt.Errorf("connection: host %q is not a hostname or IP", conn.Host)
		}
	}

	// Unit id 0 addresses the Parmair controller directly; 1..247 are the
	// standard Modbus range. 248..255 are reserved.
	if conn.UnitID > 247 {
		return fmt.Errorf("connection: unit_id %d outside 0-247", conn.UnitID)
	}

	if conn.TimeoutMs < 0 {
		return fmt.Errorf("connection: timeout_ms must be >= 0")
	}
	if conn.ScanIntervalS < 0 {
		return fmt.Errorf("connection: scan_interval_s must be >= 0")
	}
	if conn.PaceMs < 0 {
		return fmt.Errorf("connection: pace_ms must be >= 0")
	}
	if conn.SettleMs < 0 {
		return fmt.Errorf("connection: settle_ms must be >= 0")
	}

	return nil
}
