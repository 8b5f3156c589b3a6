// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
	HTTP       HTTPConfig       `yaml:"http"`

	// StateFile persists the last successful firmware detection between
	// restarts. Empty disables persistence.
	StateFile string `yaml:"state_file"`
}

// ---- CONNECTION ----

type ConnectionConfig struct {
	Host   string `yaml:"host"`
	Port   uint16 `yaml:"port"`
	UnitID uint8  `yaml:"unit_id"`

	TimeoutMs     int `yaml:"timeout_ms"`
	ScanIntervalS int `yaml:"scan_interval_s"`
	PaceMs        int `yaml:"pace_ms"`
	SettleMs      int `yaml:"settle_ms"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// Load reads and decodes the YAML config at path. Validation is separate;
// call Validate, then Normalize, on the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
