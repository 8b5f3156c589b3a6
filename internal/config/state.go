// internal/config/state.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DetectionHint is the last successful firmware detection, persisted across
// restarts. It is a faster-path hint for reconnects, never a substitute for
// re-detection: when a fresh detection disagrees, the fresh result wins and
// the hint is rewritten.
type DetectionHint struct {
	Generation      string    `yaml:"generation"`
	SoftwareVersion float64   `yaml:"software_version"`
	Heater          string    `yaml:"heater"`
	Model           string    `yaml:"model"`
	DetectedAt      time.Time `yaml:"detected_at"`
}

// LoadHint reads the persisted hint. A missing file is not an error; it
// returns (nil, nil).
func LoadHint(path string) (*DetectionHint, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read state %s: %w", path, err)
	}
	var hint DetectionHint
	if err := yaml.Unmarshal(raw, &hint); err != nil {
		return nil, fmt.Errorf("config: parse state %s: %w", path, err)
	}
	return &hint, nil
}

// SaveHint writes the hint atomically (write-then-rename).
func SaveHint(path string, hint DetectionHint) error {
	if path == "" {
		return nil
	}
	raw, err := yaml.Marshal(hint)
	if err != nil {
		return fmt.Errorf("config: encode state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("config: write state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("config: rename state %s: %w", path, err)
	}
	return nil
}
