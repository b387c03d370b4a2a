// Package config loads simulator run settings from a TOML file, in
// the same nested-struct-with-toml-tags shape as the teacher pack's
// arm_emulator config package (config/config.go in the
// lookbusy1344-arm_emulator source). The simulator itself (pkg/sim)
// takes these as plain constructor arguments; this package exists
// purely so cmd/rv32run can offer a config file instead of a wall of
// flags.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings a host front-end may want to tune without
// recompiling, per spec.md section 5's configurable limits.
type Config struct {
	Execution struct {
		MemorySize      int    `toml:"memory_size"`
		MaxInstructions uint64 `toml:"max_instructions"`
		MaxSteps        int    `toml:"max_steps"`
		EnableTrace     bool   `toml:"enable_trace"`
	} `toml:"execution"`

	Display struct {
		NumberFormat string `toml:"number_format"` // hex, dec
		LogDepth     int    `toml:"log_depth"`
	} `toml:"display"`
}

// DefaultConfig returns a Config populated with spec.md section 5's
// default limits.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MemorySize = 1 << 20
	cfg.Execution.MaxInstructions = 10_000
	cfg.Execution.MaxSteps = 1_000
	cfg.Execution.EnableTrace = false
	cfg.Display.NumberFormat = "hex"
	cfg.Display.LogDepth = 10
	return cfg
}

// Load reads and decodes the TOML file at path, overlaying it onto
// DefaultConfig. A missing file is not an error: it yields the
// defaults, matching the teacher config package's LoadFrom behavior.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save encodes c as TOML to path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	return nil
}
