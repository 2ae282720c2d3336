// Package config loads the optional .mipscc.yml defaults file described
// in SPEC_FULL.md §10.3, grounded on raymyers-ralph-cc-go's use of
// gopkg.in/yaml.v3 for its own CLI config. A missing file is not an
// error; flags passed on the command line always win over it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Mode mirrors the driver's mutually exclusive output modes (§6 "Driver
// surface"). Only the two modes the core actually implements can be set
// as a config default; the front-end-only modes are flag-only.
type Mode string

const (
	ModeIR      Mode = "ir"
	ModeCompile Mode = "compile"
)

// Config holds the subset of driver behavior worth defaulting from a
// project file instead of repeating on every invocation.
type Config struct {
	// DefaultMode selects --ir vs --compile/-S when neither flag is given.
	DefaultMode Mode `yaml:"default_mode"`

	// PIC controls whether emitted calls are wrapped in
	// ".option pic0"/".option pic2" (spec §4.5 step 8). Defaults to true;
	// a project targeting a linker that doesn't understand .option can
	// turn it off.
	PIC *bool `yaml:"pic"`

	// TargetCPU is written as a leading assembly comment
	// ("# target: <TargetCPU>") when non-empty; purely cosmetic.
	TargetCPU string `yaml:"target_cpu"`
}

// Default returns the configuration used when no .mipscc.yml exists.
func Default() *Config {
	pic := true
	return &Config{DefaultMode: ModeCompile, PIC: &pic}
}

// Load reads path (".mipscc.yml" by convention) and merges it over
// Default(). A missing file yields Default() with no error; any other
// read or parse failure is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.PIC == nil {
		pic := true
		cfg.PIC = &pic
	}
	return cfg, nil
}

// UsePIC reports the effective pic0/pic2-wrapping setting.
func (c *Config) UsePIC() bool {
	if c == nil || c.PIC == nil {
		return true
	}
	return *c.PIC
}
