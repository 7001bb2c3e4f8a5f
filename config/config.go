// Package config provides the run configuration of the msm toolchain and
// builds machines and drivers from it.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one program run.
type Config struct {
	// Trace enables per-instruction trace records.
	Trace bool `yaml:"trace"`
	// MaxSteps stops execution after this many instructions. Zero means no
	// limit.
	MaxSteps uint64 `yaml:"max_steps"`
	// Timed runs the machine under the simulation engine.
	Timed bool `yaml:"timed"`
	// FreqMHz is the clock of the timed driver.
	FreqMHz float64 `yaml:"freq_mhz"`
	// Output is where PRINT writes: "stdout", "stderr" or a file path.
	Output string `yaml:"output"`
	// DumpState prints the machine state after the run.
	DumpState bool `yaml:"dump_state"`
	// LogJSON switches log records to JSON.
	LogJSON bool `yaml:"log_json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		FreqMHz: 1000,
		Output:  "stdout",
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values of the configuration.
func (c Config) Validate() error {
	if c.FreqMHz <= 0 {
		return fmt.Errorf("invalid config: freq_mhz must be positive, got %v", c.FreqMHz)
	}
	if c.Output == "" {
		return fmt.Errorf("invalid config: output must not be empty")
	}
	return nil
}

// OpenOutput returns the writer PRINT should use and a function that
// releases it.
func (c Config) OpenOutput() (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch c.Output {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output: %w", err)
	}
	return f, f.Close, nil
}
