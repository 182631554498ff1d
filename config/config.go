// Package config loads and saves toolchain configuration, mirroring the
// teacher emulator's config.Config: grouped sections, spec-compliant
// defaults, and graceful fallback when no file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of the assembler/VM/verifier pipeline plus
// the CLI-facing display preferences the teacher also carries.
type Config struct {
	Execution struct {
		MaxCycles          uint64  `toml:"max_cycles"`
		DivergenceStackDepth int   `toml:"divergence_stack_depth"`
		ReturnStackDepth   int     `toml:"return_stack_depth"`
		MemorySize         int     `toml:"memory_size"`
		ConstantPoolBase   uint32  `toml:"constant_pool_base"`
	} `toml:"execution"`

	Texture struct {
		DefaultWrap   string `toml:"default_wrap"` // "wrap" or "clamp"
		DefaultFilter string `toml:"default_filter"` // "nearest" or "bilinear"
	} `toml:"texture"`

	Verify struct {
		Tolerance float64 `toml:"tolerance"`
	} `toml:"verify"`

	Display struct {
		ColorOutput  bool   `toml:"color_output"`
		NumberFormat string `toml:"number_format"` // hex, dec, both
	} `toml:"display"`

	Debugger struct {
		HistorySize    int  `toml:"history_size"`
		AutoSaveBreaks bool `toml:"auto_save_breakpoints"`
		ShowRegisters  bool `toml:"show_registers"`
	} `toml:"debugger"`
}

// DefaultConfig returns a Config whose values match spec.md's stated
// defaults exactly, so the toolchain runs correctly unconfigured.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCycles = 100000
	cfg.Execution.DivergenceStackDepth = 256
	cfg.Execution.ReturnStackDepth = 256
	cfg.Execution.MemorySize = 8192
	cfg.Execution.ConstantPoolBase = 0x1000

	cfg.Texture.DefaultWrap = "wrap"
	cfg.Texture.DefaultFilter = "bilinear"

	cfg.Verify.Tolerance = 0.001

	cfg.Display.ColorOutput = true
	cfg.Display.NumberFormat = "hex"

	cfg.Debugger.HistorySize = 1000
	cfg.Debugger.AutoSaveBreaks = true
	cfg.Debugger.ShowRegisters = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path, falling
// back to a relative "config.toml" when the platform's config directory
// can't be determined or created.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "milo832")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "milo832")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, returning spec-compliant
// defaults (not an error) if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to path, creating its parent directory if
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
