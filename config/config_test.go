package config_test

import (
	"path/filepath"
	"testing"

	"github.com/benjcooley/milo832/config"
)

func TestDefaultConfigMatchesSpecDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg.Execution.MaxCycles != 100000 {
		t.Errorf("MaxCycles = %d, want 100000", cfg.Execution.MaxCycles)
	}
	if cfg.Execution.MemorySize != 8192 {
		t.Errorf("MemorySize = %d, want 8192", cfg.Execution.MemorySize)
	}
	if cfg.Execution.ConstantPoolBase != 0x1000 {
		t.Errorf("ConstantPoolBase = 0x%X, want 0x1000", cfg.Execution.ConstantPoolBase)
	}
	if cfg.Verify.Tolerance != 0.001 {
		t.Errorf("Tolerance = %v, want 0.001", cfg.Verify.Tolerance)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Execution.MaxCycles != 100000 {
		t.Errorf("expected default MaxCycles, got %d", cfg.Execution.MaxCycles)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	cfg.Execution.MaxCycles = 5000
	cfg.Texture.DefaultWrap = "clamp"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Execution.MaxCycles != 5000 {
		t.Errorf("MaxCycles = %d, want 5000", loaded.Execution.MaxCycles)
	}
	if loaded.Texture.DefaultWrap != "clamp" {
		t.Errorf("DefaultWrap = %q, want clamp", loaded.Texture.DefaultWrap)
	}
}
