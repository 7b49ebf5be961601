package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Limits.MaxParseDepth != 10 {
		t.Errorf("default MaxParseDepth = %d, want 10", cfg.Limits.MaxParseDepth)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfig_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `limits:
  max_property_name_length: 128
  max_property_value_length: 16384
  max_at_rule_block_length: 524288
  max_parse_depth: 5
logging:
  console:
    level: debug
  file:
    level: none
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig(%q) error = %v", configPath, err)
	}
	if cfg.Limits.MaxParseDepth != 5 {
		t.Errorf("MaxParseDepth = %d, want 5", cfg.Limits.MaxParseDepth)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfig_InvalidLimits(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `limits:
  max_property_name_length: 0
  max_property_value_length: 16384
  max_at_rule_block_length: 524288
  max_parse_depth: 5
logging:
  console:
    level: normal
  file:
    level: none
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("expected a validation error for max_property_name_length=0")
	}
}

func TestLoadConfig_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `limits:
  max_property_name_length: 128
  max_property_value_length: 16384
  max_at_rule_block_length: 524288
  max_parse_depth: 5
  bogus_field: true
logging:
  console:
    level: normal
  file:
    level: none
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("expected a decode error for an unknown field")
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	out, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty dump output")
	}
}

func TestLogger(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	log, err := cfg.Logger()
	if err != nil {
		t.Fatalf("Logger() error = %v", err)
	}
	if log == nil {
		t.Fatal("expected a non-nil logger")
	}
}
