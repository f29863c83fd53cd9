package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "astra-audit.yaml", "fail_on: WARNING\nfunction_length_limit: 40\nno_color: true\nentry_file: main.py\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.FailOn == nil || *cfg.FailOn != "WARNING" {
		t.Fatalf("expected fail_on=WARNING, got %#v", cfg.FailOn)
	}
	if cfg.FunctionLengthLimit == nil || *cfg.FunctionLengthLimit != 40 {
		t.Fatalf("expected function_length_limit=40, got %#v", cfg.FunctionLengthLimit)
	}
	if cfg.NoColor == nil || *cfg.NoColor != true {
		t.Fatalf("expected no_color=true")
	}
	if cfg.EntryFile == nil || *cfg.EntryFile != "main.py" {
		t.Fatalf("expected entry_file=main.py, got %#v", cfg.EntryFile)
	}
}

func TestLoadFile_UnsetFieldsStayNil(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "astra-audit.yaml", "format: sarif\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Format == nil || *cfg.Format != "sarif" {
		t.Fatalf("expected format=sarif, got %#v", cfg.Format)
	}
	if cfg.FailOn != nil || cfg.ModuleErrorLines != nil || cfg.Disable != nil {
		t.Fatalf("expected untouched fields to stay nil: %#v", cfg)
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "astra-audit.yaml", "function_length_limit: 1\n")
	writeTemp(t, dir, ".astra-audit.yaml", "function_length_limit: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.FunctionLengthLimit == nil || *cfg.FunctionLengthLimit != 7 {
		t.Fatalf("expected function_length_limit=7 from .astra-audit.yaml, got %#v", cfg.FunctionLengthLimit)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "astra-audit")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(cfgDir, "config.yml")
	if err := os.WriteFile(p, []byte("fail_on: INFO\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.FailOn == nil || *cfg.FailOn != "INFO" {
		t.Fatalf("expected fail_on=INFO from global config, got %#v", cfg.FailOn)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	// Simulate no HOME as well by clearing HOME; LoadGlobal should error
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected error when no global config dir exists")
	}
}
