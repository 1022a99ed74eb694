package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// chdir moves into a fresh temp dir so a stray ./todo.toml is never picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestDefaults(t *testing.T) {
	chdir(t)
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.StartID != DefaultStartID {
		t.Errorf("StartID: got %d, want %d", cfg.StartID, DefaultStartID)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Seed || cfg.Group || cfg.AssumeYes {
		t.Errorf("booleans should default to false: %+v", cfg)
	}
	if cfg.File != "" {
		t.Errorf("File: got %q, want empty", cfg.File)
	}
}

func TestPrecedence(t *testing.T) {
	dir := chdir(t)
	content := "theme = \"neon\"\nseed = true\nstart_id = 10\nlog_level = \"info\"\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TODO_START_ID", "20")
	t.Setenv("TODO_LOG_LEVEL", "debug")

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"-log-level", "error", "extra"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != DefaultConfigFile {
		t.Errorf("File: got %q, want %q", cfg.File, DefaultConfigFile)
	}
	if cfg.Theme != "neon" || !cfg.Seed {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.StartID != 20 {
		t.Errorf("StartID: got %d, want env value 20", cfg.StartID)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want flag value error", cfg.LogLevel)
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "extra" {
		t.Errorf("Args: got %v, want [extra]", got)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	chdir(t)
	if _, err := Load(newFlagSet(), []string{"-config", "missing.toml"}); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	t.Setenv("TODO_CONFIG", "also-missing.toml")
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Fatal("expected error for missing TODO_CONFIG file")
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "unknown theme", args: []string{"-theme", "sepia"}},
		{name: "zero start id", args: []string{"-start-id", "0"}},
		{name: "bad env start id", env: map[string]string{"TODO_START_ID": "one"}},
		{name: "bad env seed", env: map[string]string{"TODO_SEED": "maybe"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := newFlagSet()
			fs.SetOutput(io.Discard)
			if _, err := Load(fs, tt.args); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestBadTOML(t *testing.T) {
	dir := chdir(t)
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("theme = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestValidateNormalizesTheme(t *testing.T) {
	cfg := Default()
	cfg.Theme = "  MONO "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme: got %q, want mono", cfg.Theme)
	}
}
