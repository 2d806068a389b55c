package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recording.FPS != 30 || cfg.Beautifier.Theme != "dracula" {
		t.Fatalf("not defaults: %+v", cfg)
	}
}

func TestLoadParsesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "recording:\n  fps: 15\n  format: mp4\nocr:\n  language: deu\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recording.FPS != 15 || cfg.Recording.Format != "mp4" {
		t.Fatalf("recording not applied: %+v", cfg.Recording)
	}
	if cfg.OCR.Language != "deu" {
		t.Fatalf("ocr.language = %q", cfg.OCR.Language)
	}
	// Untouched sections keep their defaults.
	if cfg.Beautifier.Theme != "dracula" {
		t.Fatalf("beautifier default lost: %+v", cfg.Beautifier)
	}
}

func TestValidationNamesField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.General.LogLevel = "chatty" }, "general.log_level"},
		{"confidence", func(c *Config) { c.OCR.ConfidenceThreshold = 150 }, "ocr.confidence_threshold"},
		{"theme", func(c *Config) { c.Beautifier.Theme = "acid" }, "beautifier.theme"},
		{"opacity", func(c *Config) { c.Beautifier.ShadowOpacity = 1.5 }, "beautifier.shadow_opacity"},
		{"window style", func(c *Config) { c.Beautifier.WindowStyle = "beos" }, "beautifier.window_style"},
		{"fps", func(c *Config) { c.Recording.FPS = 0 }, "recording.fps"},
		{"format", func(c *Config) { c.Recording.Format = "webm" }, "recording.format"},
		{"max duration", func(c *Config) { c.Recording.MaxDuration = 0 }, "recording.max_duration"},
		{"quality", func(c *Config) { c.Recording.Quality = "ultra" }, "recording.quality"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not name %q", err, tc.want)
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("recording:\n  fps: 99\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "recording.fps") {
		t.Fatalf("Load() error = %v, want recording.fps complaint", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHOTKIT_RECORDING_FPS", "12")
	t.Setenv("SHOTKIT_BEAUTIFIER_THEME", "nord")
	t.Setenv("SHOTKIT_WATCH_NOTIFICATIONS", "false")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recording.FPS != 12 {
		t.Fatalf("fps override lost: %d", cfg.Recording.FPS)
	}
	if cfg.Beautifier.Theme != "nord" {
		t.Fatalf("theme override lost: %q", cfg.Beautifier.Theme)
	}
	if cfg.Watch.Notifications {
		t.Fatalf("notifications override lost")
	}
}

func TestEnvOverrideBadValue(t *testing.T) {
	t.Setenv("SHOTKIT_RECORDING_FPS", "fast")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected error for non-integer fps override")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := Default()
	cfg.Recording.Format = "mp4"
	cfg.Watch.HotkeyCapture = "ctrl+alt+4"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Recording.Format != "mp4" || loaded.Watch.HotkeyCapture != "ctrl+alt+4" {
		t.Fatalf("round trip lost values: %+v", loaded)
	}
}

func TestOutputDirExpandsTilde(t *testing.T) {
	cfg := Default()
	dir, err := cfg.OutputDir()
	if err != nil {
		t.Fatalf("OutputDir() error = %v", err)
	}
	if strings.HasPrefix(dir, "~") {
		t.Fatalf("tilde not expanded: %q", dir)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Fatalf("dir %q not under home %q", dir, home)
	}
}
