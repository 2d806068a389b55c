// Package config loads the tool's YAML configuration, applies
// SHOTKIT_-prefixed environment overrides, and validates every field
// before handing the result to callers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wudi/shotkit/beautify"
)

// General holds application-wide settings.
type General struct {
	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`
}

// OCR holds text-recognition settings.
type OCR struct {
	Language            string `yaml:"language"`
	ConfidenceThreshold int    `yaml:"confidence_threshold"`
}

// Beautifier holds screenshot-framing settings.
type Beautifier struct {
	Theme         string  `yaml:"theme"`
	ShadowOpacity float64 `yaml:"shadow_opacity"`
	WindowStyle   string  `yaml:"window_style"`
}

// Recording holds screen-recording settings.
type Recording struct {
	FPS         int    `yaml:"fps"`
	Format      string `yaml:"format"`
	MaxDuration int    `yaml:"max_duration"`
	Quality     string `yaml:"quality"`
}

// Watch holds hotkey-daemon settings.
type Watch struct {
	HotkeyCapture string `yaml:"hotkey_capture"`
	HotkeyRecord  string `yaml:"hotkey_record"`
	Notifications bool   `yaml:"notifications"`
}

// Config is the full configuration tree.
type Config struct {
	General    General    `yaml:"general"`
	OCR        OCR        `yaml:"ocr"`
	Beautifier Beautifier `yaml:"beautifier"`
	Recording  Recording  `yaml:"recording"`
	Watch      Watch      `yaml:"watch"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		General: General{
			OutputDir: "~/Screenshots",
			LogLevel:  "info",
		},
		OCR: OCR{
			Language:            "eng",
			ConfidenceThreshold: 60,
		},
		Beautifier: Beautifier{
			Theme:         "dracula",
			ShadowOpacity: 0.3,
			WindowStyle:   "macos",
		},
		Recording: Recording{
			FPS:         30,
			Format:      "gif",
			MaxDuration: 300,
			Quality:     "high",
		},
		Watch: Watch{
			HotkeyCapture: "ctrl+shift+s",
			HotkeyRecord:  "ctrl+shift+r",
			Notifications: true,
		},
	}
}

// DefaultPaths lists the locations probed when Load is given no path, in
// priority order.
func DefaultPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".shotkit", "config.yml"),
		filepath.Join(home, ".shotkit", "config.yaml"),
		filepath.Join(home, ".config", "shotkit", "config.yml"),
	}
}

// Load reads the configuration from path, or from the first existing
// default location when path is empty. A missing file yields defaults.
// Environment overrides are applied before validation either way.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, candidate := range DefaultPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories as
// needed. An empty path picks the first default location.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if path == "" {
		paths := DefaultPaths()
		if len(paths) == 0 {
			return fmt.Errorf("config: cannot resolve home directory")
		}
		path = paths[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks every field and names the offender in the error.
func (c Config) Validate() error {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: general.log_level %q must be one of debug, info, warn, error", c.General.LogLevel)
	}
	if c.OCR.ConfidenceThreshold < 0 || c.OCR.ConfidenceThreshold > 100 {
		return fmt.Errorf("config: ocr.confidence_threshold %d outside 0..100", c.OCR.ConfidenceThreshold)
	}
	if _, ok := beautify.ThemeByName(c.Beautifier.Theme); !ok {
		return fmt.Errorf("config: beautifier.theme %q unknown (have %s)", c.Beautifier.Theme, strings.Join(beautify.ThemeNames(), ", "))
	}
	if c.Beautifier.ShadowOpacity < 0 || c.Beautifier.ShadowOpacity > 1 {
		return fmt.Errorf("config: beautifier.shadow_opacity %g outside 0..1", c.Beautifier.ShadowOpacity)
	}
	switch strings.ToLower(c.Beautifier.WindowStyle) {
	case "macos", "windows", "linux", "none":
	default:
		return fmt.Errorf("config: beautifier.window_style %q must be one of macos, windows, linux, none", c.Beautifier.WindowStyle)
	}
	if c.Recording.FPS < 1 || c.Recording.FPS > 60 {
		return fmt.Errorf("config: recording.fps %d outside 1..60", c.Recording.FPS)
	}
	switch strings.ToLower(c.Recording.Format) {
	case "gif", "mp4":
	default:
		return fmt.Errorf("config: recording.format %q must be gif or mp4", c.Recording.Format)
	}
	if c.Recording.MaxDuration < 1 {
		return fmt.Errorf("config: recording.max_duration %d must be at least 1", c.Recording.MaxDuration)
	}
	switch strings.ToLower(c.Recording.Quality) {
	case "low", "medium", "high", "lossless":
	default:
		return fmt.Errorf("config: recording.quality %q must be one of low, medium, high, lossless", c.Recording.Quality)
	}
	if c.Watch.HotkeyCapture == "" || c.Watch.HotkeyRecord == "" {
		return fmt.Errorf("config: watch hotkeys must not be empty")
	}
	return nil
}

// OutputDir expands the configured output directory, resolving a leading
// tilde against the user's home.
func (c Config) OutputDir() (string, error) {
	dir := c.General.OutputDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve home: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}

// envPrefix namespaces environment overrides, e.g.
// SHOTKIT_RECORDING_FPS=15.
const envPrefix = "SHOTKIT_"

func applyEnv(cfg *Config) error {
	set := func(key string, apply func(string) error) error {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok {
			return nil
		}
		if err := apply(v); err != nil {
			return fmt.Errorf("config: env %s%s: %w", envPrefix, key, err)
		}
		return nil
	}
	setString := func(dst *string) func(string) error {
		return func(v string) error { *dst = v; return nil }
	}
	setInt := func(dst *int) func(string) error {
		return func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("not an integer: %q", v)
			}
			*dst = n
			return nil
		}
	}
	setFloat := func(dst *float64) func(string) error {
		return func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("not a number: %q", v)
			}
			*dst = f
			return nil
		}
	}
	setBool := func(dst *bool) func(string) error {
		return func(v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("not a boolean: %q", v)
			}
			*dst = b
			return nil
		}
	}

	overrides := map[string]func(string) error{
		"GENERAL_OUTPUT_DIR":        setString(&cfg.General.OutputDir),
		"GENERAL_LOG_LEVEL":         setString(&cfg.General.LogLevel),
		"OCR_LANGUAGE":              setString(&cfg.OCR.Language),
		"OCR_CONFIDENCE_THRESHOLD":  setInt(&cfg.OCR.ConfidenceThreshold),
		"BEAUTIFIER_THEME":          setString(&cfg.Beautifier.Theme),
		"BEAUTIFIER_SHADOW_OPACITY": setFloat(&cfg.Beautifier.ShadowOpacity),
		"BEAUTIFIER_WINDOW_STYLE":   setString(&cfg.Beautifier.WindowStyle),
		"RECORDING_FPS":             setInt(&cfg.Recording.FPS),
		"RECORDING_FORMAT":          setString(&cfg.Recording.Format),
		"RECORDING_MAX_DURATION":    setInt(&cfg.Recording.MaxDuration),
		"RECORDING_QUALITY":         setString(&cfg.Recording.Quality),
		"WATCH_HOTKEY_CAPTURE":      setString(&cfg.Watch.HotkeyCapture),
		"WATCH_HOTKEY_RECORD":       setString(&cfg.Watch.HotkeyRecord),
		"WATCH_NOTIFICATIONS":       setBool(&cfg.Watch.Notifications),
	}
	for key, apply := range overrides {
		if err := set(key, apply); err != nil {
			return err
		}
	}
	return nil
}
