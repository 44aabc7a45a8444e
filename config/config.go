// Package config loads user settings and petition forms from disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aerissecure/votive"
	"github.com/aerissecure/votive/layout"
	"github.com/aerissecure/votive/paper"
)

var (
	// ErrNotFound is returned when a form file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig is returned for settings that cannot be used.
	ErrInvalidConfig = errors.New("invalid config")
)

const appDir = "votive"

// Config is the settings file.
type Config struct {
	Paper          string  `yaml:"paper"`
	CustomWidthMM  float64 `yaml:"custom_width_mm,omitempty"`
	CustomHeightMM float64 `yaml:"custom_height_mm,omitempty"`
	TempleName     string  `yaml:"temple_name"`
	DraftsPath     string  `yaml:"drafts_path"`

	// TemplatesPath optionally replaces the built-in petition catalog.
	TemplatesPath string `yaml:"templates_path,omitempty"`

	Layout LayoutConfig `yaml:"layout"`
	Log    LogConfig    `yaml:"log"`
	PDF    PDFConfig    `yaml:"pdf"`
}

type LayoutConfig struct {
	MinRows     int     `yaml:"min_rows"`
	ScaleFactor float64 `yaml:"scale_factor"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type PDFConfig struct {
	BrowserBin string `yaml:"browser_bin,omitempty"` // empty lets rod find or download a browser
	Headless   bool   `yaml:"headless"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Paper:      paper.DefaultKey,
		TempleName: votive.DefaultTempleName,
		DraftsPath: filepath.Join(dataDir(), "drafts.json"),
		Layout: LayoutConfig{
			MinRows:     layout.DefaultMinRows,
			ScaleFactor: layout.DefaultScaleFactor,
		},
		Log: LogConfig{Level: "info"},
		PDF: PDFConfig{Headless: true},
	}
}

func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return "." + appDir
}

// DefaultPath is where the CLI looks for settings without --config.
func DefaultPath() string {
	return filepath.Join(dataDir(), "config.yaml")
}

// Load reads settings from path. A missing file yields Default(); keys the
// file omits keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that the paper size resolves and layout values are sane.
func (c Config) Validate() error {
	if _, err := c.PaperSize(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Layout.MinRows < 0 {
		return fmt.Errorf("%w: layout.min_rows must not be negative", ErrInvalidConfig)
	}
	if c.Layout.ScaleFactor < 0 {
		return fmt.Errorf("%w: layout.scale_factor must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PaperSize resolves the configured paper.
func (c Config) PaperSize() (paper.Size, error) {
	return paper.Resolve(c.Paper, c.CustomWidthMM, c.CustomHeightMM)
}

// Engine returns a layout engine with the configured row floor and scale.
func (c Config) Engine() *layout.Engine {
	return layout.NewEngine(layout.WithMinRows(c.Layout.MinRows), layout.WithScaleFactor(c.Layout.ScaleFactor))
}

// TempleNameOr returns the configured venue, or fallback when blank.
func (c Config) TempleNameOr(fallback string) string {
	if s := strings.TrimSpace(c.TempleName); s != "" {
		return s
	}
	return fallback
}
