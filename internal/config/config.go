package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Sequence describes the frame sequence and how it is fetched.
type Sequence struct {
	Source      string  `yaml:"source" toml:"source"` // file, http, pdf
	Base        string  `yaml:"base" toml:"base"`
	Ext         string  `yaml:"ext" toml:"ext"`
	Count       int     `yaml:"count" toml:"count"`
	BatchSize   int     `yaml:"batch_size" toml:"batch_size"`
	SettleDelay float64 `yaml:"settle_delay" toml:"settle_delay"` // seconds
	Timeout     float64 `yaml:"timeout" toml:"timeout"`           // seconds, http only
	DPI         int     `yaml:"dpi" toml:"dpi"`                   // pdf only
}

type Viewport struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

type Spring struct {
	Enabled   bool    `yaml:"enabled" toml:"enabled"`
	Frequency float64 `yaml:"frequency" toml:"frequency"`
	Damping   float64 `yaml:"damping" toml:"damping"`
}

// Scroll configures the scroll-bound region and its smoothing.
type Scroll struct {
	RegionHeight    float64 `yaml:"region_height" toml:"region_height"` // multiples of viewport height
	Duration        float64 `yaml:"duration" toml:"duration"`           // seconds
	Easing          string  `yaml:"easing" toml:"easing"`
	Orientation     string  `yaml:"orientation" toml:"orientation"`
	WheelMultiplier float64 `yaml:"wheel_multiplier" toml:"wheel_multiplier"`
	TouchMultiplier float64 `yaml:"touch_multiplier" toml:"touch_multiplier"`
	Spring          Spring  `yaml:"spring" toml:"spring"`
}

// Overlay is one text block bound to a progress window.
type Overlay struct {
	Title       string    `yaml:"title" toml:"title"`
	Subtitle    string    `yaml:"subtitle" toml:"subtitle"`
	Breakpoints []float64 `yaml:"breakpoints" toml:"breakpoints"`
	Offset      float64   `yaml:"offset" toml:"offset"` // pixels
	CTA         string    `yaml:"cta,omitempty" toml:"cta,omitempty"`
	Theme       string    `yaml:"theme,omitempty" toml:"theme,omitempty"` // auto, light, dark
}

type Output struct {
	Dir       string  `yaml:"dir" toml:"dir"`
	Video     string  `yaml:"video" toml:"video"`
	Format    string  `yaml:"format" toml:"format"` // video, png
	Width     int     `yaml:"width" toml:"width"`
	Height    int     `yaml:"height" toml:"height"`
	FPS       int     `yaml:"fps" toml:"fps"`
	Duration  float64 `yaml:"duration" toml:"duration"`
	Encoder   string  `yaml:"encoder" toml:"encoder"`
	Quality   int     `yaml:"quality" toml:"quality"`
	Script    string  `yaml:"script" toml:"script"`
	ShowStats bool    `yaml:"show_stats" toml:"show_stats"`
}

type Logging struct {
	Level string `yaml:"level" toml:"level"`
}

// Config is the full project configuration.
//
// Sections:
//   - Sequence: frame source, count, batching
//   - Viewport: initial surface size
//   - Scroll: region geometry and smoothing
//   - Overlays: text blocks and their progress windows
//   - Output: render target, fps, encoder
//   - Logging: log level
type Config struct {
	Sequence     Sequence  `yaml:"sequence" toml:"sequence"`
	Viewport     Viewport  `yaml:"viewport" toml:"viewport"`
	Scroll       Scroll    `yaml:"scroll" toml:"scroll"`
	Overlays     []Overlay `yaml:"overlays" toml:"overlays"`
	Output       Output    `yaml:"output" toml:"output"`
	Logging      Logging   `yaml:"logging" toml:"logging"`
	BuildVersion string    `yaml:"-" toml:"-"`
}

// Load reads a YAML or TOML project file on top of Default, then
// normalizes and validates it. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Marshal encodes cfg in the format implied by path's extension.
func Marshal(path string, cfg *Config) ([]byte, error) {
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		return toml.Marshal(cfg)
	}
	return yaml.Marshal(cfg)
}

// WriteSample writes the default configuration to path.
func WriteSample(path string) error {
	cfg := Default()
	data, err := Marshal(path, &cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
