package poncho

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultWindowWidth  = 1080
	defaultWindowHeight = 720
	defaultWindowTitle  = "poncho"
)

// RunConfig configures the window and game loop started by Run.
type RunConfig struct {
	// Title is the window title.
	Title string `yaml:"title,omitempty"`
	// Width and Height are the window and logical screen size in pixels.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
	// ShowFPS adds an FPS readout in the top-left corner.
	ShowFPS bool `yaml:"show_fps,omitempty"`
	// FPSInterval is the FPS sampling window.
	FPSInterval time.Duration `yaml:"fps_interval,omitempty"`
	// ClearColor overrides Scene.ClearColor when set, as "#rrggbb" or "#rrggbbaa".
	ClearColor string `yaml:"clear_color,omitempty"`
	// Debug enables Scene debug mode.
	Debug bool `yaml:"debug,omitempty"`
	// ScreenshotDir overrides Scene.ScreenshotDir when set.
	ScreenshotDir string `yaml:"screenshot_dir,omitempty"`
	// TestScript, when set, is loaded with LoadTestScript and attached to the scene.
	TestScript string `yaml:"test_script,omitempty"`
}

// withDefaults fills zero fields with their defaults.
func (c RunConfig) withDefaults() RunConfig {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		c.Title = defaultWindowTitle
	}
	if c.Width <= 0 {
		c.Width = defaultWindowWidth
	}
	if c.Height <= 0 {
		c.Height = defaultWindowHeight
	}
	if c.FPSInterval <= 0 {
		c.FPSInterval = defaultFPSInterval
	}
	return c
}

// LoadRunConfig reads a YAML run configuration from path. A missing file is
// not an error and yields the defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RunConfig{}.withDefaults(), nil
		}
		return RunConfig{}, fmt.Errorf("poncho: read run config: %w", err)
	}
	cfg, err := ParseRunConfig(data)
	if err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// ParseRunConfig decodes YAML run configuration and applies defaults.
func ParseRunConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("poncho: parse run config: %w", err)
	}
	if cfg.ClearColor != "" {
		if _, err := ParseColor(cfg.ClearColor); err != nil {
			return RunConfig{}, fmt.Errorf("poncho: parse run config: clear_color: %w", err)
		}
	}
	return cfg.withDefaults(), nil
}
