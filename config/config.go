package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPath names the environment variable holding an optional override file.
const EnvPath = "OXY_FLAP_CONFIG"

// uncappedFPS stands in for a max_fps of 0.
const uncappedFPS = 8192

// Config is the full runtime configuration.
type Config struct {
	Window    WindowConfig  `yaml:"window"`
	Render    RenderConfig  `yaml:"render"`
	Physics   PhysicsConfig `yaml:"physics"`
	Log       LogConfig     `yaml:"log"`
	Profiling bool          `yaml:"profiling"`
}

// WindowConfig holds the initial window title and size.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RenderConfig holds presentation and quality settings.
type RenderConfig struct {
	VSync                bool `yaml:"vsync"`
	MSAASamples          int  `yaml:"msaa_samples"`
	MaxFPS               int  `yaml:"max_fps"`
	ShadowMapResolution  int  `yaml:"shadow_map_resolution"`
	ForceFallbackAdapter bool `yaml:"force_fallback_adapter"`
}

// PhysicsConfig holds the simulation tick rate in Hz.
type PhysicsConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// LogConfig selects the zap level and encoder flavour.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the embedded defaults.
// It panics if the embedded document is malformed since that is a build defect.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return c
}

// Load returns the defaults overlaid with the YAML document at path.
// Fields missing from the file keep their default values.
//
// Parameters:
//   - path: the override file; an empty path returns the defaults
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, parsed or fails validation
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, c.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromEnv loads the file named by EnvPath, or the defaults when it is unset.
func FromEnv() (Config, error) {
	return Load(os.Getenv(EnvPath))
}

// Validate reports the first field holding an unusable value.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Render.MSAASamples < 1:
		return errors.New("config: render.msaa_samples must be at least 1")
	case c.Render.MaxFPS < 0:
		return errors.New("config: render.max_fps must not be negative")
	case c.Render.ShadowMapResolution <= 0:
		return errors.New("config: render.shadow_map_resolution must be positive")
	case c.Physics.TickRate <= 0:
		return errors.New("config: physics.tick_rate must be positive")
	}
	return nil
}

// FrameLimit returns the effective render frame cap; a max_fps of 0 means uncapped.
func (r RenderConfig) FrameLimit() int {
	if r.MaxFPS == 0 {
		return uncappedFPS
	}
	return r.MaxFPS
}
