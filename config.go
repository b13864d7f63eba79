package scenedit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable constant of the viewport interaction.
type Config struct {
	Fly   FlyConfig   `toml:"fly"`
	Orbit OrbitConfig `toml:"orbit"`
	Focus FocusConfig `toml:"focus"`
	Gizmo GizmoConfig `toml:"gizmo"`
}

type FlyConfig struct {
	BaseSpeed        float32 `toml:"base_speed"`
	MinSpeed         float32 `toml:"min_speed"`
	MaxSpeed         float32 `toml:"max_speed"`
	WheelSlower      float32 `toml:"wheel_slower"`
	WheelFaster      float32 `toml:"wheel_faster"`
	LookSensitivity  float32 `toml:"look_sensitivity"`
	PitchLimit       float32 `toml:"pitch_limit"`
	RetargetDistance float32 `toml:"retarget_distance"`
}

type OrbitConfig struct {
	RotateSpeed float32 `toml:"rotate_speed"`
	PanSpeed    float32 `toml:"pan_speed"`
	ZoomFactor  float32 `toml:"zoom_factor"`
	MinDistance float32 `toml:"min_distance"`
	MaxDistance float32 `toml:"max_distance"`
}

type FocusConfig struct {
	Padding          float32 `toml:"padding"`
	MinDistance      float32 `toml:"min_distance"`
	FallbackDistance float32 `toml:"fallback_distance"`
	DurationMS       int64   `toml:"duration_ms"`
}

func (c FocusConfig) Duration() time.Duration {
	return time.Duration(c.DurationMS) * time.Millisecond
}

type GizmoConfig struct {
	SizeFactor     float32       `toml:"size_factor"`
	HitboxScale    float32       `toml:"hitbox_scale"`
	ClickThreshold float64       `toml:"click_threshold"`
	AxisColors     [3][4]float32 `toml:"axis_colors"`
	CenterColor    [4]float32    `toml:"center_color"`
	HighlightColor [4]float32    `toml:"highlight_color"`
}

func DefaultConfig() *Config {
	return &Config{
		Fly: FlyConfig{
			BaseSpeed:        5,
			MinSpeed:         0.1,
			MaxSpeed:         50,
			WheelSlower:      0.8,
			WheelFaster:      1.25,
			LookSensitivity:  0.003,
			PitchLimit:       math32.Pi/2 - 0.01,
			RetargetDistance: 10,
		},
		Orbit: OrbitConfig{
			RotateSpeed: 0.005,
			PanSpeed:    0.0015,
			ZoomFactor:  1.1,
			MinDistance: 0.1,
			MaxDistance: 1000,
		},
		Focus: FocusConfig{
			Padding:          2.5,
			MinDistance:      1,
			FallbackDistance: 5,
			DurationMS:       500,
		},
		Gizmo: GizmoConfig{
			SizeFactor:     0.25,
			HitboxScale:    3.5,
			ClickThreshold: 4,
			AxisColors: [3][4]float32{
				{0.92, 0.22, 0.24, 1},
				{0.35, 0.82, 0.25, 1},
				{0.22, 0.45, 0.95, 1},
			},
			CenterColor:    [4]float32{0.85, 0.85, 0.85, 1},
			HighlightColor: [4]float32{1, 0.85, 0.2, 1},
		},
	}
}

// ParseConfig decodes TOML over the defaults, so a file only needs the keys
// it changes.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("decode config at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) Validate() error {
	switch {
	case c.Fly.MinSpeed <= 0 || c.Fly.MaxSpeed < c.Fly.MinSpeed:
		return fmt.Errorf("%w: fly speed range [%g, %g]", ErrInvalidConfig, c.Fly.MinSpeed, c.Fly.MaxSpeed)
	case c.Fly.WheelSlower <= 0 || c.Fly.WheelSlower >= 1 || c.Fly.WheelFaster <= 1:
		return fmt.Errorf("%w: wheel factors %g/%g", ErrInvalidConfig, c.Fly.WheelSlower, c.Fly.WheelFaster)
	case c.Fly.PitchLimit <= 0 || c.Fly.PitchLimit >= math32.Pi/2:
		return fmt.Errorf("%w: pitch limit %g", ErrInvalidConfig, c.Fly.PitchLimit)
	case c.Orbit.MinDistance <= 0 || c.Orbit.MaxDistance < c.Orbit.MinDistance:
		return fmt.Errorf("%w: orbit distance range [%g, %g]", ErrInvalidConfig, c.Orbit.MinDistance, c.Orbit.MaxDistance)
	case c.Focus.Padding <= 0 || c.Focus.MinDistance < 0 || c.Focus.DurationMS < 0:
		return fmt.Errorf("%w: focus", ErrInvalidConfig)
	case c.Gizmo.SizeFactor <= 0 || c.Gizmo.HitboxScale < 1:
		return fmt.Errorf("%w: gizmo size", ErrInvalidConfig)
	}
	return nil
}

// ConfigModule installs *Config, loaded from Path when set. With Watch the
// file is reloaded on change and swapped in at the start of a frame.
type ConfigModule struct {
	Path  string
	Watch bool
}

func (m ConfigModule) Install(app *App, cmd *Commands) {
	logger := app.Logger()
	cfg := DefaultConfig()
	if m.Path != "" {
		loaded, err := LoadConfig(m.Path)
		if err != nil {
			logger.Warnf("using default config: %v", err)
		} else {
			cfg = loaded
			logger.Infof("loaded config from %s", m.Path)
		}
	}
	cmd.AddResources(cfg)

	if !m.Watch || m.Path == "" {
		return
	}
	w, err := WatchConfig(m.Path, logger)
	if err != nil {
		logger.Warnf("config hot reload disabled: %v", err)
		return
	}
	cmd.AddResources(w)
	app.UseSystem(System(configReloadSystem).InStage(Prelude))
}

func configReloadSystem(cfg *Config, w *ConfigWatcher) {
	for {
		select {
		case next := <-w.Updates():
			*cfg = *next
		default:
			return
		}
	}
}
