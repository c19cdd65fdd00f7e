package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/plus3/reaperrun/game"
)

type Config struct {
	Window    WindowConfig    `toml:"window"`
	World     WorldConfig     `toml:"world"`
	Assets    AssetsConfig    `toml:"assets"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Logging   LoggingConfig   `toml:"logging"`
	Debug     DebugConfig     `toml:"debug"`
}

type WindowConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Title  string  `toml:"title"`
	Scale  float64 `toml:"scale"` // window size multiplier, the canvas stays Width x Height
}

type WorldConfig struct {
	Seed                 uint64        `toml:"seed"` // 0 picks a random seed per run
	PlayerSpeed          int32         `toml:"player_speed"`
	EnemySpeed           int32         `toml:"enemy_speed"`
	EnemyColumns         int           `toml:"enemy_columns"`
	EnemyRows            int           `toml:"enemy_rows"`
	DirectionChangeDelay time.Duration `toml:"direction_change_delay"`
	FrameRate            int           `toml:"frame_rate"`
}

type AssetsConfig struct {
	Manifest string `toml:"manifest"`
	BaseDir  string `toml:"base_dir"` // texture paths in the manifest are relative to this
}

type SchedulerConfig struct {
	Parallel bool `toml:"parallel"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Reaper Run",
			Scale:  1,
		},
		World: WorldConfig{
			PlayerSpeed:          200,
			EnemySpeed:           200,
			EnemyColumns:         3,
			EnemyRows:            2,
			DirectionChangeDelay: 200 * time.Millisecond,
			FrameRate:            60,
		},
		Assets: AssetsConfig{
			Manifest: "assets/sprites.yaml",
			BaseDir:  "assets",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale %g must be positive", c.Window.Scale))
	}
	if c.World.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame rate %d must be positive", c.World.FrameRate))
	}
	if c.World.PlayerSpeed < 0 || c.World.EnemySpeed < 0 {
		errs = append(errs, errors.New("speeds must not be negative"))
	}
	if c.World.EnemyColumns < 0 || c.World.EnemyRows < 0 {
		errs = append(errs, fmt.Errorf("enemy grid %dx%d must not be negative", c.World.EnemyColumns, c.World.EnemyRows))
	}
	if c.World.DirectionChangeDelay < 0 {
		errs = append(errs, errors.New("direction change delay must not be negative"))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// FrameDuration is the simulated time of one frame at the configured frame rate.
func (c *Config) FrameDuration() time.Duration {
	if c.World.FrameRate <= 0 {
		return game.FrameDuration
	}
	return time.Second / time.Duration(c.World.FrameRate)
}

// Settings converts the configuration into session settings using the given sprites.
func (c *Config) Settings(sprites game.SpriteSet) game.Settings {
	settings := game.DefaultSettings()
	settings.CanvasWidth = int32(c.Window.Width)
	settings.CanvasHeight = int32(c.Window.Height)
	settings.Seed = c.World.Seed
	settings.FrameDuration = c.FrameDuration()
	settings.Parallel = c.Scheduler.Parallel
	settings.Layout.PlayerSpeed = c.World.PlayerSpeed
	settings.Layout.EnemySpeed = c.World.EnemySpeed
	settings.Layout.EnemyColumns = c.World.EnemyColumns
	settings.Layout.EnemyRows = c.World.EnemyRows
	settings.Layout.DirectionChangeDelay = c.World.DirectionChangeDelay
	settings.Layout.Sprites = sprites
	return settings
}
