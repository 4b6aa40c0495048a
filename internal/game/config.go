package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Boiling-Point/internal/logger"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables shared across subsystems. Zero-valued fields in a
// YAML file keep their defaults.
type Config struct {
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	TileSize     float64 `yaml:"tile_size"`
	Gravity      float64 `yaml:"gravity"`       // units/s²
	WaterLevel   float64 `yaml:"water_level"`   // world Y; greater is submerged
	MaxDeltaTime float64 `yaml:"max_delta"`     // frame delta clamp in seconds
	MaxParticles int     `yaml:"max_particles"` // per engine; 0 = unbounded
	Seed         int64   `yaml:"seed"`          // 0 = time based

	LevelPath    string `yaml:"level_path"`
	ProgressPath string `yaml:"progress_path"`
	ProfilesPath string `yaml:"profiles_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Debug     bool   `yaml:"debug"`

	// MonsterColors are the orb colour groups of water monsters, as hex.
	MonsterColors []string `yaml:"monster_colors"`
}

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:   800,
		ScreenHeight:  800,
		TileSize:      64,
		Gravity:       1600,
		WaterLevel:    1000,
		MaxDeltaTime:  0.06,
		MaxParticles:  6000,
		LevelPath:     "assets/levels/level.json",
		ProgressPath:  "progress.sav",
		LogLevel:      "info",
		LogFormat:     "text",
		MonsterColors: []string{"#0000ff", "#add8e6", "#00008b"},
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Log.WithField("path", path).Info("config file not found, using defaults")
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be > 0", ErrInvalidConfig)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size must be > 0", ErrInvalidConfig)
	case c.MaxDeltaTime <= 0:
		return fmt.Errorf("%w: max_delta must be > 0", ErrInvalidConfig)
	case c.MaxParticles < 0:
		return fmt.Errorf("%w: max_particles must be >= 0", ErrInvalidConfig)
	case len(c.MonsterColors) == 0:
		return fmt.Errorf("%w: monster_colors must not be empty", ErrInvalidConfig)
	}
	for _, hex := range c.MonsterColors {
		if _, err := parseHexColor(hex); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// MonsterPalette parses MonsterColors, skipping entries that do not parse.
func (c Config) MonsterPalette() []color.RGBA {
	out := make([]color.RGBA, 0, len(c.MonsterColors))
	for _, hex := range c.MonsterColors {
		if col, err := parseHexColor(hex); err == nil {
			out = append(out, col)
		}
	}
	return out
}

// Context carries the shared dependencies every simulation constructor needs.
type Context struct {
	Config   Config
	Rand     Random
	Profiles *ProfileLibrary
	Log      *logrus.Entry
}

// NewContext wires a Context from a config. A nil profile library selects
// DefaultProfiles.
func NewContext(cfg Config, rnd Random, profiles *ProfileLibrary) *Context {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	return &Context{
		Config:   cfg,
		Rand:     rnd,
		Profiles: profiles,
		Log:      logger.Log.WithField("component", "sim"),
	}
}

// Underwater reports whether world y is below the water surface.
func (c *Context) Underwater(y float64) bool {
	return y > c.Config.WaterLevel
}
