package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Engine holds the configuration of the scene engine tools.
type Engine struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Scenes
	ScenesDir      string  `yaml:"scenes_dir"`
	PreloadWorkers int     `yaml:"preload_workers"` // 0 = unlimited
	GridCellSize   float64 `yaml:"grid_cell_size"`  // <= 0 disables the point-query grid
	StrictShrink   bool    `yaml:"strict_shrink"`   // panic on nested shrink transactions

	// Save state
	SaveState SaveStateConfig `yaml:"save_state"`
	Database  DatabaseConfig  `yaml:"database"`

	// Debug viewer
	Viewer Viewer `yaml:"viewer"`
}

// SaveStateConfig controls the PostgreSQL save-state store.
type SaveStateConfig struct {
	Enabled bool          `yaml:"enabled"`
	Slot    string        `yaml:"slot"`
	Timeout time.Duration `yaml:"timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Viewer holds the settings of the debug viewer window.
type Viewer struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	ShowNames     bool          `yaml:"show_names"`
	ShowHidden    bool          `yaml:"show_hidden"`
	WalkSpeed     float64       `yaml:"walk_speed"`    // world units per second
	ShrinkMargin  float64       `yaml:"shrink_margin"` // margin used by the shrink toggle
	GlideDuration time.Duration `yaml:"glide_duration"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel:       "info",
		ScenesDir:      "data/scenes",
		PreloadWorkers: 4,
		GridCellSize:   4.0,
		SaveState: SaveStateConfig{
			Enabled: false,
			Slot:    "default",
			Timeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "grimset",
			Password: "grimset",
			DBName:   "grimset",
			SSLMode:  "disable",
		},
		Viewer: Viewer{
			Width:         960,
			Height:        720,
			ShowNames:     true,
			WalkSpeed:     1.5,
			ShrinkMargin:  0.1,
			GlideDuration: 400 * time.Millisecond,
		},
	}
}

// LoadEngine loads engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
