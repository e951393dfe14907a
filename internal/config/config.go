// Package config handles animtool configuration loading and management.
package config

import "time"

// Config holds all animtool settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Playback PlaybackConfig `yaml:"playback"`
	Import   ImportConfig   `yaml:"import"`
	Output   OutputConfig   `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// PlaybackConfig controls how clips are driven.
type PlaybackConfig struct {
	Clip      string        `yaml:"clip"`       // Clip name, empty selects the first clip
	FPS       int           `yaml:"fps"`        // Update rate for play
	Duration  time.Duration `yaml:"duration"`   // How long play runs
	StartTime float32       `yaml:"start_time"` // Seconds, used by sample and dump
	Loop      *bool         `yaml:"loop"`       // Overrides the clip's own looping when set
}

// ImportConfig holds glTF import settings.
type ImportConfig struct {
	Skin int `yaml:"skin"` // Skin providing inverse bind matrices
}

// OutputConfig controls report output.
type OutputConfig struct {
	Format    string `yaml:"format"` // "text" or "yaml"
	Path      string `yaml:"path"`   // Empty writes to stdout
	Precision int    `yaml:"precision"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Playback: PlaybackConfig{
			FPS:      30,
			Duration: 2 * time.Second,
		},
		Import: ImportConfig{
			Skin: 0,
		},
		Output: OutputConfig{
			Format:    "text",
			Precision: 4,
		},
	}
}
