package config

import (
	"flag"
	"time"
)

// Flags are the overrides shared by every animtool command.
type Flags struct {
	Config   string
	Debug    bool
	LogFile  string
	Clip     string
	FPS      int
	Duration time.Duration
	Time     float64
	Loop     bool
	NoLoop   bool
	Skin     int
	Format   string
	Output   string
}

// Register binds the flags to fs. Unset numeric flags use negative sentinels
// so zero stays a valid override.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Also write logs to this file")
	fs.StringVar(&f.Clip, "clip", "", "Clip name")
	fs.IntVar(&f.FPS, "fps", 0, "Updates per second")
	fs.DurationVar(&f.Duration, "duration", 0, "Playback length")
	fs.Float64Var(&f.Time, "t", -1, "Sample time in seconds")
	fs.BoolVar(&f.Loop, "loop", false, "Force looping")
	fs.BoolVar(&f.NoLoop, "no-loop", false, "Force clamped playback")
	fs.IntVar(&f.Skin, "skin", -1, "Skin index for inverse bind matrices")
	fs.StringVar(&f.Format, "format", "", "Output format (text, yaml)")
	fs.StringVar(&f.Output, "o", "", "Output file")
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Clip != "" {
		cfg.Playback.Clip = f.Clip
	}
	if f.FPS > 0 {
		cfg.Playback.FPS = f.FPS
	}
	if f.Duration > 0 {
		cfg.Playback.Duration = f.Duration
	}
	if f.Time >= 0 {
		cfg.Playback.StartTime = float32(f.Time)
	}
	if f.Loop {
		loop := true
		cfg.Playback.Loop = &loop
	}
	if f.NoLoop {
		loop := false
		cfg.Playback.Loop = &loop
	}
	if f.Skin >= 0 {
		cfg.Import.Skin = f.Skin
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
}
