// Package config provides YAML-based configuration loading for the game
// and its servers.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/zenvertao/2048-game/internal/anim"
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/theme"
)

// Config is the full application configuration.
type Config struct {
	Difficulty string          `yaml:"difficulty"`
	Theme      string          `yaml:"theme"`
	FPS        int             `yaml:"fps"`
	Animation  AnimationConfig `yaml:"animation"`
	Input      InputConfig     `yaml:"input"`
	Audio      AudioConfig     `yaml:"audio"`
	Storage    StorageConfig   `yaml:"storage"`
	Log        LogConfig       `yaml:"log"`
	Server     ServerConfig    `yaml:"server"`
}

// AnimationConfig defines move animation timing.
type AnimationConfig struct {
	SlideMS  int     `yaml:"slide_ms"`
	PopMS    int     `yaml:"pop_ms"`
	PopScale float64 `yaml:"pop_scale"` // Peak extra scale of a merged tile
}

// InputConfig defines gesture handling.
type InputConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"` // Minimum drag distance in terminal cells
}

// AudioConfig defines sound effect playback.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// StorageConfig defines where the best score is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines the rotating log file.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ServerConfig defines the SSH and WebSocket listeners.
type ServerConfig struct {
	SSHAddr        string `yaml:"ssh_addr"`
	WSAddr         string `yaml:"ws_addr"`
	HostKey        string `yaml:"host_key"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
}

// Validate checks names and ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := game.ParseDifficulty(c.Difficulty); err != nil {
		errs = append(errs, err)
	}
	if _, err := theme.Parse(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("config: fps must be positive, got %d", c.FPS))
	}
	if c.Animation.SlideMS < 0 || c.Animation.PopMS < 0 {
		errs = append(errs, errors.New("config: animation durations must not be negative"))
	}
	if c.Animation.PopScale < 0 {
		errs = append(errs, fmt.Errorf("config: pop_scale must not be negative, got %v", c.Animation.PopScale))
	}
	if c.Input.SwipeThreshold < 0 {
		errs = append(errs, fmt.Errorf("config: swipe_threshold must not be negative, got %v", c.Input.SwipeThreshold))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("config: audio volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	return errors.Join(errs...)
}

// GameDifficulty returns the parsed difficulty.
func (c Config) GameDifficulty() (game.Difficulty, error) {
	return game.ParseDifficulty(c.Difficulty)
}

// GameTheme returns the parsed theme.
func (c Config) GameTheme() (theme.Theme, error) {
	return theme.Parse(c.Theme)
}

// Timing converts the animation section.
func (c Config) Timing() anim.Timing {
	return anim.Timing{
		Slide:        time.Duration(c.Animation.SlideMS) * time.Millisecond,
		Pop:          time.Duration(c.Animation.PopMS) * time.Millisecond,
		PopAmplitude: c.Animation.PopScale,
	}
}

// FrameInterval returns the frame loop period.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// IdleTimeout returns the server idle timeout, zero meaning none.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMin) * time.Minute
}
