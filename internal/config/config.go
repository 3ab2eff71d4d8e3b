// Package config provides YAML-based configuration loading for knightmare.
package config

import "time"

// Config contains all configuration for the game and its servers.
type Config struct {
	LevelsDir  string          `yaml:"levels_dir"` // empty = built-in pack
	DBPath     string          `yaml:"db_path"`
	Profile    string          `yaml:"profile"`
	Colorblind bool            `yaml:"colorblind"`
	Sound      SoundConfig     `yaml:"sound"`
	Animation  AnimationConfig `yaml:"animation"`
	Debug      DebugConfig     `yaml:"debug"`
	SSH        SSHConfig       `yaml:"ssh"`
}

// SoundConfig controls sound cues.
type SoundConfig struct {
	Muted bool `yaml:"muted"`
}

// AnimationConfig controls move animation in the terminal UI.
type AnimationConfig struct {
	StepMS int `yaml:"step_ms"` // 0 disables animation
}

// DebugConfig enables developer features.
type DebugConfig struct {
	Enabled        bool  `yaml:"enabled"`
	FakeLevels     bool  `yaml:"fake_levels"`      // replace the pack with random boards
	FakeLevelCount int   `yaml:"fake_level_count"` // number of random boards
	Seed           int64 `yaml:"seed"`             // 0 = time based
}

// SSHConfig configures the `serve` command.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // empty = ~/.knightmare/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// StepDuration returns the animation step as a duration.
func (c Config) StepDuration() time.Duration {
	return time.Duration(c.Animation.StepMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}
