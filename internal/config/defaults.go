package config

import (
	_ "embed"
)

//go:embed defaults/knightmare.yaml
var defaultYAML []byte

// Default returns the hard-coded default configuration.
func Default() Config {
	return Config{
		LevelsDir:  "",
		DBPath:     "~/.knightmare/progress.db",
		Profile:    "local",
		Colorblind: true,
		Sound: SoundConfig{
			Muted: false,
		},
		Animation: AnimationConfig{
			StepMS: 125,
		},
		Debug: DebugConfig{
			Enabled:        false,
			FakeLevels:     false,
			FakeLevelCount: 24,
		},
		SSH: SSHConfig{
			Address:            ":23234",
			HostKey:            "",
			IdleTimeoutMinutes: 30,
		},
	}
}
