// Package audio synthesizes short cue sounds for combat feedback
package audio

import "github.com/lixenwraith/typecast/parameter"

// SoundType represents different sound effects
type SoundType int

const (
	SoundTypo     SoundType = iota // Global typo buzz
	SoundComplete                  // Word completion chime
	SoundFire                      // Spell released
	SoundKill                      // Enemy defeated
	SoundHit                       // Player struck
	soundTypeCount
)

var soundNames = [...]string{"typo", "complete", "fire", "kill", "hit"}

func (st SoundType) String() string {
	if st >= 0 && st < soundTypeCount {
		return soundNames[st]
	}
	return "unknown"
}

// Config holds mixer settings
type Config struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultConfig returns the compiled-in audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: float64(parameter.AudioMasterVolume) / 100,
		EffectVolumes: map[SoundType]float64{
			SoundTypo:     0.8,
			SoundComplete: 0.7,
			SoundFire:     0.6,
			SoundKill:     0.5,
			SoundHit:      0.7,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// SetVolumePercent sets the master volume from a 0-100 value, clamped
func (c *Config) SetVolumePercent(percent int) {
	c.MasterVolume = min(max(float64(percent)/100, 0), 1)
}
