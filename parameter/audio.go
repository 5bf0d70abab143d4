package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume is the default master volume percentage
	AudioMasterVolume = 50
)

// Typo Sound
const (
	TypoSoundDuration = 80 * time.Millisecond
	TypoSoundAttack   = 5 * time.Millisecond
	TypoSoundRelease  = 20 * time.Millisecond
)

// Completion Sound
const (
	CompleteSoundDuration = 400 * time.Millisecond
	CompleteSoundAttack   = 5 * time.Millisecond
	CompleteSoundRelease  = 300 * time.Millisecond
)

// Fire Sound
const (
	FireSoundDuration = 250 * time.Millisecond
	FireSoundAttack   = 20 * time.Millisecond
	FireSoundRelease  = 150 * time.Millisecond
)

// Kill Sound
const (
	KillSoundNote1Duration = 80 * time.Millisecond
	KillSoundNote2Duration = 240 * time.Millisecond
	KillSoundAttack        = 2 * time.Millisecond
	KillSoundNote1Release  = 20 * time.Millisecond
	KillSoundNote2Release  = 180 * time.Millisecond
)

// Hit Sound
const (
	HitSoundDuration = 150 * time.Millisecond
)
