package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/typecast/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		switch {
		case e.position < e.attackSamples:
			vol = float64(e.position) / float64(e.attackSamples)
		case e.position >= releaseStart && e.releaseSamples > 0:
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at a linear gain
// math.Log2(0) is -Inf, so zero gain is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound generators

// createTypoSound is a short harsh buzz
func createTypoSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(100.0, parameter.TypoSoundDuration, WaveSaw, rate)
	return NewEnvelope(osc, parameter.TypoSoundDuration, parameter.TypoSoundAttack, parameter.TypoSoundRelease, rate)
}

// createCompleteSound is a bell: A5 with an octave overtone
func createCompleteSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CompleteSoundDuration
	fund := NewEnvelope(NewOscillator(880.0, d, WaveSine, rate), d, parameter.CompleteSoundAttack, parameter.CompleteSoundRelease, rate)
	over := NewEnvelope(NewOscillator(1760.0, d, WaveSine, rate), d, parameter.CompleteSoundAttack, parameter.CompleteSoundRelease/2, rate)
	return beep.Take(rate.N(d), beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3)))
}

// createFireSound is a noise whoosh
func createFireSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, parameter.FireSoundDuration, WaveNoise, rate)
	return NewEnvelope(noise, parameter.FireSoundDuration, parameter.FireSoundAttack, parameter.FireSoundRelease, rate)
}

// createKillSound is a two-note chime, B5 then E6
func createKillSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(987.77, parameter.KillSoundNote1Duration, WaveSquare, rate),
		parameter.KillSoundNote1Duration, parameter.KillSoundAttack, parameter.KillSoundNote1Release, rate)
	n2 := NewEnvelope(NewOscillator(1318.51, parameter.KillSoundNote2Duration, WaveSquare, rate),
		parameter.KillSoundNote2Duration, parameter.KillSoundAttack, parameter.KillSoundNote2Release, rate)
	return beep.Seq(n1, n2)
}

// createHitSound is a low thud
func createHitSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.HitSoundDuration
	return NewEnvelope(NewOscillator(60.0, d, WaveSine, rate), d, 0, d, rate)
}

// Effect returns a fresh streamer for st scaled by the effect and master volumes
// Returns nil for an unknown type
func Effect(st SoundType, cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch st {
	case SoundTypo:
		s = createTypoSound(rate)
	case SoundComplete:
		s = createCompleteSound(rate)
	case SoundFire:
		s = createFireSound(rate)
	case SoundKill:
		s = createKillSound(rate)
	case SoundHit:
		s = createHitSound(rate)
	default:
		return nil
	}
	return newVolume(s, cfg.EffectVolumes[st]*cfg.MasterVolume)
}
