package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/parameter"
)

// Player mixes cue sounds into the system speaker
// Before Start, cues accumulate in Mixer for the caller to drain
type Player struct {
	mu      sync.Mutex
	cfg     *Config
	mixer   *beep.Mixer
	started bool

	muted  atomic.Bool
	played [soundTypeCount]atomic.Int64

	log zerolog.Logger
}

// Option configures a Player
type Option func(*Player)

func WithLogger(log zerolog.Logger) Option { return func(p *Player) { p.log = log } }

// NewPlayer creates a player; a nil cfg uses DefaultConfig
func NewPlayer(cfg *Config, opts ...Option) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Start opens the speaker and begins streaming the mixer
// Failure leaves the player usable but silent
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	p.log.Debug().Int("rate", p.cfg.SampleRate).Msg("audio started")
	return nil
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.mixer.Clear()
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

// Play queues st; returns false when muted or st is unknown
func (p *Player) Play(st SoundType) bool {
	if p.muted.Load() {
		return false
	}
	s := Effect(st, p.cfg)
	if s == nil {
		return false
	}

	p.mu.Lock()
	if p.started {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	} else {
		p.mixer.Add(s)
	}
	p.mu.Unlock()

	p.played[st].Add(1)
	return true
}

// ToggleMute flips mute, returns true if sound is now on
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

func (p *Player) IsMuted() bool { return p.muted.Load() }

// Mixer exposes the underlying mixer
func (p *Player) Mixer() *beep.Mixer { return p.mixer }

// Played returns how many times st was queued
func (p *Player) Played(st SoundType) int64 {
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return p.played[st].Load()
}

// EventTypes implements event.Handler
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGlobalTypo,
		event.EventWordCompleted,
		event.EventCastFired,
		event.EventEnemyDied,
		event.EventPlayerHit,
	}
}

// HandleEvent maps engine events to cues
func (p *Player) HandleEvent(_ event.Tick, ev event.GameEvent) {
	switch ev.Type {
	case event.EventGlobalTypo:
		p.Play(SoundTypo)
	case event.EventWordCompleted:
		p.Play(SoundComplete)
	case event.EventCastFired:
		p.Play(SoundFire)
	case event.EventEnemyDied:
		p.Play(SoundKill)
	case event.EventPlayerHit:
		p.Play(SoundHit)
	}
}
