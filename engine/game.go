// Package engine owns the typing router, the cast sequencer and the frame clock
// as one explicit service object driven by Tick
package engine

import (
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/combat"
	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/hangul"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
	"github.com/lixenwraith/typecast/status"
	"github.com/lixenwraith/typecast/typing"
)

// WordSupply hands out text for target (re)assignment
// An empty result is replaced by the script's placeholder word
type WordSupply interface {
	Next(script match.Script) string
}

// exclusiveSupply is a WordSupply that can skip words already on screen
type exclusiveSupply interface {
	NextExcept(script match.Script, live map[string]bool) string
}

type placeholderSupply struct{}

func (placeholderSupply) Next(script match.Script) string { return match.Placeholder(script) }

// Deps are the collaborators a Game acts through
// World and Combat are required
type Deps struct {
	World   combat.World
	Combat  combat.Combat
	Actor   combat.Actor
	Words   WordSupply
	Scoring typing.Scoring
	Metrics *status.Registry
	Logger  zerolog.Logger
}

// Settings are the tunables of a Game
type Settings struct {
	Script         match.Script
	QueueEnabled   bool
	QueueCapacity  int
	CastTimeout    time.Duration
	ReassignDelay  time.Duration
	SmoothRotation bool
	AllowBackspace bool
	TypoEffect     time.Duration
}

// DefaultSettings returns the compiled-in defaults
func DefaultSettings() Settings {
	return Settings{
		Script:         match.ScriptLatin,
		QueueEnabled:   parameter.CombatQueueEnabled,
		QueueCapacity:  parameter.CombatQueueCapacity,
		CastTimeout:    parameter.CombatCastTimeout,
		ReassignDelay:  parameter.TypingReassignDelay,
		SmoothRotation: parameter.CombatSmoothRotation,
		AllowBackspace: parameter.TypingAllowBackspace,
		TypoEffect:     parameter.TypingTypoEffectDuration,
	}
}

// Game is the single service object wiring input classification to combat
// All methods run on the game goroutine; the event queue is the only concurrent entry point
type Game struct {
	settings Settings

	router     *typing.Router
	sequencer  *combat.Sequencer
	events     *event.EventQueue
	dispatcher *event.Router[event.Tick]
	scheduler  *Scheduler

	world   combat.World
	words   WordSupply
	metrics *status.Registry
	log     zerolog.Logger

	pending map[match.TargetID]TaskID
	frame   int64
}

// NewGame wires a router and sequencer around deps
func NewGame(deps Deps, settings Settings) *Game {
	if deps.Words == nil {
		deps.Words = placeholderSupply{}
	}
	if deps.Metrics == nil {
		deps.Metrics = status.NewRegistry()
	}

	g := &Game{
		settings:  settings,
		events:    event.NewEventQueue(),
		scheduler: NewScheduler(),
		world:     deps.World,
		words:     deps.Words,
		metrics:   deps.Metrics,
		log:       deps.Logger,
		pending:   make(map[match.TargetID]TaskID),
	}
	g.dispatcher = event.NewRouter[event.Tick](g.events)

	g.router = typing.NewRouter(
		typing.WithScript(settings.Script),
		typing.WithAllowBackspace(settings.AllowBackspace),
		typing.WithTypoEffect(settings.TypoEffect),
		typing.WithScoring(deps.Scoring),
		typing.WithReassigner(g),
		typing.WithEvents(g.events),
		typing.WithMetrics(deps.Metrics),
		typing.WithFrameCounter(g.Frame),
		typing.WithLogger(deps.Logger.With().Str("component", "typing").Logger()),
	)

	g.sequencer = combat.NewSequencer(deps.World, deps.Combat,
		combat.WithActor(deps.Actor),
		combat.WithQueue(settings.QueueEnabled, settings.QueueCapacity),
		combat.WithTimeout(settings.CastTimeout),
		combat.WithSmoothRotation(settings.SmoothRotation),
		combat.WithEvents(g.events),
		combat.WithMetrics(deps.Metrics),
		combat.WithFrameCounter(g.Frame),
		combat.WithLogger(deps.Logger.With().Str("component", "combat").Logger()),
	)
	g.dispatcher.Register(g.sequencer)

	return g
}

// Subscribe registers an adapter for events dispatched each Tick
// Handlers run after the sequencer for the same event
func (g *Game) Subscribe(h event.Handler[event.Tick]) {
	g.dispatcher.Register(h)
}

func (g *Game) Router() *typing.Router       { return g.router }
func (g *Game) Sequencer() *combat.Sequencer { return g.sequencer }
func (g *Game) Events() *event.EventQueue    { return g.events }
func (g *Game) Metrics() *status.Registry    { return g.metrics }
func (g *Game) Scheduler() *Scheduler        { return g.scheduler }
func (g *Game) Frame() int64                 { return g.frame }
func (g *Game) Targets() []*match.Target     { return g.router.Targets() }
func (g *Game) Script() match.Script         { return g.router.Script() }
func (g *Game) TypoActive() bool             { return g.router.TypoActive() }

// Register adds an externally built target
func (g *Game) Register(t *match.Target) {
	g.router.Register(t)
}

// Unregister removes a target and cancels its pending reassignment
func (g *Game) Unregister(id match.TargetID) {
	g.router.Unregister(id)
	if task, ok := g.pending[id]; ok {
		g.scheduler.Cancel(task)
		delete(g.pending, id)
	}
}

// Spawn creates and registers a target for entity id with a fresh word
func (g *Game) Spawn(id match.TargetID, display match.Display) *match.Target {
	t := match.NewTarget(id, g.nextWord(), display)
	g.router.Register(t)
	g.log.Debug().Uint64("target", uint64(id)).Str("word", t.Word().Text).Msg("target spawned")
	return t
}

// SubmitSymbol classifies one symbol across all targets
func (g *Game) SubmitSymbol(s match.Symbol) typing.Result {
	return g.router.SubmitSymbol(s)
}

// SubmitBackspace broadcasts a backspace; false when disabled
func (g *Game) SubmitBackspace() bool {
	return g.router.SubmitBackspace()
}

// SubmitKey translates a physical key for the active script and submits it
// In Hangul mode keys map through the 2-set layout, jamo pass through and
// syllables committed by an input method are split and submitted jamo by jamo
// In Latin mode Hangul input is refused and reported as a script mismatch
// Returns false when the key produced no symbol
func (g *Game) SubmitKey(key rune, shift bool) (typing.Result, bool) {
	if g.router.Script() == match.ScriptHangul {
		if hangul.IsJamo(key) {
			return g.router.SubmitSymbol(key), true
		}
		if hangul.IsSyllable(key) {
			return g.submitSyllable(key), true
		}
		jamo, ok := hangul.KeyToJamo(key, shift)
		if !ok {
			return typing.Result{}, false
		}
		return g.router.SubmitSymbol(jamo), true
	}

	if hangul.IsSyllable(key) || hangul.IsJamo(key) {
		g.events.Emit(event.EventScriptMismatch, nil, g.frame)
		g.log.Warn().Str("key", string(key)).Msg("hangul input in latin mode, check input method")
		return typing.Result{}, false
	}
	if !unicode.IsLetter(key) {
		return typing.Result{}, false
	}
	return g.router.SubmitSymbol(key), true
}

func (g *Game) submitSyllable(syllable rune) typing.Result {
	var res typing.Result
	for _, jamo := range hangul.Split(string(syllable)) {
		r := g.router.SubmitSymbol(jamo)
		res.Accepted = append(res.Accepted, r.Accepted...)
		res.Completed = append(res.Completed, r.Completed...)
		res.GlobalTypo = res.GlobalTypo || r.GlobalTypo
		for id, progress := range r.Typos {
			if res.Typos == nil {
				res.Typos = make(map[match.TargetID]int)
			}
			res.Typos[id] = progress
		}
	}
	return res
}

// SetScript switches input mode and gives every registered target a word in the new script
func (g *Game) SetScript(script match.Script) {
	if script == g.router.Script() {
		return
	}
	g.router.SetScript(script)
	for _, t := range g.router.Targets() {
		g.assign(t)
	}
	g.log.Info().Str("script", script.String()).Msg("script changed")
}

// FireCue forwards the animation's fire point to the sequencer
func (g *Game) FireCue() { g.sequencer.FireCue() }

// AnimationDone forwards the end of the cast animation to the sequencer
func (g *Game) AnimationDone() { g.sequencer.AnimationDone() }

// PlayerHit queues an interrupt for the open cast, applied on the next Tick
// hp is the player's remaining hit points after the strike
// Every call interrupts; the world is expected to gate strikes during invincibility
func (g *Game) PlayerHit(hp int) {
	g.events.Emit(event.EventPlayerHit, &event.PlayerHitPayload{HP: hp}, g.frame)
}

// Tick advances one frame: dispatch queued events, resume due waits,
// advance the cast session, then decay the typo effect
func (g *Game) Tick(dt time.Duration) {
	g.frame++
	g.dispatcher.DispatchAll(event.Tick{Frame: g.frame, DT: dt})
	g.scheduler.Update(dt)
	g.sequencer.Update(dt)
	g.router.Update(dt)
}

// ScheduleReassign implements typing.Reassigner
// The target gets a fresh word after the reassign delay, only if its entity is still valid
func (g *Game) ScheduleReassign(t *match.Target) {
	id := t.ID()
	g.pending[id] = g.scheduler.After(g.settings.ReassignDelay, func() {
		delete(g.pending, id)
		if !combat.IsValid(g.world, id) {
			g.log.Debug().Uint64("target", uint64(id)).Msg("reassign skipped, entity gone")
			return
		}
		g.assign(t)
		g.router.Register(t)
	})
}

func (g *Game) assign(t *match.Target) {
	t.Reassign(g.nextWord())
	g.events.Emit(event.EventTargetReassigned, &event.TargetReassignedPayload{
		Target: t.ID(),
		Word:   t.Word().Text,
	}, g.frame)
}

// nextWord draws a word, avoiding those held by registered targets when the supply supports it
func (g *Game) nextWord() match.Word {
	script := g.router.Script()
	if ex, ok := g.words.(exclusiveSupply); ok {
		return match.NewWord(ex.NextExcept(script, g.liveWords()), script)
	}
	return match.NewWord(g.words.Next(script), script)
}

func (g *Game) liveWords() map[string]bool {
	targets := g.router.Targets()
	live := make(map[string]bool, len(targets))
	for _, t := range targets {
		live[t.Word().Text] = true
	}
	return live
}
