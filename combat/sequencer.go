package combat

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
	"github.com/lixenwraith/typecast/status"
)

// EnqueueResult reports what happened to a completed word handed to the sequencer
type EnqueueResult uint8

const (
	// EnqueueQueued: waiting behind the current session
	EnqueueQueued EnqueueResult = iota
	// EnqueueStarted: a session opened immediately
	EnqueueStarted
	// EnqueueSkipped: the target was already invalid, no session opened
	EnqueueSkipped
	// EnqueueDropped: the queue was full, or busy with queueing disabled
	EnqueueDropped
)

func (r EnqueueResult) String() string {
	switch r {
	case EnqueueQueued:
		return "queued"
	case EnqueueStarted:
		return "started"
	case EnqueueSkipped:
		return "skipped"
	default:
		return "dropped"
	}
}

// Sequencer turns completed words into a strictly serialized series of casts
//
// Phases: Idle → Rotating → Animating → Fired → Done → Idle
//   - Target revalidated before rotation, before animation, and at the fire cue
//   - Deadline checked on every Update; expiry forces Done from any phase
//   - Interrupt forces Done from any phase
//
// Not safe for concurrent use; owned by the game loop
type Sequencer struct {
	world  World
	combat Combat
	actor  Actor
	events *event.EventQueue
	log    zerolog.Logger

	queue          *Queue
	queueEnabled   bool
	timeout        time.Duration
	smoothRotation bool

	session *Session
	last    *Session
	frame   func() int64

	statFired    *atomic.Int64
	statDropped  *atomic.Int64
	statSkipped  *atomic.Int64
	statTimeouts *atomic.Int64
	statAborted  *atomic.Int64
	statQueueLen *atomic.Int64
	statPhase    *status.AtomicString
}

// Option configures a Sequencer
type Option func(*Sequencer)

func WithActor(a Actor) Option { return func(s *Sequencer) { s.actor = a } }

func WithEvents(q *event.EventQueue) Option { return func(s *Sequencer) { s.events = q } }

func WithLogger(log zerolog.Logger) Option { return func(s *Sequencer) { s.log = log } }

// WithQueue sets queueing mode and capacity
func WithQueue(enabled bool, capacity int) Option {
	return func(s *Sequencer) {
		s.queueEnabled = enabled
		s.queue = NewQueue(capacity)
	}
}

// WithTimeout sets the ceiling on a single session
// Non-positive values fall back to the default so every session stays bounded
func WithTimeout(d time.Duration) Option {
	return func(s *Sequencer) {
		if d <= 0 {
			d = parameter.CombatCastTimeout
		}
		s.timeout = d
	}
}

// WithSmoothRotation toggles waiting on Actor.RotationTime
func WithSmoothRotation(smooth bool) Option { return func(s *Sequencer) { s.smoothRotation = smooth } }

func WithMetrics(reg *status.Registry) Option {
	return func(s *Sequencer) { s.bindMetrics(reg) }
}

// WithFrameCounter stamps emitted events with the owner's frame number
func WithFrameCounter(frame func() int64) Option { return func(s *Sequencer) { s.frame = frame } }

// NewSequencer creates an idle sequencer acting on world through combat
func NewSequencer(world World, combat Combat, opts ...Option) *Sequencer {
	s := &Sequencer{
		world:          world,
		combat:         combat,
		actor:          nopActor{},
		log:            zerolog.Nop(),
		queue:          NewQueue(parameter.CombatQueueCapacity),
		queueEnabled:   parameter.CombatQueueEnabled,
		timeout:        parameter.CombatCastTimeout,
		smoothRotation: parameter.CombatSmoothRotation,
		frame:          func() int64 { return 0 },
	}
	s.bindMetrics(status.NewRegistry())
	for _, opt := range opts {
		opt(s)
	}
	if s.actor == nil {
		s.actor = nopActor{}
	}
	s.statPhase.Store(PhaseIdle.String())
	return s
}

func (s *Sequencer) bindMetrics(reg *status.Registry) {
	s.statFired = reg.Counters.Get(status.MetricFired)
	s.statDropped = reg.Counters.Get(status.MetricDropped)
	s.statSkipped = reg.Counters.Get(status.MetricSkipped)
	s.statTimeouts = reg.Counters.Get(status.MetricTimeouts)
	s.statAborted = reg.Counters.Get(status.MetricAborted)
	s.statQueueLen = reg.Counters.Get(status.MetricQueueLen)
	s.statPhase = reg.Labels.Get(status.MetricPhase)
}

// EventTypes implements event.Handler
func (s *Sequencer) EventTypes() []event.EventType {
	return []event.EventType{event.EventWordCompleted, event.EventPlayerHit}
}

// HandleEvent implements event.Handler
func (s *Sequencer) HandleEvent(_ event.Tick, ev event.GameEvent) {
	switch ev.Type {
	case event.EventWordCompleted:
		if p, ok := ev.Payload.(*event.WordCompletedPayload); ok {
			s.Enqueue(p.Target)
		}
	case event.EventPlayerHit:
		s.Interrupt()
	}
}

// Phase returns the current session phase, Idle when no session is open
func (s *Sequencer) Phase() Phase {
	if s.session == nil {
		return PhaseIdle
	}
	return s.session.Phase
}

// Current returns the open session, nil when idle
func (s *Sequencer) Current() *Session { return s.session }

// Last returns the most recently finished session
func (s *Sequencer) Last() *Session { return s.last }

// Pending returns the number of queued ids
func (s *Sequencer) Pending() int { return s.queue.Len() }

// Enqueue hands a completed target to the sequencer
// An idle sequencer opens the session at once; otherwise the id waits in the queue,
// or is dropped when the queue is full or queueing is disabled
func (s *Sequencer) Enqueue(id match.TargetID) EnqueueResult {
	if s.session == nil && s.queue.Len() == 0 {
		if !s.start(id) {
			return EnqueueSkipped
		}
		return EnqueueStarted
	}

	if !s.queueEnabled {
		s.drop(id, "busy")
		return EnqueueDropped
	}
	if !s.queue.Push(id) {
		s.drop(id, "full")
		return EnqueueDropped
	}
	s.statQueueLen.Store(int64(s.queue.Len()))
	return EnqueueQueued
}

// Update advances the open session by dt, then drains the queue if idle
func (s *Sequencer) Update(dt time.Duration) {
	if sess := s.session; sess != nil {
		sess.Elapsed += dt

		if sess.Expired() {
			s.timeoutSession()
		} else if sess.Phase == PhaseRotating {
			sess.rotationLeft -= dt
			if sess.rotationLeft <= 0 {
				s.beginAnimation()
			}
		}
	}
	s.pump()
}

// FireCue signals the point in the cast animation where the attack lands
func (s *Sequencer) FireCue() {
	sess := s.session
	if sess == nil || sess.Phase != PhaseAnimating {
		return
	}
	sess.Phase = PhaseFired
	s.statPhase.Store(PhaseFired.String())

	if !IsValid(s.world, sess.Target) {
		s.log.Debug().Uint64("target", uint64(sess.Target)).Msg("fire skipped, target invalid")
		return
	}
	sess.fired = true
	s.combat.Fire(sess.Target)
	s.statFired.Add(1)
	s.emit(event.EventCastFired, &event.CastFiredPayload{Session: sess.ID, Target: sess.Target})
}

// AnimationDone signals the cast animation finished
func (s *Sequencer) AnimationDone() {
	sess := s.session
	if sess == nil {
		return
	}
	switch sess.Phase {
	case PhaseAnimating, PhaseFired:
		s.finish(s.settledOutcome())
		s.pump()
	}
}

// Interrupt aborts the open session, typically because the caster was hit
// Queued ids are kept and the next one starts immediately
func (s *Sequencer) Interrupt() {
	if s.session == nil {
		return
	}
	s.actor.CancelCast()
	s.finish(OutcomeInterrupted)
	s.pump()
}

// Reset drops the open session and every queued id without firing
func (s *Sequencer) Reset() {
	if s.session != nil {
		s.actor.CancelCast()
		s.finish(OutcomeInterrupted)
	}
	s.queue.Clear()
	s.statQueueLen.Store(0)
}

// pump opens sessions from the queue until one stays open or the queue empties
func (s *Sequencer) pump() {
	for s.session == nil && s.queueEnabled {
		id, ok := s.queue.Pop()
		if !ok {
			return
		}
		s.statQueueLen.Store(int64(s.queue.Len()))
		s.start(id)
	}
}

// start validates id and opens a session; false when the id was skipped
func (s *Sequencer) start(id match.TargetID) bool {
	if !IsValid(s.world, id) {
		s.statSkipped.Add(1)
		s.log.Debug().Uint64("target", uint64(id)).Msg("dequeued target invalid, skipped")
		return false
	}

	sess := newSession(id, s.timeout)
	s.session = sess
	s.statPhase.Store(PhaseRotating.String())
	s.emit(event.EventCastStarted, &event.CastStartedPayload{Session: sess.ID, Target: id})
	s.log.Debug().Str("session", sess.ID.String()).Uint64("target", uint64(id)).Msg("cast started")

	// Checkpoint before rotation
	if !IsValid(s.world, id) {
		s.finish(OutcomeAborted)
		return true
	}

	if s.smoothRotation {
		sess.rotationLeft = s.actor.RotationTime(id)
	}
	if sess.rotationLeft <= 0 {
		s.beginAnimation()
	}
	return true
}

func (s *Sequencer) beginAnimation() {
	sess := s.session
	// Checkpoint before animation
	if !IsValid(s.world, sess.Target) {
		s.finish(OutcomeAborted)
		return
	}
	sess.Phase = PhaseAnimating
	s.statPhase.Store(PhaseAnimating.String())
	s.actor.PlayCast(sess.Target)
}

func (s *Sequencer) timeoutSession() {
	sess := s.session
	s.statTimeouts.Add(1)
	s.log.Warn().
		Str("session", sess.ID.String()).
		Str("phase", sess.Phase.String()).
		Dur("elapsed", sess.Elapsed).
		Msg("cast timed out, forcing completion")

	if sess.Phase == PhaseFired {
		s.actor.CancelCast()
		s.finish(s.settledOutcome())
		return
	}
	if sess.Phase == PhaseAnimating {
		s.actor.CancelCast()
	}
	s.finish(OutcomeTimedOut)
}

func (s *Sequencer) settledOutcome() Outcome {
	if s.session.fired {
		return OutcomeFired
	}
	return OutcomeSkipped
}

func (s *Sequencer) finish(outcome Outcome) {
	sess := s.session
	sess.Phase = PhaseDone
	sess.Outcome = outcome
	if outcome == OutcomeAborted {
		s.statAborted.Add(1)
	}

	s.emit(event.EventCastFinished, &event.CastFinishedPayload{
		Session:  sess.ID,
		Target:   sess.Target,
		Outcome:  outcome.String(),
		Duration: sess.Elapsed,
	})
	s.log.Debug().
		Str("session", sess.ID.String()).
		Uint64("target", uint64(sess.Target)).
		Str("outcome", outcome.String()).
		Msg("cast finished")

	s.last = sess
	s.session = nil
	s.statPhase.Store(PhaseIdle.String())
}

func (s *Sequencer) drop(id match.TargetID, reason string) {
	s.statDropped.Add(1)
	s.emit(event.EventAttackDropped, &event.AttackDroppedPayload{Target: id, Reason: reason})
	s.log.Debug().Uint64("target", uint64(id)).Str("reason", reason).Msg("attack dropped")
}

func (s *Sequencer) emit(t event.EventType, payload any) {
	if s.events != nil {
		s.events.Emit(t, payload, s.frame())
	}
}
