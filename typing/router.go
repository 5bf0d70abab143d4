// Package typing routes each keystroke across every live target and classifies mistakes
package typing

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
	"github.com/lixenwraith/typecast/status"
)

// Scoring is notified once per confirmed global typo
type Scoring interface {
	OnGlobalTypo()
}

// Reassigner receives completed targets so a fresh word can be scheduled
// The target is already unregistered when ScheduleReassign is called
type Reassigner interface {
	ScheduleReassign(t *match.Target)
}

// Result is the outcome of one classification pass
type Result struct {
	Accepted   []match.TargetID
	Typos      map[match.TargetID]int // Progress before reset
	GlobalTypo bool
	Completed  []match.TargetID
}

// Router holds the target registry and runs the per-keystroke broadcast
// Not safe for concurrent use; owned by the game loop
type Router struct {
	targets map[match.TargetID]*match.Target
	order   []match.TargetID

	script         match.Script
	allowBackspace bool

	typoEffect    time.Duration
	typoRemaining time.Duration
	frame         func() int64

	scoring    Scoring
	reassigner Reassigner
	events     *event.EventQueue
	log        zerolog.Logger

	statKeystrokes  *atomic.Int64
	statGlobalTypos *atomic.Int64
	statIndividual  *atomic.Int64
	statCompleted   *atomic.Int64
	statAccuracy    *status.AtomicFloat
	statTypoActive  *atomic.Bool
	statScript      *status.AtomicString
}

// Option configures a Router
type Option func(*Router)

func WithScoring(s Scoring) Option { return func(r *Router) { r.scoring = s } }

func WithReassigner(re Reassigner) Option { return func(r *Router) { r.reassigner = re } }

// WithEvents sets the queue receiving WordCompleted and GlobalTypo events
func WithEvents(q *event.EventQueue) Option { return func(r *Router) { r.events = q } }

func WithLogger(log zerolog.Logger) Option { return func(r *Router) { r.log = log } }

func WithAllowBackspace(allow bool) Option { return func(r *Router) { r.allowBackspace = allow } }

func WithTypoEffect(d time.Duration) Option { return func(r *Router) { r.typoEffect = d } }

func WithScript(s match.Script) Option { return func(r *Router) { r.script = s } }

// WithFrameCounter stamps emitted events with the owner's frame number
func WithFrameCounter(frame func() int64) Option { return func(r *Router) { r.frame = frame } }

// WithMetrics publishes counters into reg instead of a private registry
func WithMetrics(reg *status.Registry) Option {
	return func(r *Router) { r.bindMetrics(reg) }
}

// NewRouter creates an empty router
func NewRouter(opts ...Option) *Router {
	r := &Router{
		targets:        make(map[match.TargetID]*match.Target),
		allowBackspace: parameter.TypingAllowBackspace,
		typoEffect:     parameter.TypingTypoEffectDuration,
		frame:          func() int64 { return 0 },
		log:            zerolog.Nop(),
	}
	r.bindMetrics(status.NewRegistry())
	for _, opt := range opts {
		opt(r)
	}
	r.statScript.Store(r.script.String())
	return r
}

func (r *Router) bindMetrics(reg *status.Registry) {
	r.statKeystrokes = reg.Counters.Get(status.MetricKeystrokes)
	r.statGlobalTypos = reg.Counters.Get(status.MetricGlobalTypos)
	r.statIndividual = reg.Counters.Get(status.MetricIndividualTypos)
	r.statCompleted = reg.Counters.Get(status.MetricWordsCompleted)
	r.statAccuracy = reg.Gauges.Get(status.MetricAccuracy)
	r.statTypoActive = reg.Flags.Get(status.MetricTypoActive)
	r.statScript = reg.Labels.Get(status.MetricScript)
}

// Register adds a target, replacing any target with the same id in place
func (r *Router) Register(t *match.Target) {
	if t == nil {
		return
	}
	if _, exists := r.targets[t.ID()]; !exists {
		r.order = append(r.order, t.ID())
	}
	r.targets[t.ID()] = t
}

// Unregister removes a target; unknown ids are ignored
func (r *Router) Unregister(id match.TargetID) {
	if _, exists := r.targets[id]; !exists {
		return
	}
	delete(r.targets, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Lookup returns a registered target
func (r *Router) Lookup(id match.TargetID) (*match.Target, bool) {
	t, ok := r.targets[id]
	return t, ok
}

// Len returns the number of registered targets
func (r *Router) Len() int { return len(r.order) }

// Targets returns a registration-ordered snapshot of the registry
func (r *Router) Targets() []*match.Target {
	snapshot := make([]*match.Target, 0, len(r.order))
	for _, id := range r.order {
		snapshot = append(snapshot, r.targets[id])
	}
	return snapshot
}

// Script returns the active input script
func (r *Router) Script() match.Script { return r.script }

// SetScript switches input mode; registered words are left untouched
func (r *Router) SetScript(s match.Script) {
	r.script = s
	r.statScript.Store(s.String())
}

// TypoActive reports whether the global typo effect is still showing
func (r *Router) TypoActive() bool { return r.typoRemaining > 0 }

// Update advances the typo effect timer by one frame
func (r *Router) Update(dt time.Duration) {
	if r.typoRemaining <= 0 {
		return
	}
	r.typoRemaining -= dt
	if r.typoRemaining <= 0 {
		r.typoRemaining = 0
		r.statTypoActive.Store(false)
	}
}

// SubmitSymbol resolves one symbol against every registered target in a single pass
// Targets registered during the pass do not see the symbol
func (r *Router) SubmitSymbol(s match.Symbol) Result {
	s = match.Fold(s)
	snapshot := r.Targets()
	res := Result{Typos: make(map[match.TargetID]int)}
	if len(snapshot) == 0 {
		return res
	}
	r.statKeystrokes.Add(1)

	prev := make([]int, len(snapshot))
	for i, t := range snapshot {
		prev[i] = t.Progress()
	}

	var accepting, typos []*match.Target
	for i, t := range snapshot {
		if t.Completed() {
			continue
		}
		if t.Accept(s) {
			accepting = append(accepting, t)
			res.Accepted = append(res.Accepted, t.ID())
			continue
		}
		// Missing the first letter among several candidates is not a mistake
		if prev[i] > 0 {
			t.TriggerIndividualTypo()
			typos = append(typos, t)
			res.Typos[t.ID()] = prev[i]
			r.statIndividual.Add(1)
		}
	}

	if IsGlobalTypo(accepting, res.Typos) {
		res.GlobalTypo = true
		r.raiseGlobalTypo(s, typos, res.Typos)
	}

	// Runs even after a global typo; the keystroke that finished a word still completes it
	res.Completed = r.completionScan(snapshot)

	r.statAccuracy.Ratio(r.statKeystrokes.Load()-r.statGlobalTypos.Load(), r.statKeystrokes.Load())

	r.log.Debug().
		Str("symbol", string(s)).
		Int("targets", len(snapshot)).
		Int("accepted", len(res.Accepted)).
		Int("typos", len(res.Typos)).
		Bool("global_typo", res.GlobalTypo).
		Int("completed", len(res.Completed)).
		Msg("symbol classified")

	return res
}

// IsGlobalTypo applies the Global Typo Rule to one pass
// typos maps each reset target to its progress before the reset
// A pass is a global typo when some reset target had reached the significant threshold
// and no accepting target is now strictly ahead of the furthest reset target
func IsGlobalTypo(accepting []*match.Target, typos map[match.TargetID]int) bool {
	maxTypoProgress := 0
	significant := false
	for _, p := range typos {
		if p >= parameter.TypingSignificantProgress {
			significant = true
		}
		maxTypoProgress = max(maxTypoProgress, p)
	}
	if !significant {
		return false
	}
	for _, t := range accepting {
		if t.Progress() > maxTypoProgress {
			return false
		}
	}
	return true
}

func (r *Router) raiseGlobalTypo(s match.Symbol, typos []*match.Target, progress map[match.TargetID]int) {
	for _, t := range typos {
		t.ShowTypo()
	}
	if r.scoring != nil {
		r.scoring.OnGlobalTypo()
	}
	r.statGlobalTypos.Add(1)

	r.typoRemaining = r.typoEffect
	r.statTypoActive.Store(r.typoEffect > 0)

	if r.events != nil {
		r.events.Emit(event.EventGlobalTypo, &event.GlobalTypoPayload{
			Symbol:  s,
			Targets: progress,
		}, r.frame())
	}

	r.log.Info().Str("symbol", string(s)).Int("targets", len(typos)).Msg("global typo")
}

func (r *Router) completionScan(snapshot []*match.Target) []match.TargetID {
	var completed []match.TargetID
	for _, t := range snapshot {
		if !t.IsComplete() {
			continue
		}
		t.MarkCompleted()
		r.Unregister(t.ID())
		completed = append(completed, t.ID())
		r.statCompleted.Add(1)

		if r.events != nil {
			r.events.Emit(event.EventWordCompleted, &event.WordCompletedPayload{
				Target: t.ID(),
				Word:   t.Word().Text,
			}, r.frame())
		}
		if r.reassigner != nil {
			r.reassigner.ScheduleReassign(t)
		}

		r.log.Debug().Uint64("target", uint64(t.ID())).Str("word", t.Word().Text).Msg("word completed")
	}
	return completed
}

// SubmitBackspace removes one typed symbol from every registered target
// Returns false when backspace is disabled
func (r *Router) SubmitBackspace() bool {
	if !r.allowBackspace {
		return false
	}
	for _, t := range r.Targets() {
		t.Backspace()
	}
	return true
}
