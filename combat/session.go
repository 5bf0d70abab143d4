package combat

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/typecast/match"
)

// Phase is the position of a cast session in its lifecycle
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRotating
	PhaseAnimating
	PhaseFired
	PhaseDone
)

var phaseNames = [...]string{"idle", "rotating", "animating", "fired", "done"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Outcome records how a session reached Done
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	// OutcomeFired: Fire was called at the fire cue
	OutcomeFired
	// OutcomeSkipped: the animation finished without firing
	OutcomeSkipped
	// OutcomeAborted: the target failed revalidation before rotation or animation
	OutcomeAborted
	// OutcomeTimedOut: the deadline passed before the animation finished
	OutcomeTimedOut
	// OutcomeInterrupted: the caster was hit
	OutcomeInterrupted
)

var outcomeNames = [...]string{"none", "fired", "skipped", "aborted", "timed_out", "interrupted"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Session is one exclusive cast against a single target
type Session struct {
	ID       uuid.UUID
	Target   match.TargetID
	Phase    Phase
	Outcome  Outcome
	Elapsed  time.Duration
	Deadline time.Duration

	rotationLeft time.Duration
	fired        bool
}

func newSession(target match.TargetID, deadline time.Duration) *Session {
	return &Session{
		ID:       uuid.New(),
		Target:   target,
		Phase:    PhaseRotating,
		Deadline: deadline,
	}
}

// Expired reports whether the session ran past its deadline
func (s *Session) Expired() bool {
	return s.Deadline > 0 && s.Elapsed >= s.Deadline
}
