// Package combat serializes completed words into single-flight cast sessions
package combat

import (
	"time"

	"github.com/lixenwraith/typecast/match"
)

// Liveness exposes the state a cast checks before acting on a target
type Liveness interface {
	IsDead() bool
	HitPoints() int
	Active() bool
}

// World resolves target ids to live entities
type World interface {
	Lookup(id match.TargetID) (Liveness, bool)
}

// Combat applies the attack; Fire is the only world effect of a cast
type Combat interface {
	Fire(id match.TargetID)
}

// Actor drives the caster's presentation
type Actor interface {
	// RotationTime returns how long turning toward id takes; 0 is instantaneous
	RotationTime(id match.TargetID) time.Duration
	PlayCast(id match.TargetID)
	CancelCast()
}

type nopActor struct{}

func (nopActor) RotationTime(match.TargetID) time.Duration { return 0 }
func (nopActor) PlayCast(match.TargetID)                   {}
func (nopActor) CancelCast()                               {}

// IsValid reports whether id still refers to an active, living entity
func IsValid(w World, id match.TargetID) bool {
	l, ok := w.Lookup(id)
	if !ok || l == nil {
		return false
	}
	return l.Active() && !l.IsDead() && l.HitPoints() > 0
}
