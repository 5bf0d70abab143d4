package arena

import (
	"time"

	"github.com/lixenwraith/typecast/match"
)

// Enemy is one slot around the player
// It implements combat.Liveness
type Enemy struct {
	id     match.TargetID
	angle  float64 // Degrees, 0 = east, counter-clockwise
	hp     int
	maxHP  int
	active bool

	attackIn  time.Duration
	respawnIn time.Duration

	label *Label
}

func (e *Enemy) ID() match.TargetID { return e.id }
func (e *Enemy) Angle() float64     { return e.angle }
func (e *Enemy) IsDead() bool       { return e.hp <= 0 }
func (e *Enemy) HitPoints() int     { return e.hp }
func (e *Enemy) MaxHitPoints() int  { return e.maxHP }
func (e *Enemy) Active() bool       { return e.active }
func (e *Enemy) Label() *Label      { return e.label }

// RespawnIn returns the time until a dead enemy revives
func (e *Enemy) RespawnIn() time.Duration { return e.respawnIn }
