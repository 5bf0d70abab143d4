// Package arena simulates the enemies a player fights, standing in for the game world
// It supplies liveness, the fire effect and the caster's rotation and cast animation
package arena

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/combat"
	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
	"github.com/lixenwraith/typecast/status"
)

// Host is the engine surface the arena drives
type Host interface {
	Spawn(id match.TargetID, display match.Display) *match.Target
	Unregister(id match.TargetID)
	FireCue()
	AnimationDone()
	PlayerHit(hp int)
	Events() *event.EventQueue
	Frame() int64
}

type castAnim struct {
	target  match.TargetID
	elapsed time.Duration
	cued    bool
}

// Arena owns the enemy slots and the caster's facing
// It implements combat.World, combat.Combat and combat.Actor
type Arena struct {
	enemies []*Enemy
	byID    map[match.TargetID]*Enemy

	facing        float64
	aim           float64
	rotationSpeed float64 // Degrees per second

	cast          *castAnim
	castAnimation time.Duration

	damage         int
	attackInterval time.Duration
	respawnDelay   time.Duration

	host   Host
	events *event.EventQueue
	frame  func() int64
	log    zerolog.Logger

	playerHP        int
	playerMaxHP     int
	playerDamage    int
	invincibility   time.Duration
	invincibleFor   time.Duration
	playerHits      int
	absorbedAttacks int

	statKills *atomic.Int64
}

// Option configures an Arena
type Option func(*Arena)

func WithDamage(d int) Option { return func(a *Arena) { a.damage = d } }

// WithAttackInterval sets how often each enemy hits the player; 0 disables attacks
func WithAttackInterval(d time.Duration) Option { return func(a *Arena) { a.attackInterval = d } }

func WithRespawnDelay(d time.Duration) Option { return func(a *Arena) { a.respawnDelay = d } }

// WithCastAnimation sets the simulated animation length; the fire cue lands at its midpoint
func WithCastAnimation(d time.Duration) Option { return func(a *Arena) { a.castAnimation = d } }

func WithRotationSpeed(degPerSec float64) Option { return func(a *Arena) { a.rotationSpeed = degPerSec } }

// WithPlayerHP sets the player's starting and maximum hit points
func WithPlayerHP(hp int) Option { return func(a *Arena) { a.playerMaxHP = hp } }

// WithPlayerDamage sets hit points lost per enemy strike
func WithPlayerDamage(d int) Option { return func(a *Arena) { a.playerDamage = d } }

// WithInvincibility sets the grace window after a hit; 0 lets every strike land
func WithInvincibility(d time.Duration) Option { return func(a *Arena) { a.invincibility = d } }

func WithLogger(log zerolog.Logger) Option { return func(a *Arena) { a.log = log } }

func WithMetrics(reg *status.Registry) Option {
	return func(a *Arena) { a.statKills = reg.Counters.Get(status.MetricKills) }
}

// New creates count enemies spaced evenly around the player
// Ids start at 1
func New(count int, opts ...Option) *Arena {
	a := &Arena{
		byID:           make(map[match.TargetID]*Enemy, count),
		rotationSpeed:  parameter.CombatRotationSpeed,
		castAnimation:  parameter.EnemyCastAnimation,
		damage:         parameter.CombatDamageSpell,
		attackInterval: parameter.EnemyAttackInterval,
		respawnDelay:   parameter.EnemyRespawnDelay,
		playerMaxHP:    parameter.PlayerInitialHP,
		playerDamage:   parameter.PlayerHitDamage,
		invincibility:  parameter.PlayerInvincibleDuration,
		frame:          func() int64 { return 0 },
		log:            zerolog.Nop(),
		statKills:      status.NewRegistry().Counters.Get(status.MetricKills),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.playerHP = a.playerMaxHP

	for i := 0; i < count; i++ {
		e := &Enemy{
			id:     match.TargetID(i + 1),
			angle:  float64(i) * 360 / float64(count),
			hp:     parameter.EnemyInitialHP,
			maxHP:  parameter.EnemyInitialHP,
			active: true,
			label:  &Label{},
		}
		// Stagger attacks so enemies do not strike together
		e.attackIn = a.attackInterval + time.Duration(i)*a.attackInterval/time.Duration(max(count, 1))
		a.enemies = append(a.enemies, e)
		a.byID[e.id] = e
	}
	return a
}

// Attach binds the engine and registers a target for every living enemy
func (a *Arena) Attach(host Host) {
	a.host = host
	a.events = host.Events()
	a.frame = host.Frame
	for _, e := range a.enemies {
		if e.active {
			host.Spawn(e.id, e.label)
		}
	}
}

// Enemies returns the enemy slots in id order
func (a *Arena) Enemies() []*Enemy { return a.enemies }

// Facing returns the caster's current heading in degrees
func (a *Arena) Facing() float64 { return a.facing }

// Casting reports the target of the running cast animation
func (a *Arena) Casting() (match.TargetID, bool) {
	if a.cast == nil {
		return 0, false
	}
	return a.cast.target, true
}

// Kills returns enemies defeated so far
func (a *Arena) Kills() int64 { return a.statKills.Load() }

// PlayerHits returns how many strikes landed on the player
func (a *Arena) PlayerHits() int { return a.playerHits }

// AbsorbedAttacks returns strikes ignored during invincibility or after defeat
func (a *Arena) AbsorbedAttacks() int { return a.absorbedAttacks }

// PlayerHP returns the player's current and maximum hit points
func (a *Arena) PlayerHP() (hp, maxHP int) { return a.playerHP, a.playerMaxHP }

// Invincible reports whether the post-hit grace window is open
func (a *Arena) Invincible() bool { return a.invincibleFor > 0 }

// Defeated reports whether the player ran out of hit points
func (a *Arena) Defeated() bool { return a.playerHP <= 0 }

// Lookup implements combat.World
func (a *Arena) Lookup(id match.TargetID) (combat.Liveness, bool) {
	e, ok := a.byID[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// Fire implements combat.Combat
func (a *Arena) Fire(id match.TargetID) {
	a.hit(id, a.damage)
}

// Kill defeats an enemy outside of combat, as another damage source would
func (a *Arena) Kill(id match.TargetID) {
	if e, ok := a.byID[id]; ok {
		a.hit(id, e.hp)
	}
}

func (a *Arena) hit(id match.TargetID, damage int) {
	e, ok := a.byID[id]
	if !ok || e.IsDead() {
		return
	}
	e.hp = max(e.hp-damage, 0)
	a.log.Debug().Uint64("target", uint64(id)).Int("hp", e.hp).Msg("enemy hit")

	if e.hp > 0 {
		return
	}
	e.active = false
	e.respawnIn = a.respawnDelay
	a.statKills.Add(1)
	if a.host != nil {
		a.host.Unregister(id)
	}
	if a.events != nil {
		a.events.Emit(event.EventEnemyDied, &event.EnemyDiedPayload{Target: id}, a.frame())
	}
	a.log.Info().Uint64("target", uint64(id)).Msg("enemy defeated")
}

// RotationTime implements combat.Actor
func (a *Arena) RotationTime(id match.TargetID) time.Duration {
	e, ok := a.byID[id]
	if !ok {
		return 0
	}
	a.aim = e.angle
	if a.rotationSpeed <= 0 {
		a.facing = a.aim
		return 0
	}
	return time.Duration(angleDelta(a.facing, a.aim) / a.rotationSpeed * float64(time.Second))
}

// PlayCast implements combat.Actor
func (a *Arena) PlayCast(id match.TargetID) {
	if e, ok := a.byID[id]; ok {
		a.aim = e.angle
		a.facing = e.angle
	}
	a.cast = &castAnim{target: id}
}

// CancelCast implements combat.Actor
func (a *Arena) CancelCast() {
	a.cast = nil
}

// Update advances rotation, the cast animation, enemy attacks and respawns
func (a *Arena) Update(dt time.Duration) {
	a.rotate(dt)
	a.animate(dt)
	if a.invincibleFor > 0 {
		a.invincibleFor = max(a.invincibleFor-dt, 0)
	}

	for _, e := range a.enemies {
		if !e.active {
			e.respawnIn -= dt
			if e.respawnIn <= 0 {
				a.respawn(e)
			}
			continue
		}
		if a.attackInterval <= 0 {
			continue
		}
		e.attackIn -= dt
		if e.attackIn <= 0 {
			e.attackIn += a.attackInterval
			a.strikePlayer(e.id)
		}
	}
}

// strikePlayer applies one enemy attack unless the player is invincible or already defeated
// A landed strike opens the grace window and interrupts the open cast through the host
func (a *Arena) strikePlayer(from match.TargetID) {
	if a.Defeated() || a.Invincible() {
		a.absorbedAttacks++
		return
	}
	a.playerHP = max(a.playerHP-a.playerDamage, 0)
	a.playerHits++
	a.invincibleFor = a.invincibility
	a.log.Debug().Uint64("enemy", uint64(from)).Int("hp", a.playerHP).Msg("player hit")

	if a.host != nil {
		a.host.PlayerHit(a.playerHP)
	}
	if a.playerHP > 0 {
		return
	}
	if a.events != nil {
		a.events.Emit(event.EventPlayerDefeated, &event.PlayerDefeatedPayload{Hits: a.playerHits}, a.frame())
	}
	a.log.Info().Int("hits", a.playerHits).Msg("player defeated")
}

func (a *Arena) rotate(dt time.Duration) {
	delta := angleDelta(a.facing, a.aim)
	if delta == 0 {
		return
	}
	step := a.rotationSpeed * dt.Seconds()
	if a.rotationSpeed <= 0 || step >= delta {
		a.facing = a.aim
		return
	}
	// Turn along the shorter arc
	diff := math.Mod(a.aim-a.facing+540, 360) - 180
	a.facing = math.Mod(a.facing+math.Copysign(step, diff)+360, 360)
}

func (a *Arena) animate(dt time.Duration) {
	c := a.cast
	if c == nil {
		return
	}
	c.elapsed += dt
	if !c.cued && c.elapsed >= a.castAnimation/2 {
		c.cued = true
		if a.host != nil {
			a.host.FireCue()
		}
	}
	// FireCue may have cancelled this cast or started another
	if a.cast == c && c.elapsed >= a.castAnimation {
		a.cast = nil
		if a.host != nil {
			a.host.AnimationDone()
		}
	}
}

func (a *Arena) respawn(e *Enemy) {
	e.hp = e.maxHP
	e.active = true
	e.respawnIn = 0
	e.attackIn = a.attackInterval
	if a.host != nil {
		a.host.Spawn(e.id, e.label)
	}
	a.log.Debug().Uint64("target", uint64(e.id)).Msg("enemy respawned")
}

// angleDelta returns the unsigned shortest angle between two headings
func angleDelta(from, to float64) float64 {
	d := math.Abs(math.Mod(to-from, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}
