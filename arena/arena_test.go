package arena

import (
	"testing"
	"time"

	"github.com/lixenwraith/typecast/combat"
	"github.com/lixenwraith/typecast/engine"
	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/status"
)

type recordingHost struct {
	spawned      []match.TargetID
	unregistered []match.TargetID
	cues         int
	done         int
	hits         int
	hp           []int
	events       *event.EventQueue
}

func newRecordingHost() *recordingHost {
	return &recordingHost{events: event.NewEventQueue()}
}

func (h *recordingHost) Spawn(id match.TargetID, display match.Display) *match.Target {
	h.spawned = append(h.spawned, id)
	return match.NewTarget(id, match.NewWord("orc", match.ScriptLatin), display)
}
func (h *recordingHost) Unregister(id match.TargetID) { h.unregistered = append(h.unregistered, id) }
func (h *recordingHost) FireCue()                     { h.cues++ }
func (h *recordingHost) AnimationDone()               { h.done++ }
func (h *recordingHost) Events() *event.EventQueue    { return h.events }
func (h *recordingHost) Frame() int64                 { return 0 }

func (h *recordingHost) PlayerHit(hp int) {
	h.hits++
	h.hp = append(h.hp, hp)
}

func TestArenaLiveness(t *testing.T) {
	a := New(2, WithDamage(10), WithAttackInterval(0))
	host := newRecordingHost()
	a.Attach(host)

	if len(host.spawned) != 2 {
		t.Fatalf("Expected 2 targets spawned, got %v", host.spawned)
	}
	if !combat.IsValid(a, 1) || combat.IsValid(a, 3) {
		t.Error("Expected enemy 1 valid and unknown id invalid")
	}

	a.Fire(1)
	l, _ := a.Lookup(1)
	if l.HitPoints() != 20 || l.IsDead() {
		t.Errorf("Expected 20 hp after one hit, got %d", l.HitPoints())
	}

	a.Fire(1)
	a.Fire(1)
	if !l.IsDead() || l.Active() || combat.IsValid(a, 1) {
		t.Error("Expected enemy 1 dead and inactive")
	}
	if a.Kills() != 1 {
		t.Errorf("Expected 1 kill, got %d", a.Kills())
	}
	if len(host.unregistered) != 1 || host.unregistered[0] != 1 {
		t.Errorf("Expected dead enemy unregistered, got %v", host.unregistered)
	}

	events := host.events.Consume()
	if len(events) != 1 || events[0].Type != event.EventEnemyDied {
		t.Errorf("Expected one EnemyDied event, got %v", events)
	}

	// Firing on a corpse is ignored
	a.Fire(1)
	if a.Kills() != 1 {
		t.Error("Expected no double kill")
	}
}

func TestArenaRespawn(t *testing.T) {
	a := New(1, WithRespawnDelay(time.Second), WithAttackInterval(0))
	host := newRecordingHost()
	a.Attach(host)

	a.Kill(1)
	a.Update(500 * time.Millisecond)
	if combat.IsValid(a, 1) {
		t.Fatal("Expected enemy still dead before respawn delay")
	}

	a.Update(600 * time.Millisecond)
	if !combat.IsValid(a, 1) {
		t.Fatal("Expected enemy revived")
	}
	if len(host.spawned) != 2 {
		t.Errorf("Expected target spawned again, got %v", host.spawned)
	}
	if a.Enemies()[0].HitPoints() != a.Enemies()[0].MaxHitPoints() {
		t.Error("Expected full hit points after respawn")
	}
}

func TestArenaCastAnimationSignals(t *testing.T) {
	a := New(1, WithCastAnimation(600*time.Millisecond), WithAttackInterval(0))
	host := newRecordingHost()
	a.Attach(host)

	a.PlayCast(1)
	a.Update(200 * time.Millisecond)
	if host.cues != 0 {
		t.Error("Expected no cue before midpoint")
	}
	a.Update(100 * time.Millisecond)
	if host.cues != 1 || host.done != 0 {
		t.Errorf("Expected cue at midpoint, got cues=%d done=%d", host.cues, host.done)
	}
	a.Update(300 * time.Millisecond)
	if host.done != 1 {
		t.Errorf("Expected animation done, got %d", host.done)
	}
	if _, casting := a.Casting(); casting {
		t.Error("Expected no cast after animation")
	}

	a.PlayCast(1)
	a.CancelCast()
	a.Update(time.Second)
	if host.cues != 1 || host.done != 1 {
		t.Error("Expected cancelled cast to stay silent")
	}
}

func TestArenaRotationTime(t *testing.T) {
	a := New(4, WithRotationSpeed(720), WithAttackInterval(0))

	tests := []struct {
		id   match.TargetID
		want time.Duration
	}{
		{1, 0},                      // 0 degrees, already facing
		{2, 125 * time.Millisecond}, // 90 degrees
		{3, 250 * time.Millisecond}, // 180 degrees
		{4, 125 * time.Millisecond}, // 270 degrees, shorter arc is 90
	}
	for _, tt := range tests {
		if got := a.RotationTime(tt.id); got != tt.want {
			t.Errorf("RotationTime(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestArenaRotateTowardAim(t *testing.T) {
	a := New(4, WithRotationSpeed(720), WithAttackInterval(0))
	a.RotationTime(4) // 270 degrees, turn clockwise through 0

	a.Update(62500 * time.Microsecond)
	if f := a.Facing(); f < 314 || f > 316 {
		t.Errorf("Expected facing near 315 halfway, got %f", f)
	}
	a.Update(100 * time.Millisecond)
	if a.Facing() != 270 {
		t.Errorf("Expected facing 270, got %f", a.Facing())
	}
}

func TestArenaAttacks(t *testing.T) {
	a := New(1, WithAttackInterval(time.Second))
	host := newRecordingHost()
	a.Attach(host)

	a.Update(999 * time.Millisecond)
	if host.hits != 0 {
		t.Fatal("Expected no hit before interval")
	}
	a.Update(time.Millisecond)
	if host.hits != 1 || a.PlayerHits() != 1 {
		t.Errorf("Expected one hit, got %d", host.hits)
	}

	a.Kill(1)
	a.Update(time.Second)
	if host.hits != 1 {
		t.Error("Expected dead enemy not to attack")
	}
}

func TestArenaInvincibilityWindow(t *testing.T) {
	a := New(2, WithAttackInterval(time.Second), WithInvincibility(1500*time.Millisecond))
	host := newRecordingHost()
	a.Attach(host)

	// Enemy 1 strikes at 1s, enemy 2 at 1.5s inside the grace window
	a.Update(time.Second)
	if host.hits != 1 || !a.Invincible() {
		t.Fatalf("Expected first strike to land and open the window, got %d hits", host.hits)
	}
	a.Update(500 * time.Millisecond)
	if host.hits != 1 || a.AbsorbedAttacks() != 1 {
		t.Errorf("Expected strike absorbed while invincible, got %d hits %d absorbed", host.hits, a.AbsorbedAttacks())
	}

	// Both strike in the same frame once the window closed; only the first lands
	a.Update(time.Second)
	if host.hits != 2 || a.AbsorbedAttacks() != 2 {
		t.Errorf("Expected one of two simultaneous strikes to land, got %d hits %d absorbed", host.hits, a.AbsorbedAttacks())
	}
	if hp, maxHP := a.PlayerHP(); hp != 80 || maxHP != 100 {
		t.Errorf("Expected 80/100 hp, got %d/%d", hp, maxHP)
	}
	if len(host.hp) != 2 || host.hp[0] != 90 || host.hp[1] != 80 {
		t.Errorf("Expected host told hp [90 80], got %v", host.hp)
	}
}

func TestArenaPlayerDefeat(t *testing.T) {
	a := New(1, WithAttackInterval(time.Second), WithPlayerHP(20), WithPlayerDamage(10), WithInvincibility(0))
	host := newRecordingHost()
	a.Attach(host)

	a.Update(time.Second)
	if a.Defeated() {
		t.Fatal("Expected player alive after one strike")
	}
	a.Update(time.Second)
	if !a.Defeated() {
		t.Fatal("Expected player defeated at 0 hp")
	}

	var defeats []*event.PlayerDefeatedPayload
	for _, ev := range host.events.Consume() {
		if ev.Type == event.EventPlayerDefeated {
			defeats = append(defeats, ev.Payload.(*event.PlayerDefeatedPayload))
		}
	}
	if len(defeats) != 1 || defeats[0].Hits != 2 {
		t.Errorf("Expected one defeat after 2 hits, got %v", defeats)
	}

	a.Update(time.Second)
	if host.hits != 2 || a.AbsorbedAttacks() != 1 {
		t.Errorf("Expected no strikes after defeat, got %d hits", host.hits)
	}
}

func TestArenaInvincibilityProtectsNextCast(t *testing.T) {
	tests := []struct {
		name            string
		invincibility   time.Duration
		wantInterrupted int
		wantFired       int64
	}{
		{"grace window", 1500 * time.Millisecond, 1, 1},
		{"no grace window", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := status.NewRegistry()
			a := New(2,
				WithAttackInterval(time.Second),
				WithInvincibility(tt.invincibility),
				WithCastAnimation(600*time.Millisecond),
				WithMetrics(reg),
			)
			g := engine.NewGame(engine.Deps{
				World:   a,
				Combat:  a,
				Actor:   a,
				Words:   fixedWords("orc"),
				Metrics: reg,
			}, engine.DefaultSettings())
			interrupted := 0
			g.Subscribe(event.HandlerFunc[event.Tick]{
				Types: []event.EventType{event.EventCastFinished},
				Fn: func(_ event.Tick, ev event.GameEvent) {
					if ev.Payload.(*event.CastFinishedPayload).Outcome == combat.OutcomeInterrupted.String() {
						interrupted++
					}
				},
			})
			a.Attach(g)

			// Casts open just before enemy 1 strikes at 1s; enemy 2 strikes at 1.5s mid-animation
			frame := 16 * time.Millisecond
			typed := false
			for elapsed := time.Duration(0); elapsed < 1900*time.Millisecond; elapsed += frame {
				if !typed && elapsed >= 900*time.Millisecond {
					for _, r := range "orc" {
						g.SubmitSymbol(r)
					}
					typed = true
				}
				g.Tick(frame)
				a.Update(frame)
			}

			if interrupted != tt.wantInterrupted {
				t.Errorf("Expected %d interrupted casts, got %d", tt.wantInterrupted, interrupted)
			}
			if got := reg.Counter(status.MetricFired); got != tt.wantFired {
				t.Errorf("Expected %d fires, got %d", tt.wantFired, got)
			}
		})
	}
}

type fixedWords string

func (w fixedWords) Next(match.Script) string { return string(w) }

func TestArenaWithEngine(t *testing.T) {
	reg := status.NewRegistry()
	a := New(2,
		WithDamage(30),
		WithAttackInterval(0),
		WithRespawnDelay(2*time.Second),
		WithCastAnimation(600*time.Millisecond),
		WithMetrics(reg),
	)
	g := engine.NewGame(engine.Deps{
		World:   a,
		Combat:  a,
		Actor:   a,
		Words:   fixedWords("orc"),
		Metrics: reg,
	}, engine.DefaultSettings())
	a.Attach(g)

	// Both enemies carry "orc"; typing it completes both
	for _, r := range "orc" {
		g.SubmitSymbol(r)
	}

	frame := 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < 2*time.Second; elapsed += frame {
		g.Tick(frame)
		a.Update(frame)
	}

	if a.Kills() != 2 {
		t.Fatalf("Expected both enemies defeated, got %d kills", a.Kills())
	}
	if reg.Counter(status.MetricFired) != 2 {
		t.Errorf("Expected 2 fires, got %d", reg.Counter(status.MetricFired))
	}
	if g.Router().Len() != 0 {
		t.Errorf("Expected no targets while enemies are dead, got %d", g.Router().Len())
	}

	for elapsed := time.Duration(0); elapsed < 2*time.Second; elapsed += frame {
		g.Tick(frame)
		a.Update(frame)
	}
	if g.Router().Len() != 2 {
		t.Errorf("Expected respawned enemies registered, got %d", g.Router().Len())
	}
	if a.Enemies()[0].Label().Word() != "orc" {
		t.Errorf("Expected label to show the new word, got %q", a.Enemies()[0].Label().Word())
	}
}
