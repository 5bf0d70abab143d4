// Package scoreboard tallies a play session and persists finished runs
package scoreboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/typecast/combat"
	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/parameter"
)

// Run is the summary of one play session
type Run struct {
	ID          uuid.UUID
	Script      string
	Started     time.Time
	Ended       time.Time
	Words       int
	GlobalTypos int
	Fired       int
	Dropped     int
	Kills       int
	PlayerHits  int
	PlayerHP    int
	Defeated    bool
}

// Duration returns the wall time the run lasted
func (r Run) Duration() time.Duration { return r.Ended.Sub(r.Started) }

// Accuracy returns completed words over words plus global typos, 1 when nothing was typed
func (r Run) Accuracy() float64 {
	total := r.Words + r.GlobalTypos
	if total == 0 {
		return 1
	}
	return float64(r.Words) / float64(total)
}

// Tally accumulates the current run from engine events
// It implements typing.Scoring and event.Handler[event.Tick]
type Tally struct {
	run Run
}

// NewTally starts a run with a fresh id
func NewTally(script string, started time.Time) *Tally {
	return &Tally{run: Run{
		ID:       uuid.New(),
		Script:   script,
		Started:  started.UTC(),
		PlayerHP: parameter.PlayerInitialHP,
	}}
}

// OnGlobalTypo implements typing.Scoring
func (t *Tally) OnGlobalTypo() { t.run.GlobalTypos++ }

func (t *Tally) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventWordCompleted,
		event.EventCastFinished,
		event.EventAttackDropped,
		event.EventEnemyDied,
		event.EventPlayerHit,
		event.EventPlayerDefeated,
	}
}

func (t *Tally) HandleEvent(_ event.Tick, ev event.GameEvent) {
	switch ev.Type {
	case event.EventWordCompleted:
		t.run.Words++
	case event.EventCastFinished:
		if p, ok := ev.Payload.(*event.CastFinishedPayload); ok && p.Outcome == combat.OutcomeFired.String() {
			t.run.Fired++
		}
	case event.EventAttackDropped:
		t.run.Dropped++
	case event.EventEnemyDied:
		t.run.Kills++
	case event.EventPlayerHit:
		t.run.PlayerHits++
		if p, ok := ev.Payload.(*event.PlayerHitPayload); ok {
			t.run.PlayerHP = p.HP
		}
	case event.EventPlayerDefeated:
		t.run.Defeated = true
		t.run.PlayerHP = 0
	}
}

// SetScript records the script in use, the latest switch wins
func (t *Tally) SetScript(script string) { t.run.Script = script }

// SetPlayerHP records the player's starting hit points
func (t *Tally) SetPlayerHP(hp int) { t.run.PlayerHP = hp }

// Current returns a copy of the run so far
func (t *Tally) Current() Run { return t.run }

// Finish stamps the end time and returns the completed run
func (t *Tally) Finish(ended time.Time) Run {
	t.run.Ended = ended.UTC()
	return t.run
}
