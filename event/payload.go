package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/typecast/match"
)

// WordCompletedPayload names the completed target
type WordCompletedPayload struct {
	Target match.TargetID `json:"target"`
	Word   string         `json:"word"`
}

// GlobalTypoPayload lists the targets flagged by a global typo and their progress before reset
type GlobalTypoPayload struct {
	Symbol  match.Symbol           `json:"symbol"`
	Targets map[match.TargetID]int `json:"targets"`
}

// TargetReassignedPayload carries the new word of a reassigned target
type TargetReassignedPayload struct {
	Target match.TargetID `json:"target"`
	Word   string         `json:"word"`
}

// CastStartedPayload identifies a newly opened cast session
type CastStartedPayload struct {
	Session uuid.UUID      `json:"session"`
	Target  match.TargetID `json:"target"`
}

// CastFiredPayload names the target hit by a fire cue
type CastFiredPayload struct {
	Session uuid.UUID      `json:"session"`
	Target  match.TargetID `json:"target"`
}

// CastFinishedPayload reports how a cast session ended
// Outcome is the combat.Outcome string form
type CastFinishedPayload struct {
	Session  uuid.UUID      `json:"session"`
	Target   match.TargetID `json:"target"`
	Outcome  string         `json:"outcome"`
	Duration time.Duration  `json:"duration"`
}

// AttackDroppedPayload names a completion that never reached the queue
type AttackDroppedPayload struct {
	Target match.TargetID `json:"target"`
	Reason string         `json:"reason"`
}

// EnemyDiedPayload names a defeated enemy
type EnemyDiedPayload struct {
	Target match.TargetID `json:"target"`
}

// PlayerHitPayload carries the player's hit points after a landed strike
type PlayerHitPayload struct {
	HP int `json:"hp"`
}

// PlayerDefeatedPayload reports how many strikes it took to defeat the player
type PlayerDefeatedPayload struct {
	Hits int `json:"hits"`
}
