package event

import "time"

// Tick is the dispatch context handed to handlers once per frame
type Tick struct {
	Frame int64
	DT    time.Duration
}

// EventType represents the type of game event
type EventType int

const (
	// EventTick is the zero value, reserved for frame ticks
	EventTick EventType = iota

	// === Typing Event ===

	// EventWordCompleted signals a target word was fully typed
	// Trigger: typing.Router completion scan
	// Consumer: combat.Sequencer, scoreboard | Payload: *WordCompletedPayload
	EventWordCompleted

	// EventGlobalTypo signals a confirmed global typo
	// Trigger: typing.Router Global Typo Rule
	// Consumer: audio, scoreboard | Payload: *GlobalTypoPayload
	EventGlobalTypo

	// EventTargetReassigned signals a target received a fresh word
	// Trigger: engine reassignment after completion delay
	// Consumer: terminal | Payload: *TargetReassignedPayload
	EventTargetReassigned

	// EventScriptMismatch signals syllable input while the Latin script is active
	// Trigger: engine.Game.SubmitKey
	// Consumer: terminal | Payload: nil
	EventScriptMismatch

	// === Combat Event ===

	// EventPlayerHit signals a strike landed on the player
	// Trigger: arena enemy attack outside the invincibility window
	// Consumer: combat.Sequencer, scoreboard, audio | Payload: *PlayerHitPayload
	EventPlayerHit

	// EventPlayerDefeated signals the player ran out of hit points
	// Trigger: arena enemy attack
	// Consumer: scoreboard, frontend | Payload: *PlayerDefeatedPayload
	EventPlayerDefeated

	// EventCastStarted signals a cast session opened
	// Trigger: combat.Sequencer
	// Consumer: audio, terminal | Payload: *CastStartedPayload
	EventCastStarted

	// EventCastFired signals the fire cue applied the effect to a valid target
	// Trigger: combat.Sequencer.FireCue
	// Consumer: audio | Payload: *CastFiredPayload
	EventCastFired

	// EventCastFinished signals a cast session reached Done
	// Trigger: combat.Sequencer
	// Consumer: scoreboard, terminal | Payload: *CastFinishedPayload
	EventCastFinished

	// EventAttackDropped signals a completion discarded by a full or busy queue
	// Trigger: combat.Sequencer
	// Consumer: scoreboard | Payload: *AttackDroppedPayload
	EventAttackDropped

	// EventEnemyDied signals an enemy reached zero hitpoints
	// Trigger: arena.Fire
	// Consumer: scoreboard, engine | Payload: *EnemyDiedPayload
	EventEnemyDied
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
