package parameter

import "time"

// Attack Queue
const (
	// CombatQueueCapacity is the maximum backlog of completed words awaiting a cast
	CombatQueueCapacity = 3

	// CombatQueueEnabled selects queueing over drop-while-casting
	CombatQueueEnabled = true
)

// Cast Session
const (
	// CombatCastTimeout is the fixed ceiling on any cast session
	CombatCastTimeout = 3 * time.Second

	// CombatRotationSpeed is degrees per second while turning toward a target
	CombatRotationSpeed = 720.0

	// CombatSmoothRotation enables timed rotation; disabled rotation is instantaneous
	CombatSmoothRotation = true
)

// Damage
const (
	// CombatDamageSpell is damage dealt by a single fired cast
	CombatDamageSpell = 10
)
