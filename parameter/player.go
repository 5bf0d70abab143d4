package parameter

import "time"

// Player
const (
	// PlayerInitialHP is the caster's starting hit points
	PlayerInitialHP = 100

	// PlayerHitDamage is hit points lost per enemy strike
	PlayerHitDamage = 10

	// PlayerInvincibleDuration is the grace window after a hit in which strikes are ignored
	PlayerInvincibleDuration = 1500 * time.Millisecond
)
