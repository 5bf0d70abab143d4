package parameter

import "time"

// Arena Enemies
const (
	// EnemyInitialHP is enemy starting hit points
	EnemyInitialHP = 30

	// EnemyDefaultCount is the number of enemies kept alive in the arena
	EnemyDefaultCount = 4

	// EnemyMaxCount bounds the configurable enemy count
	EnemyMaxCount = 8

	// EnemyRespawnDelay is the delay before a dead enemy slot revives
	EnemyRespawnDelay = 2 * time.Second

	// EnemyAttackInterval is the cadence at which an enemy strikes the player
	EnemyAttackInterval = 7 * time.Second

	// EnemyCastAnimation is the simulated cast animation length (fire cue at half)
	EnemyCastAnimation = 600 * time.Millisecond
)
