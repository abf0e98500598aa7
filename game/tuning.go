package game

import "time"

// Physical constants of the simulation. These are part of the movement model
// rather than operational configuration, so they live here as constants the
// same way map size and tick rate do not.
const (
	NormalSpeed = 180.0 // units per second
	BoostSpeed  = 300.0 // units per second while boosting

	// Speed receives only this share of the tier mass multiplier's bonus,
	// so paid-tier snakes are heavier but only slightly faster.
	SpeedMultiplierShare = 0.10

	MaxTurnRate = 4.0 // radians per second

	// SegmentSpacing must stay comfortably above the per-tick head step
	// (speed/tickRate) so the bounded head path always covers the body arc.
	SegmentSpacing = 8.0
	HeadRadius     = 10.0
	BodyRadius     = 8.0
	PelletRadius   = 5.0
	AppleRadius    = 12.0

	// MinBoostLength is the floor below which boost upkeep stops removing
	// segments; boosting is force-stopped at or below it.
	MinBoostLength = 5

	// HeadPathFactor bounds the head path buffer to this many points per
	// segment to cap memory.
	HeadPathFactor = 3

	// DeathPelletDensity scatters one pellet per this many body segments
	// when a snake dies.
	DeathPelletDensity = 2

	// SpawnMargin keeps fresh snakes away from the bounds walls.
	SpawnMargin = 200.0

	// TargetClampBuffer is the slack beyond the map edges within which
	// movement targets are accepted; anything wilder is clamped, never
	// rejected.
	TargetClampBuffer = 500.0

	// BoundaryMargin is how close to a bounds wall a head may sit before
	// the boundary kill timer starts.
	BoundaryMargin = 15.0
)

const (
	BoostCostInterval  = 500 * time.Millisecond // one segment per interval while boosting
	SelfCollisionDelay = 3 * time.Second        // spawn grace before self collision is possible
	BoundaryKillDelay  = 3 * time.Second        // time on the boundary before elimination
)
