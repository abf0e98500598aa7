package room

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"arena-server/game"
)

// Bot tuning.
const (
	botDecideInterval = 100 * time.Millisecond // ~10 Hz, coarser than the tick
	botSeekRadius     = 600.0                  // pellets within this range are candidates
	botInteriorMargin = 100.0                  // ignore pellets this close to the bounds walls
	botLockTTL        = 2 * time.Second        // pellet locks expire after this
	botStuckEps       = 5.0                    // displacement per decision below this counts as stuck
	botStuckLimit     = 3                      // consecutive stuck decisions before giving up
	botTargetEps      = 25.0                   // "arrived" distance
	botRepulseDist    = 150.0                  // steer away from heads closer than this
	botRepulseWeight  = 200.0
	botLeadDist       = 60.0 // apply predictive lead inside this range
	botCrowdDist      = 300.0
	botBoostChance    = 0.10
	botBoostDuration  = 750 * time.Millisecond
	botBoostMinRange  = 150.0
	botBoostMaxRange  = 450.0
	botBoostMinLength = game.MinBoostLength + 5
)

var botNames = []string{
	"Viper", "Cobra", "Mamba", "Python", "Anaconda",
	"Sidewinder", "Taipan", "Boomslang", "Krait", "Adder",
	"Copperhead", "Rattler", "Moccasin", "Bushmaster", "Habu",
}

// BotPellet is one pellet visible to a bot.
type BotPellet struct {
	ID  string
	Pos game.Vec2
}

// BotObservation is the committed state a bot can see at decision time.
// Bots only observe; every action goes back through the command queue.
type BotObservation struct {
	Alive  bool
	Head   game.Vec2
	Angle  float64
	Length int
	Bounds game.Bounds
	MapW   float64
	MapH   float64

	Pellets []BotPellet

	NearestHead     game.Vec2
	NearestHeadDist float64 // +Inf when no other live snake exists
	NearbyBots      int
}

// BotObservation builds a read-only view of committed state for one bot.
func (r *Room) BotObservation(playerID string) BotObservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obs := BotObservation{
		Bounds:          r.bounds,
		MapW:            r.cfg.MapWidth,
		MapH:            r.cfg.MapHeight,
		NearestHeadDist: math.Inf(1),
	}
	p, ok := r.players[playerID]
	if !ok || !p.Alive() {
		return obs
	}
	obs.Alive = true
	obs.Head = p.Snake.Head()
	obs.Angle = p.Snake.Angle
	obs.Length = p.Snake.Length

	for id, pel := range r.pellets {
		if r.bounds.EdgeProximity(pel.Pos) < botInteriorMargin {
			continue
		}
		if game.Dist(obs.Head, pel.Pos) <= botSeekRadius {
			obs.Pellets = append(obs.Pellets, BotPellet{ID: id, Pos: pel.Pos})
		}
	}
	for id, other := range r.players {
		if id == playerID || !other.Alive() {
			continue
		}
		d := game.Dist(obs.Head, other.Snake.Head())
		if d < obs.NearestHeadDist {
			obs.NearestHeadDist = d
			obs.NearestHead = other.Snake.Head()
		}
		if other.IsBot && d < botCrowdDist {
			obs.NearbyBots++
		}
	}
	return obs
}

// botBrain is the per-bot decision state.
type botBrain struct {
	lastPos    game.Vec2
	havePos    bool
	stuck      int
	lockID     string
	lockAt     time.Time
	wander     game.Vec2
	haveWander bool
	boostUntil time.Time
	boosting   bool // last boost edge sent
}

// decide picks the next movement target and boost state from an observation.
func (b *botBrain) decide(obs BotObservation, now time.Time) (game.Vec2, bool) {
	moved := game.Dist(obs.Head, b.lastPos)
	if b.havePos && moved < botStuckEps {
		b.stuck++
	} else {
		b.stuck = 0
	}
	b.lastPos = obs.Head
	b.havePos = true

	// Target selection: recent pellet lock first, then nearest pellet,
	// then wander.
	target, hasPellet := b.resolveLock(obs, now)
	if !hasPellet {
		if !b.haveWander || game.Dist(obs.Head, b.wander) < botTargetEps {
			b.newWander(obs)
		}
		target = b.wander
	}

	// Stuck or arrived: drop the lock and wander somewhere fresh.
	if b.stuck > botStuckLimit || game.Dist(obs.Head, target) < botTargetEps {
		b.lockID = ""
		b.newWander(obs)
		target = b.wander
		b.stuck = 0
		hasPellet = false
	}

	dist := game.Dist(obs.Head, target)

	// Predictive lead: when close and the required turn is sharp, aim past
	// the target along the approach line so the snake doesn't orbit it.
	if dist < botLeadDist && dist > 1 {
		bearing := math.Atan2(target.Y-obs.Head.Y, target.X-obs.Head.X)
		if math.Abs(game.NormalizeAngle(bearing-obs.Angle)) > math.Pi/2 {
			scale := (dist + botLeadDist) / dist
			target = game.Vec2{
				X: obs.Head.X + (target.X-obs.Head.X)*scale,
				Y: obs.Head.Y + (target.Y-obs.Head.Y)*scale,
			}
		}
	}

	// Repulsion away from the nearest other head.
	if obs.NearestHeadDist < botRepulseDist && obs.NearestHeadDist > 0 {
		target.X += (obs.Head.X - obs.NearestHead.X) / obs.NearestHeadDist * botRepulseWeight
		target.Y += (obs.Head.Y - obs.NearestHead.Y) / obs.NearestHeadDist * botRepulseWeight
	}

	// Occasional boost burst while pursuing a pellet at medium range.
	boost := now.Before(b.boostUntil)
	if !boost && hasPellet && obs.Length >= botBoostMinLength &&
		dist > botBoostMinRange && dist < botBoostMaxRange &&
		rand.Float64() < botBoostChance {
		b.boostUntil = now.Add(botBoostDuration)
		boost = true
	}
	return target, boost
}

func (b *botBrain) resolveLock(obs BotObservation, now time.Time) (game.Vec2, bool) {
	if b.lockID != "" && now.Sub(b.lockAt) <= botLockTTL {
		for _, pel := range obs.Pellets {
			if pel.ID == b.lockID {
				return pel.Pos, true
			}
		}
	}
	b.lockID = ""

	best := math.Inf(1)
	var bestPellet BotPellet
	for _, pel := range obs.Pellets {
		if d := game.Dist(obs.Head, pel.Pos); d < best {
			best = d
			bestPellet = pel
		}
	}
	if math.IsInf(best, 1) {
		return game.Vec2{}, false
	}
	b.lockID = bestPellet.ID
	b.lockAt = now
	return bestPellet.Pos, true
}

// newWander picks a randomized offset from map center, wider when other
// bots are nearby so they don't cluster symmetrically.
func (b *botBrain) newWander(obs BotObservation) {
	spread := math.Min(obs.MapW, obs.MapH) * 0.25
	if obs.NearbyBots > 0 {
		spread *= 2
	}
	w := game.Vec2{
		X: obs.MapW/2 + (rand.Float64()*2-1)*spread,
		Y: obs.MapH/2 + (rand.Float64()*2-1)*spread,
	}
	w.X = game.Clamp(w.X, obs.Bounds.MinX+botInteriorMargin, obs.Bounds.MaxX-botInteriorMargin)
	w.Y = game.Clamp(w.Y, obs.Bounds.MinY+botInteriorMargin, obs.Bounds.MaxY-botInteriorMargin)
	b.wander = w
	b.haveWander = true
}

// BotDriver runs one decision loop for every bot in a room. It has no
// special access: observations are read-only and every action goes through
// the room's public Move/Boost command API.
type BotDriver struct {
	room   *Room
	brains map[string]*botBrain
	quit   chan struct{}
	once   sync.Once
}

// NewBotDriver joins n bots into the room and prepares their brains.
func NewBotDriver(r *Room, n int) *BotDriver {
	d := &BotDriver{
		room:   r,
		brains: make(map[string]*botBrain),
		quit:   make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		name := botNames[i%len(botNames)]
		id := r.JoinBot(name)
		if id == "" {
			continue
		}
		d.brains[id] = &botBrain{}
	}
	return d
}

// Start begins the decision loop.
func (d *BotDriver) Start() {
	go d.run()
}

// Stop halts the decision loop. Idempotent.
func (d *BotDriver) Stop() {
	d.once.Do(func() { close(d.quit) })
}

func (d *BotDriver) run() {
	ticker := time.NewTicker(botDecideInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.quit:
			return
		case <-ticker.C:
			if d.room.Ended() {
				return
			}
			d.DecideAll()
		}
	}
}

// DecideAll runs one decision for every live bot.
func (d *BotDriver) DecideAll() {
	now := d.room.Clock().Now()
	for id, brain := range d.brains {
		obs := d.room.BotObservation(id)
		if !obs.Alive {
			continue
		}
		target, boost := brain.decide(obs, now)
		d.room.Move(id, target.X, target.Y)
		if boost != brain.boosting {
			brain.boosting = boost
			d.room.Boost(id, boost)
		}
	}
}
