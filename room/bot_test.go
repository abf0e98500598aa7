package room

import (
	"math"
	"testing"
	"time"

	"arena-server/game"
)

func baseObservation() BotObservation {
	return BotObservation{
		Alive:           true,
		Head:            game.Vec2{X: 2500, Y: 2500},
		Length:          20,
		Bounds:          game.FullBounds(5000, 5000),
		MapW:            5000,
		MapH:            5000,
		NearestHeadDist: math.Inf(1),
	}
}

func TestBotBrainLocksNearestPellet(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &botBrain{}
	obs := baseObservation()
	obs.Head = game.Vec2{X: 0, Y: 0}
	obs.Pellets = []BotPellet{
		{ID: "near", Pos: game.Vec2{X: 100, Y: 0}},
		{ID: "far", Pos: game.Vec2{X: 300, Y: 0}},
	}

	target, _ := b.decide(obs, now)
	if target != (game.Vec2{X: 100, Y: 0}) {
		t.Fatalf("target = %v, want nearest pellet", target)
	}
	if b.lockID != "near" {
		t.Fatalf("locked %q, want near", b.lockID)
	}

	// The lock sticks while fresh, even when another pellet becomes closer.
	obs.Head = game.Vec2{X: 290, Y: 0}
	target, _ = b.decide(obs, now.Add(time.Second))
	if b.lockID != "near" || target != (game.Vec2{X: 100, Y: 0}) {
		t.Fatalf("lock broken early: %q target %v", b.lockID, target)
	}

	// Past the TTL the brain re-picks the nearest pellet.
	obs.Head = game.Vec2{X: 250, Y: 0}
	target, _ = b.decide(obs, now.Add(4*time.Second))
	if b.lockID != "far" || target != (game.Vec2{X: 300, Y: 0}) {
		t.Fatalf("expired lock not replaced: %q target %v", b.lockID, target)
	}
}

func TestBotBrainDropsVanishedLock(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &botBrain{}
	obs := baseObservation()
	obs.Head = game.Vec2{X: 0, Y: 0}
	obs.Pellets = []BotPellet{
		{ID: "near", Pos: game.Vec2{X: 100, Y: 0}},
		{ID: "far", Pos: game.Vec2{X: 300, Y: 0}},
	}
	b.decide(obs, now)

	obs.Head = game.Vec2{X: 50, Y: 0}
	obs.Pellets = obs.Pellets[1:] // "near" was eaten by someone else
	target, _ := b.decide(obs, now.Add(100*time.Millisecond))
	if b.lockID != "far" || target != (game.Vec2{X: 300, Y: 0}) {
		t.Fatalf("vanished lock kept: %q target %v", b.lockID, target)
	}
}

func TestBotBrainWandersWhenStuck(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &botBrain{}
	obs := baseObservation()
	obs.Head = game.Vec2{X: 1000, Y: 1000}
	obs.Pellets = []BotPellet{{ID: "p", Pos: game.Vec2{X: 1100, Y: 1000}}}

	// The head never moves between decisions, so the pellet must eventually
	// be abandoned for a wander target.
	var target game.Vec2
	for i := 0; i < botStuckLimit+2; i++ {
		target, _ = b.decide(obs, now.Add(time.Duration(i)*botDecideInterval))
	}
	if b.lockID != "" {
		t.Fatalf("stuck brain kept lock %q", b.lockID)
	}
	if target == (game.Vec2{X: 1100, Y: 1000}) {
		t.Fatal("stuck brain still steering at the pellet")
	}
	if target.X < botInteriorMargin || target.X > 5000-botInteriorMargin ||
		target.Y < botInteriorMargin || target.Y > 5000-botInteriorMargin {
		t.Fatalf("wander target %v outside the bounds interior", target)
	}
}

func TestBotBrainWandersWithoutPellets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &botBrain{}
	obs := baseObservation()
	target, _ := b.decide(obs, now)
	if target.X < botInteriorMargin || target.X > 5000-botInteriorMargin ||
		target.Y < botInteriorMargin || target.Y > 5000-botInteriorMargin {
		t.Fatalf("wander target %v outside the bounds interior", target)
	}
}

func TestBotBrainRepulsionPushesAwayFromHeads(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &botBrain{}
	obs := baseObservation()
	obs.Head = game.Vec2{X: 0, Y: 0}
	obs.Pellets = []BotPellet{{ID: "p", Pos: game.Vec2{X: 0, Y: 200}}}
	obs.NearestHead = game.Vec2{X: 100, Y: 0}
	obs.NearestHeadDist = 100

	target, _ := b.decide(obs, now)
	if target.X >= 0 {
		t.Fatalf("target %v not pushed away from the threatening head", target)
	}
	if target.Y != 200 {
		t.Fatalf("repulsion bent the pursuit axis: %v", target)
	}
}

func TestBotBrainNeverBoostsBelowMinLength(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := baseObservation()
	obs.Head = game.Vec2{X: 0, Y: 0}
	obs.Length = botBoostMinLength - 1
	obs.Pellets = []BotPellet{{ID: "p", Pos: game.Vec2{X: 300, Y: 0}}}

	b := &botBrain{}
	for i := 0; i < 200; i++ {
		if _, boost := b.decide(obs, now.Add(time.Duration(i)*botDecideInterval)); boost {
			t.Fatal("short snake boosted")
		}
	}
}

func TestBotObservationFiltersPellets(t *testing.T) {
	clk := newFakeClock()
	r := New(testConfig(), testTier(), clk, Hooks{})
	botID := r.JoinBot("Viper")
	placeSnake(r, botID, game.Vec2{X: 400, Y: 400}, 0, 10)
	r.begin()

	r.mu.Lock()
	r.pellets["inside"] = &game.Pellet{ID: "inside", Pos: game.Vec2{X: 500, Y: 400}, Mass: 1}
	r.pellets["edge"] = &game.Pellet{ID: "edge", Pos: game.Vec2{X: 350, Y: 50}, Mass: 1}
	r.pellets["distant"] = &game.Pellet{ID: "distant", Pos: game.Vec2{X: 1200, Y: 400}, Mass: 1}
	r.mu.Unlock()

	obs := r.BotObservation(botID)
	if !obs.Alive {
		t.Fatal("bot reported dead")
	}
	if len(obs.Pellets) != 1 || obs.Pellets[0].ID != "inside" {
		t.Fatalf("observation pellets = %+v, want only the interior one in range", obs.Pellets)
	}
	if !math.IsInf(obs.NearestHeadDist, 1) {
		t.Fatalf("nearest head dist = %f for a solo snake", obs.NearestHeadDist)
	}

	if got := r.BotObservation("nobody"); got.Alive {
		t.Fatal("unknown player observed as alive")
	}
}

func TestBotDriverActsThroughCommandQueue(t *testing.T) {
	clk := newFakeClock()
	r := New(testConfig(), testTier(), clk, Hooks{})
	d := NewBotDriver(r, 3)
	if len(d.brains) != 3 {
		t.Fatalf("brains = %d, want 3", len(d.brains))
	}
	r.begin()
	if r.LiveCount() != 3 {
		t.Fatalf("live bots = %d, want 3", r.LiveCount())
	}

	d.DecideAll()
	tick(r, clk)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.players {
		if p.LastInputAt.IsZero() {
			t.Fatalf("bot %s never issued a command", id)
		}
	}
}
