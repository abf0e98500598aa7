package room

import (
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"arena-server/config"
	"arena-server/game"
	"arena-server/protocol"
)

const (
	commandQueueSize  = 1024
	subscriberBuffer  = 64
	appleSpawnRetries = 32
)

// Room is the authoritative simulation for one match. All state mutation
// happens on the room's tick goroutine under mu; client and bot commands
// arrive through a queue drained at the start of each tick.
type Room struct {
	ID string

	cfg   config.Config
	tier  config.Tier
	clock game.Clock
	hooks Hooks

	mu      sync.RWMutex
	players map[string]*game.Player
	pellets map[string]*game.Pellet
	apple   *game.Apple
	bounds  game.Bounds
	grid    *game.Grid

	commands chan command
	subs     map[string]chan Outbound

	started      bool
	ended        bool
	startTime    time.Time
	lastTick     time.Time
	lastWinCheck time.Time

	// peakPlayers is the highest concurrent live count seen, used by the
	// last-snake-standing win condition.
	peakPlayers int

	// Apple attribution: who held it last and who eliminated them.
	lastHolderID   string
	holderKillerID string

	tickCount      int
	broadcastEvery int

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a room for one match. Configuration is captured by value and
// never re-read mid-match.
func New(cfg config.Config, tier config.Tier, clock game.Clock, hooks Hooks) *Room {
	broadcastEvery := 1
	if cfg.BroadcastRate > 0 && cfg.TickRate > cfg.BroadcastRate {
		broadcastEvery = cfg.TickRate / cfg.BroadcastRate
	}
	return &Room{
		ID:             uuid.New().String(),
		cfg:            cfg,
		tier:           tier,
		clock:          clock,
		hooks:          hooks,
		players:        make(map[string]*game.Player),
		pellets:        make(map[string]*game.Pellet),
		bounds:         game.FullBounds(cfg.MapWidth, cfg.MapHeight),
		grid:           game.NewGrid(cfg.GridCellSize),
		commands:       make(chan command, commandQueueSize),
		subs:           make(map[string]chan Outbound),
		broadcastEvery: broadcastEvery,
		quit:           make(chan struct{}),
	}
}

// Start seeds the match and begins the fixed-rate tick loop.
func (r *Room) Start() {
	r.begin()
	go r.run()
}

// Stop halts the tick loop. Idempotent.
func (r *Room) Stop() {
	r.quitOnce.Do(func() { close(r.quit) })
}

// Ended reports whether the match is over.
func (r *Room) Ended() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ended
}

// Clock returns the room's injected clock.
func (r *Room) Clock() game.Clock {
	return r.clock
}

// MapSize returns the map dimensions.
func (r *Room) MapSize() (float64, float64) {
	return r.cfg.MapWidth, r.cfg.MapHeight
}

// PlayerColor returns the color assigned to a player on join.
func (r *Room) PlayerColor(playerID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.players[playerID]; ok {
		return p.Color
	}
	return ""
}

// LiveCount returns the number of players whose snakes are alive.
func (r *Room) LiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alivePlayers())
}

// begin seeds pellets, rolls the apple spawn and anchors the match clocks.
func (r *Room) begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock.Now()
	r.started = true
	r.startTime = now
	r.lastTick = now
	r.lastWinCheck = now
	r.peakPlayers = len(r.alivePlayers())

	for len(r.pellets) < r.cfg.TargetPelletCount {
		p := game.NewPellet(r.bounds)
		r.pellets[p.ID] = p
	}

	if rand.Float64() < r.tier.AppleChance {
		pos := r.findAppleSpawn()
		r.apple = game.NewApple(pos, now)
		r.publishEvent(protocol.AppleMsg{
			Type: protocol.MsgApple, Event: protocol.AppleSpawned,
			ID: r.apple.ID, X: protocol.Round1(pos.X), Y: protocol.Round1(pos.Y),
		})
		log.Printf("room %s: apple spawned at (%.0f, %.0f)", r.ID, pos.X, pos.Y)
	}
}

// findAppleSpawn tries a bounded number of positions that do not overlap any
// snake, then degrades to the map center rather than failing the match.
func (r *Room) findAppleSpawn() game.Vec2 {
	for i := 0; i < appleSpawnRetries; i++ {
		pos := game.SpawnPoint(r.bounds)
		clear := true
		for _, p := range r.players {
			if !p.Alive() {
				continue
			}
			for _, seg := range p.Snake.Segments {
				if game.Dist(pos, seg) < game.AppleRadius+game.BodyRadius {
					clear = false
					break
				}
			}
			if !clear {
				break
			}
		}
		if clear {
			return pos
		}
	}
	return game.Vec2{X: r.cfg.MapWidth / 2, Y: r.cfg.MapHeight / 2}
}

func (r *Room) run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TickRate))
	defer ticker.Stop()
	log.Printf("room %s: tick loop started at %d Hz", r.ID, r.cfg.TickRate)
	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			r.step()
		}
	}
}

// Join adds a human player with a fresh snake at a random point and angle.
// Returns the new player id, or "" if the match is already over.
func (r *Room) Join(name, sessionID, wallet string, cosmetics []string) string {
	return r.join(name, sessionID, wallet, cosmetics, false)
}

// JoinBot adds a bot player through the same path as a human join.
func (r *Room) JoinBot(name string) string {
	return r.join(name, "", "", nil, true)
}

func (r *Room) join(name, sessionID, wallet string, cosmetics []string, isBot bool) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended {
		return ""
	}
	now := r.clock.Now()
	id := uuid.New().String()
	angle := rand.Float64() * 2 * math.Pi
	snake := game.NewSnake(game.SpawnPoint(r.bounds), angle, r.cfg.StartLength, r.tier.StatMultiplier, now)
	r.players[id] = &game.Player{
		ID:        id,
		Name:      name,
		SessionID: sessionID,
		Color:     game.RandomColor(),
		Snake:     snake,
		IsBot:     isBot,
		Wallet:    wallet,
		Cosmetics: cosmetics,
		JoinedAt:  now,
	}
	if live := len(r.alivePlayers()); live > r.peakPlayers {
		r.peakPlayers = live
	}
	log.Printf("room %s: %s joined (bot=%v)", r.ID, name, isBot)
	return id
}

// Leave marks the player's snake dead, scattering its body as pellets. The
// player record persists for final rankings.
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ended {
		return
	}
	if p, ok := r.players[playerID]; ok && p.Alive() {
		r.killPlayer(playerID, "", "", r.clock.Now())
	}
}

// Move queues a movement target for the player. Out-of-range targets are
// clamped at apply time, never rejected; non-finite ones are dropped.
func (r *Room) Move(playerID string, x, y float64) {
	if !game.Finite(x) || !game.Finite(y) {
		log.Printf("room %s: non-finite move target from %s", r.ID, playerID)
		return
	}
	r.enqueue(command{kind: cmdMove, playerID: playerID, x: x, y: y})
}

// Boost queues a boost on/off edge for the player.
func (r *Room) Boost(playerID string, on bool) {
	r.enqueue(command{kind: cmdBoost, playerID: playerID, on: on})
}

func (r *Room) enqueue(c command) {
	select {
	case r.commands <- c:
	default:
		log.Printf("room %s: command queue full, dropping input from %s", r.ID, c.playerID)
	}
}

// Subscribe registers a snapshot/event receiver. The returned channel is
// bounded; messages are dropped rather than stalling the tick when the
// receiver falls behind. Players subscribe under their player id, anyone
// else is counted as a spectator.
func (r *Room) Subscribe(subID string) <-chan Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan Outbound, subscriberBuffer)
	r.subs[subID] = ch
	return ch
}

// Unsubscribe removes and closes a receiver.
func (r *Room) Unsubscribe(subID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.subs[subID]; ok {
		delete(r.subs, subID)
		close(ch)
	}
}

// step executes one tick of the pipeline. An unexpected panic aborts this
// room only; the tick is never replayed.
func (r *Room) step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("room %s: tick panic, aborting match: %v", r.ID, rec)
			r.abortLocked()
		}
	}()

	if !r.started || r.ended {
		return
	}
	now := r.clock.Now()
	dtDur := now.Sub(r.lastTick)
	if dtDur <= 0 {
		return
	}
	dt := dtDur.Seconds()
	r.lastTick = now
	r.tickCount++
	elapsed := now.Sub(r.startTime)

	r.drainCommands(now)

	// 1. Shrink the safe zone, then evict pellets and relocate the apple.
	if r.cfg.ShrinkEnabled {
		r.bounds = game.ShrunkBounds(r.cfg.MapWidth, r.cfg.MapHeight, elapsed, r.cfg.MaxDuration,
			r.cfg.ShrinkEndFraction, r.cfg.MinBoundsFraction)
		for id, p := range r.pellets {
			if !r.bounds.Contains(p.Pos) {
				delete(r.pellets, id)
			}
		}
		if r.apple != nil && !r.apple.Held() && !r.bounds.Contains(r.apple.Pos) {
			r.apple.Pos = game.SpawnPoint(r.bounds)
			r.publishEvent(protocol.AppleMsg{
				Type: protocol.MsgApple, Event: protocol.AppleRespawned,
				ID: r.apple.ID, X: protocol.Round1(r.apple.Pos.X), Y: protocol.Round1(r.apple.Pos.Y),
			})
		}
	}

	// 2. Integrate movement and boost upkeep.
	for _, p := range r.players {
		if !p.Alive() {
			continue
		}
		s := p.Snake
		s.MoveHead(dt)
		head := s.Head()
		s.Segments[0] = game.Vec2{
			X: game.Clamp(head.X, 0, r.cfg.MapWidth),
			Y: game.Clamp(head.Y, 0, r.cfg.MapHeight),
		}
		s.FollowBody()

		if s.Boosting && now.Sub(s.LastBoostCost) >= game.BoostCostInterval {
			s.LastBoostCost = now
			for _, pos := range s.RemoveSegments(1) {
				pel := game.NewPelletAt(pos, r.bounds)
				r.pellets[pel.ID] = pel
			}
			if s.Length <= game.MinBoostLength {
				s.Boosting = false
			}
		}
		if s.Length > p.Stats.MaxLength {
			p.Stats.MaxLength = s.Length
		}
	}

	// 3. Collisions: pellets via the grid, snake pairs directly.
	r.grid.Clear()
	for _, pel := range r.pellets {
		r.grid.Insert(pel)
	}
	for _, p := range r.players {
		if !p.Alive() {
			continue
		}
		head := p.Snake.Head()
		for _, pel := range r.grid.GetNearby(head.X, head.Y) {
			if _, live := r.pellets[pel.ID]; !live {
				continue
			}
			if game.Dist(head, pel.Pos) <= game.HeadRadius+game.PelletRadius {
				delete(r.pellets, pel.ID)
				grow := int(math.Round(float64(pel.Mass) * p.Snake.StatMult))
				if grow < 1 {
					grow = 1
				}
				p.Snake.AddSegments(grow)
				p.Stats.PelletsEaten++
			}
		}
	}
	for victimID, killerID := range r.detectSnakeCollisions() {
		killerName := ""
		if k, ok := r.players[killerID]; ok {
			killerName = k.Name
		}
		r.killPlayer(victimID, killerID, killerName, now)
	}

	// 4. Apple pickup and carry.
	if r.apple != nil {
		if !r.apple.Held() {
			for id, p := range r.players {
				if !p.Alive() {
					continue
				}
				if game.Dist(p.Snake.Head(), r.apple.Pos) <= game.HeadRadius+game.AppleRadius {
					r.apple.HeldBy = id
					r.lastHolderID = id
					r.holderKillerID = ""
					r.publishEvent(protocol.AppleMsg{
						Type: protocol.MsgApple, Event: protocol.ApplePickedUp,
						ID: r.apple.ID, Holder: id,
					})
					break
				}
			}
		} else if holder, ok := r.players[r.apple.HeldBy]; ok && holder.Alive() {
			r.apple.Pos = holder.Snake.Head()
		}
	}

	// 5. Boundary kill timers.
	if r.cfg.ShrinkEnabled {
		r.applyBoundaryPressure(now)
	}

	// 6. Leaderboard and rank statistics.
	ranked := r.rankedLivePlayers()
	for i, p := range ranked {
		p.NoteRank(i + 1)
		if i == 0 {
			p.Stats.TimeAsLeader += dtDur
		}
	}

	// 7. Win conditions, throttled to once per second.
	live := len(ranked)
	if live > r.peakPlayers {
		r.peakPlayers = live
	}
	if now.Sub(r.lastWinCheck) >= time.Second {
		r.lastWinCheck = now
		switch {
		case live == 0:
			r.endMatch(nil, now)
			return
		case live == 1 && r.peakPlayers > 1:
			r.endMatch(ranked[0], now)
			return
		case elapsed >= r.cfg.MaxDuration:
			var winner *game.Player
			if live > 0 {
				winner = ranked[0]
			}
			r.endMatch(winner, now)
			return
		}
	}

	// 8. Broadcast a fresh full snapshot at the coarse cadence.
	if r.tickCount%r.broadcastEvery == 0 {
		r.broadcastState(ranked, elapsed)
	}

	// 9. Refill pellets up to the target, inside current bounds.
	for len(r.pellets) < r.cfg.TargetPelletCount {
		pel := game.NewPellet(r.bounds)
		r.pellets[pel.ID] = pel
	}
}

// drainCommands applies all queued inputs. Commands for unknown or dead
// players are no-ops.
func (r *Room) drainCommands(now time.Time) {
	for {
		select {
		case c := <-r.commands:
			r.applyCommand(c, now)
		default:
			return
		}
	}
}

func (r *Room) applyCommand(c command, now time.Time) {
	p, ok := r.players[c.playerID]
	if !ok {
		log.Printf("room %s: command for unknown player %s", r.ID, c.playerID)
		return
	}
	if !p.Alive() {
		return
	}
	switch c.kind {
	case cmdMove:
		p.Snake.Target = game.Vec2{
			X: game.Clamp(c.x, -game.TargetClampBuffer, r.cfg.MapWidth+game.TargetClampBuffer),
			Y: game.Clamp(c.y, -game.TargetClampBuffer, r.cfg.MapHeight+game.TargetClampBuffer),
		}
		p.LastInputAt = now
	case cmdBoost:
		on := c.on
		if on && p.Snake.Length <= game.MinBoostLength {
			on = false
		}
		if on && !p.Snake.Boosting {
			p.Snake.LastBoostCost = now
		}
		p.Snake.Boosting = on
		p.LastInputAt = now
	}
}

// detectSnakeCollisions tests every attacker's head against every other
// snake's body capsules, skipping the head segment. Snakes never collide
// with their own body. First hit kills the attacker.
func (r *Room) detectSnakeCollisions() map[string]string {
	deaths := make(map[string]string)
	alive := r.alivePlayers()
	for _, attacker := range alive {
		if _, dead := deaths[attacker.ID]; dead {
			continue
		}
		head := attacker.Snake.Head()
		for _, defender := range alive {
			if defender.ID == attacker.ID {
				continue
			}
			segs := defender.Snake.Segments
			hit := false
			for j := 1; j+1 < len(segs); j++ {
				if game.PointSegmentDistance(head, segs[j], segs[j+1]) < game.HeadRadius+game.BodyRadius {
					deaths[attacker.ID] = defender.ID
					hit = true
					break
				}
			}
			if hit {
				break
			}
		}
	}
	return deaths
}

// killPlayer clears the victim's snake, scatters its body as pellets,
// credits the killer and handles the apple drop. The player record stays
// for final rankings.
func (r *Room) killPlayer(victimID, killerID, killerName string, now time.Time) {
	p, ok := r.players[victimID]
	if !ok || !p.Alive() {
		return
	}
	segs := p.Snake.Segments
	deathPos := segs[0]
	p.Snake.Clear()
	p.DiedAt = now
	p.Stats.TimeSurvived = now.Sub(p.JoinedAt)

	dropped := 0
	for i := 0; i < len(segs); i += game.DeathPelletDensity {
		pel := game.NewPelletAt(segs[i], r.bounds)
		r.pellets[pel.ID] = pel
		dropped++
	}

	if killer, ok := r.players[killerID]; ok && killerID != victimID {
		killer.Stats.Kills++
	}

	if r.apple != nil && r.apple.HeldBy == victimID {
		r.apple.Drop(deathPos)
		r.holderKillerID = killerID
		r.publishEvent(protocol.AppleMsg{
			Type: protocol.MsgApple, Event: protocol.AppleDropped,
			ID: r.apple.ID, X: protocol.Round1(deathPos.X), Y: protocol.Round1(deathPos.Y),
		})
	}

	r.notify(victimID, protocol.DeathMsg{
		Type:   protocol.MsgDeath,
		Killer: killerName,
		Length: len(segs),
		Kills:  p.Stats.Kills,
	})
	r.publishEvent(protocol.ElimMsg{
		Type:       protocol.MsgElim,
		VictimID:   victimID,
		VictimName: p.Name,
		KillerID:   killerID,
		KillerName: killerName,
	})
	log.Printf("room %s: %s eliminated by %q, dropped %d pellets", r.ID, p.Name, killerName, dropped)
}

// applyBoundaryPressure runs the 3-second boundary kill timer for every head
// within the margin of a bounds wall.
func (r *Room) applyBoundaryPressure(now time.Time) {
	for id, p := range r.players {
		if !p.Alive() {
			continue
		}
		head := p.Snake.Head()
		if r.bounds.EdgeProximity(head) <= game.BoundaryMargin {
			if p.BoundaryTouchSince.IsZero() {
				p.BoundaryTouchSince = now
				r.notify(id, protocol.BoundaryMsg{
					Type: protocol.MsgBoundary, State: protocol.BoundaryWarning,
					MSLeft: game.BoundaryKillDelay.Milliseconds(),
				})
			} else if now.Sub(p.BoundaryTouchSince) >= game.BoundaryKillDelay {
				r.notify(id, protocol.BoundaryMsg{Type: protocol.MsgBoundary, State: protocol.BoundaryKilled})
				r.killPlayer(id, "", "Boundary", now)
				p.BoundaryTouchSince = time.Time{}
			}
		} else if !p.BoundaryTouchSince.IsZero() {
			p.BoundaryTouchSince = time.Time{}
			r.notify(id, protocol.BoundaryMsg{Type: protocol.MsgBoundary, State: protocol.BoundarySafe})
		}
	}
}

// alivePlayers returns live players in no particular order.
// Caller must hold mu.
func (r *Room) alivePlayers() []*game.Player {
	out := make([]*game.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// rankedLivePlayers returns live players sorted by length, descending.
// Caller must hold mu.
func (r *Room) rankedLivePlayers() []*game.Player {
	out := r.alivePlayers()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Snake.Length != out[j].Snake.Length {
			return out[i].Snake.Length > out[j].Snake.Length
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// endMatch finalizes statistics, resolves the apple reward, fires the
// lifecycle hooks and tears the room down. Caller must hold mu.
func (r *Room) endMatch(winner *game.Player, now time.Time) {
	r.ended = true

	for _, p := range r.players {
		if p.Alive() {
			p.Stats.TimeSurvived = now.Sub(p.JoinedAt)
		}
	}
	rankings := r.finalRankings()

	// Holder at end takes priority; otherwise the winner is rewarded when
	// they are the one who eliminated the last holder.
	if r.apple != nil {
		if holder, ok := r.players[r.apple.HeldBy]; ok && r.apple.Held() {
			r.reward(holder, protocol.RewardHeldAtEnd)
		} else if winner != nil && r.lastHolderID != "" && r.holderKillerID == winner.ID {
			r.reward(winner, protocol.RewardKilledHolder)
		}
	}

	winnerID := ""
	if winner != nil {
		winnerID = winner.ID
		log.Printf("room %s: match won by %s (%s)", r.ID, winner.Name, winner.ID)
		if !winner.IsBot && r.hooks.OnWinnerDetermined != nil {
			r.hooks.OnWinnerDetermined(winner.ID, winner.Name, r.ID, winner.SessionID, r.tier.Name, len(r.players))
		}
	} else {
		log.Printf("room %s: match ended with no winner", r.ID)
	}

	r.publishEvent(protocol.EndMsg{Type: protocol.MsgEnd, WinnerID: winnerID, Rankings: rankings})

	if r.hooks.OnGameEnd != nil {
		r.hooks.OnGameEnd(r.ID)
	}

	r.quitOnce.Do(func() { close(r.quit) })
	r.players = make(map[string]*game.Player)
	r.pellets = make(map[string]*game.Pellet)
	r.apple = nil
	r.grid.Clear()
}

func (r *Room) reward(p *game.Player, reason string) {
	log.Printf("room %s: apple reward to %s (%s)", r.ID, p.Name, reason)
	if p.IsBot || r.hooks.OnAppleReward == nil {
		return
	}
	r.hooks.OnAppleReward(p.ID, p.Wallet, reason)
}

// finalRankings orders every player record by time survived, then length,
// kills and pellets as tie-breaks. Caller must hold mu.
func (r *Room) finalRankings() []protocol.RankingDTO {
	all := make([]*game.Player, 0, len(r.players))
	for _, p := range r.players {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Stats.TimeSurvived != b.Stats.TimeSurvived {
			return a.Stats.TimeSurvived > b.Stats.TimeSurvived
		}
		if a.Snake.Length != b.Snake.Length {
			return a.Snake.Length > b.Snake.Length
		}
		if a.Stats.Kills != b.Stats.Kills {
			return a.Stats.Kills > b.Stats.Kills
		}
		return a.Stats.PelletsEaten > b.Stats.PelletsEaten
	})
	out := make([]protocol.RankingDTO, len(all))
	for i, p := range all {
		out[i] = protocol.RankingDTO{
			Rank:           i + 1,
			ID:             p.ID,
			Name:           p.Name,
			TimeSurvivedMS: p.Stats.TimeSurvived.Milliseconds(),
			Length:         p.Snake.Length,
			Kills:          p.Stats.Kills,
			Pellets:        p.Stats.PelletsEaten,
			MaxLength:      p.Stats.MaxLength,
			BestRank:       p.Stats.BestRank,
			TimeAsLeaderMS: p.Stats.TimeAsLeader.Milliseconds(),
		}
	}
	return out
}

// abortLocked discards this room's state after a tick failure without
// touching any other room. Caller must hold mu.
func (r *Room) abortLocked() {
	if r.ended {
		return
	}
	r.ended = true
	r.quitOnce.Do(func() { close(r.quit) })
	r.players = make(map[string]*game.Player)
	r.pellets = make(map[string]*game.Pellet)
	r.apple = nil
	r.grid.Clear()
	if r.hooks.OnGameEnd != nil {
		r.hooks.OnGameEnd(r.ID)
	}
}

// broadcastState builds a fresh immutable snapshot and publishes it to all
// subscribers. Caller must hold mu.
func (r *Room) broadcastState(ranked []*game.Player, elapsed time.Duration) {
	msg := protocol.StateMsg{
		Type:        protocol.MsgState,
		Snakes:      make([]protocol.SnakeDTO, 0, len(ranked)),
		Pellets:     make([]protocol.PelletDTO, 0, len(r.pellets)),
		Leaderboard: make([]protocol.LeaderboardEntry, 0, r.cfg.LeaderboardSize),
	}
	for _, p := range r.players {
		if !p.Alive() {
			continue
		}
		s := p.Snake
		pairs := make([][2]float64, len(s.Segments))
		for i, seg := range s.Segments {
			pairs[i] = [2]float64{protocol.Round1(seg.X), protocol.Round1(seg.Y)}
		}
		boosting := 0
		if s.Boosting {
			boosting = 1
		}
		msg.Snakes = append(msg.Snakes, protocol.SnakeDTO{
			ID:        p.ID,
			Name:      p.Name,
			Segments:  pairs,
			Angle:     protocol.Round1(s.Angle),
			Length:    s.Length,
			Color:     p.Color,
			Boosting:  boosting,
			Cosmetics: p.Cosmetics,
		})
	}
	for _, pel := range r.pellets {
		msg.Pellets = append(msg.Pellets, protocol.PelletDTO{
			X: protocol.Round1(pel.Pos.X), Y: protocol.Round1(pel.Pos.Y), Color: pel.Color,
		})
	}
	for i, p := range ranked {
		if i >= r.cfg.LeaderboardSize {
			break
		}
		msg.Leaderboard = append(msg.Leaderboard, protocol.LeaderboardEntry{
			ID: p.ID, Name: p.Name, Length: p.Snake.Length,
		})
	}
	for subID := range r.subs {
		if _, isPlayer := r.players[subID]; !isPlayer {
			msg.Spectators++
		}
	}
	if r.cfg.ShrinkEnabled {
		msg.Bounds = &protocol.BoundsDTO{
			MinX: protocol.Round1(r.bounds.MinX), MaxX: protocol.Round1(r.bounds.MaxX),
			MinY: protocol.Round1(r.bounds.MinY), MaxY: protocol.Round1(r.bounds.MaxY),
		}
	}
	if left := r.cfg.MaxDuration - elapsed; left > 0 {
		msg.TimeLeftMS = left.Milliseconds()
	}
	if r.apple != nil {
		msg.Apple = &protocol.AppleDTO{
			ID: r.apple.ID,
			X:  protocol.Round1(r.apple.Pos.X), Y: protocol.Round1(r.apple.Pos.Y),
			Holder: r.apple.HeldBy,
		}
	}

	data, err := protocol.EncodeState(msg)
	if err != nil {
		log.Printf("room %s: state encode error: %v", r.ID, err)
		return
	}
	r.publish(Outbound{Binary: true, Data: data})
}

// publish sends to every subscriber, dropping for any that is full.
// Caller must hold mu.
func (r *Room) publish(out Outbound) {
	for _, ch := range r.subs {
		select {
		case ch <- out:
		default:
		}
	}
}

// publishEvent JSON-encodes a lifecycle event and publishes it.
// Caller must hold mu.
func (r *Room) publishEvent(v any) {
	data, err := protocol.EncodeEvent(v)
	if err != nil {
		log.Printf("room %s: event encode error: %v", r.ID, err)
		return
	}
	r.publish(Outbound{Data: data})
}

// notify sends an event to one subscriber by id, dropping if it is full.
// Caller must hold mu.
func (r *Room) notify(subID string, v any) {
	ch, ok := r.subs[subID]
	if !ok {
		return
	}
	data, err := protocol.EncodeEvent(v)
	if err != nil {
		return
	}
	select {
	case ch <- Outbound{Data: data}:
	default:
	}
}
