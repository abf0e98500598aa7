package game

import (
	"math"
	"math/rand"
	"time"
)

// Snake is the body a player steers. Segments[0] is the head; the rest of
// the body replays the head's own path at constant arc-length spacing, so
// segments never overtake a sharp turn at high speed.
//
// An empty segment slice means the snake is dead. While alive,
// Length == len(Segments).
type Snake struct {
	Segments []Vec2
	HeadPath []Vec2 // positions the head has visited, most recent first
	Angle    float64
	Length   int
	Velocity Vec2
	Boosting bool
	Target   Vec2 // world point the head steers toward

	SpawnedAt     time.Time
	LastBoostCost time.Time

	// StatMult scales growth fully and speed at SpeedMultiplierShare.
	StatMult float64
}

// NewSnake lays out a snake of length segments at pos heading angle, with
// the body trailing behind the head.
func NewSnake(pos Vec2, angle float64, length int, statMult float64, now time.Time) *Snake {
	if statMult <= 0 {
		statMult = 1.0
	}
	segs := make([]Vec2, length)
	for i := range segs {
		segs[i] = Vec2{
			X: pos.X - float64(i)*SegmentSpacing*math.Cos(angle),
			Y: pos.Y - float64(i)*SegmentSpacing*math.Sin(angle),
		}
	}
	// Seed the head path with the trailing layout so the first FollowBody
	// has real arc length to walk instead of pinning the body to the spawn
	// point.
	step := SegmentSpacing / 2
	path := make([]Vec2, length*HeadPathFactor)
	for i := range path {
		d := float64(i+1) * step
		path[i] = Vec2{
			X: pos.X - d*math.Cos(angle),
			Y: pos.Y - d*math.Sin(angle),
		}
	}
	return &Snake{
		Segments:  segs,
		HeadPath:  path,
		Angle:     angle,
		Length:    length,
		Target:    Vec2{X: pos.X + 1000*math.Cos(angle), Y: pos.Y + 1000*math.Sin(angle)},
		SpawnedAt: now,
		StatMult:  statMult,
	}
}

// SpawnPoint picks a random position inside b, keeping SpawnMargin away
// from the walls where the box is large enough to allow it.
func SpawnPoint(b Bounds) Vec2 {
	minX, maxX := b.MinX+SpawnMargin, b.MaxX-SpawnMargin
	minY, maxY := b.MinY+SpawnMargin, b.MaxY-SpawnMargin
	if minX >= maxX {
		minX, maxX = b.MinX, b.MaxX
	}
	if minY >= maxY {
		minY, maxY = b.MinY, b.MaxY
	}
	return Vec2{
		X: minX + rand.Float64()*(maxX-minX),
		Y: minY + rand.Float64()*(maxY-minY),
	}
}

// Alive reports whether the snake still has a body.
func (s *Snake) Alive() bool {
	return len(s.Segments) > 0
}

// Head returns the head position. Only valid while alive.
func (s *Snake) Head() Vec2 {
	return s.Segments[0]
}

// Speed returns the current scalar speed, boosted or not, with the stat
// multiplier contributing only its speed share.
func (s *Snake) Speed() float64 {
	base := NormalSpeed
	if s.Boosting {
		base = BoostSpeed
	}
	return base * (1 + (s.StatMult-1)*SpeedMultiplierShare)
}

// MoveHead steers the heading toward the stored target, advances the head
// by velocity*dt and records the pre-move head position on the head path.
func (s *Snake) MoveHead(dt float64) {
	if !s.Alive() {
		return
	}
	head := s.Head()
	desired := math.Atan2(s.Target.Y-head.Y, s.Target.X-head.X)
	s.Angle = RotateToward(s.Angle, desired, MaxTurnRate*dt)

	speed := s.Speed()
	s.Velocity = Vec2{X: math.Cos(s.Angle) * speed, Y: math.Sin(s.Angle) * speed}

	s.HeadPath = append([]Vec2{head}, s.HeadPath...)
	s.Segments[0] = Vec2{X: head.X + s.Velocity.X*dt, Y: head.Y + s.Velocity.Y*dt}
	s.trimPath()
}

// FollowBody places every body segment along the head path at SegmentSpacing
// arc-length intervals behind the one before it. If the path runs out, the
// remaining segments are pinned to the last available point rather than left
// unset.
func (s *Snake) FollowBody() {
	if len(s.Segments) < 2 {
		return
	}
	if len(s.HeadPath) == 0 {
		tail := s.Segments[0]
		for i := 1; i < len(s.Segments); i++ {
			s.Segments[i] = tail
		}
		return
	}

	idx := 0
	prev := s.Segments[0]
	for i := 1; i < len(s.Segments); i++ {
		acc := 0.0
		placed := false
		for idx < len(s.HeadPath) {
			p := s.HeadPath[idx]
			acc += Dist(prev, p)
			prev = p
			idx++
			if acc >= SegmentSpacing {
				s.Segments[i] = p
				placed = true
				break
			}
		}
		if !placed {
			last := s.HeadPath[len(s.HeadPath)-1]
			for ; i < len(s.Segments); i++ {
				s.Segments[i] = last
			}
			return
		}
	}
}

// trimPath caps the head path at HeadPathFactor points per segment.
func (s *Snake) trimPath() {
	max := s.Length * HeadPathFactor
	if max < 1 {
		max = 1
	}
	if len(s.HeadPath) > max {
		s.HeadPath = s.HeadPath[:max]
	}
}

// CanSelfCollide is true only after the spawn grace period, while the
// initial segments are still collapsed near the head.
func (s *Snake) CanSelfCollide(now time.Time) bool {
	return now.Sub(s.SpawnedAt) >= SelfCollisionDelay
}

// AddSegments appends n copies of the tail position. Normal movement
// smooths them out over the following ticks.
func (s *Snake) AddSegments(n int) {
	if n <= 0 || !s.Alive() {
		return
	}
	tail := s.Segments[len(s.Segments)-1]
	for i := 0; i < n; i++ {
		s.Segments = append(s.Segments, tail)
	}
	s.Length += n
}

// RemoveSegments truncates up to n segments from the tail, never going below
// MinBoostLength. It returns the removed positions so the caller can scatter
// them as pellets. At or below the floor this is a no-op.
func (s *Snake) RemoveSegments(n int) []Vec2 {
	if n <= 0 || !s.Alive() {
		return nil
	}
	room := s.Length - MinBoostLength
	if room <= 0 {
		return nil
	}
	if n > room {
		n = room
	}
	removed := make([]Vec2, n)
	copy(removed, s.Segments[len(s.Segments)-n:])
	s.Segments = s.Segments[:len(s.Segments)-n]
	s.Length -= n
	return removed
}

// Clear kills the snake: no segments, zero length.
func (s *Snake) Clear() {
	s.Segments = nil
	s.HeadPath = nil
	s.Length = 0
	s.Boosting = false
	s.Velocity = Vec2{}
}
