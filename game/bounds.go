package game

import "time"

// Bounds is the rectangular safe zone currently enforced on the map.
type Bounds struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// FullBounds covers the whole map.
func FullBounds(mapW, mapH float64) Bounds {
	return Bounds{MinX: 0, MaxX: mapW, MinY: 0, MaxY: mapH}
}

// ShrunkBounds returns the safe zone after elapsed time of a match capped at
// maxDuration. The zone shrinks linearly toward the map center, completing at
// endFraction of the match and holding at minFraction of each dimension from
// then on, which guarantees an end-game arena.
func ShrunkBounds(mapW, mapH float64, elapsed, maxDuration time.Duration, endFraction, minFraction float64) Bounds {
	if maxDuration <= 0 || endFraction <= 0 {
		return FullBounds(mapW, mapH)
	}
	progress := elapsed.Seconds() / (maxDuration.Seconds() * endFraction)
	progress = Clamp(progress, 0, 1)

	scale := 1 - progress*(1-minFraction)
	halfW := mapW * scale / 2
	halfH := mapH * scale / 2
	cx := mapW / 2
	cy := mapH / 2
	return Bounds{MinX: cx - halfW, MaxX: cx + halfW, MinY: cy - halfH, MaxY: cy + halfH}
}

// Contains reports whether p is inside the zone.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// EdgeProximity returns the distance from p to the nearest wall. Negative
// when p is outside the zone.
func (b Bounds) EdgeProximity(p Vec2) float64 {
	d := p.X - b.MinX
	if v := b.MaxX - p.X; v < d {
		d = v
	}
	if v := p.Y - b.MinY; v < d {
		d = v
	}
	if v := b.MaxY - p.Y; v < d {
		d = v
	}
	return d
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Area returns the enclosed area.
func (b Bounds) Area() float64 { return b.Width() * b.Height() }
