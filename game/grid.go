package game

import "math"

type cellKey struct {
	cx, cy int
}

// Grid is a uniform hash grid over pellet positions. It is rebuilt from
// scratch every tick rather than incrementally maintained. Snakes are not
// bucketed: their count per match is small and bounded, so snake collision
// iterates them directly.
type Grid struct {
	cells    map[cellKey][]*Pellet
	cellSize float64
}

// NewGrid creates an empty grid with the given cell size.
func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cells:    make(map[cellKey][]*Pellet),
		cellSize: cellSize,
	}
}

// Clear empties all buckets.
func (g *Grid) Clear() {
	g.cells = make(map[cellKey][]*Pellet)
}

func (g *Grid) keyFor(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / g.cellSize)),
		cy: int(math.Floor(y / g.cellSize)),
	}
}

// Insert appends a pellet to the bucket for its position.
func (g *Grid) Insert(p *Pellet) {
	k := g.keyFor(p.Pos.X, p.Pos.Y)
	g.cells[k] = append(g.cells[k], p)
}

// GetNearby unions the 3×3 neighborhood of buckets around (x, y).
func (g *Grid) GetNearby(x, y float64) []*Pellet {
	center := g.keyFor(x, y)
	var result []*Pellet
	for cx := center.cx - 1; cx <= center.cx+1; cx++ {
		for cy := center.cy - 1; cy <= center.cy+1; cy++ {
			result = append(result, g.cells[cellKey{cx, cy}]...)
		}
	}
	return result
}
