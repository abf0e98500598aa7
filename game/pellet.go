package game

import (
	"fmt"
	"math/rand"
	"sync/atomic"
)

// Pellet is a static food item worth one unit of mass.
type Pellet struct {
	ID    string
	Pos   Vec2
	Mass  int
	Color string
}

var pelletCounter atomic.Int64

func newPelletID() string {
	return fmt.Sprintf("f%d", pelletCounter.Add(1))
}

// NewPellet creates a pellet at a uniformly random point inside b.
func NewPellet(b Bounds) *Pellet {
	return &Pellet{
		ID:    newPelletID(),
		Pos:   Vec2{X: b.MinX + rand.Float64()*b.Width(), Y: b.MinY + rand.Float64()*b.Height()},
		Mass:  1,
		Color: randomFromSlice(pelletColors),
	}
}

// NewPelletAt creates a pellet near pos, jittered ±20 units so death and
// boost drops spread along the body instead of piling up, then clamped back
// inside b.
func NewPelletAt(pos Vec2, b Bounds) *Pellet {
	const scatter = 20.0
	p := Vec2{
		X: Clamp(pos.X+(rand.Float64()*2-1)*scatter, b.MinX, b.MaxX),
		Y: Clamp(pos.Y+(rand.Float64()*2-1)*scatter, b.MinY, b.MaxY),
	}
	return &Pellet{
		ID:    newPelletID(),
		Pos:   p,
		Mass:  1,
		Color: randomFromSlice(dropColors),
	}
}

var pelletColors = []string{
	"#ff6b6b", "#ffd93d", "#6bcb77", "#4d96ff", "#ff922b",
	"#cc5de8", "#20c997", "#f06595", "#74c0fc", "#a9e34b",
}

var dropColors = []string{
	"#f39c12", "#e67e22", "#d35400", "#c0392b", "#e74c3c",
}

// PlayerColors is the palette snakes are assigned from on join.
var PlayerColors = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6",
	"#1abc9c", "#e67e22", "#e91e63", "#00bcd4", "#8bc34a",
	"#ff5722", "#607d8b", "#795548", "#673ab7", "#03a9f4",
	"#4caf50", "#ffeb3b", "#ff9800", "#f44336", "#9c27b0",
}

// RandomColor picks a random snake color from the palette.
func RandomColor() string {
	return randomFromSlice(PlayerColors)
}

func randomFromSlice(s []string) string {
	return s[rand.Intn(len(s))]
}
