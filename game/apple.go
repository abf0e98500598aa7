package game

import (
	"time"

	"github.com/google/uuid"
)

// Apple is the single special pickup of a match. It is held implicitly by
// whichever snake's head last touched it, and dropped at the holder's last
// position when the holder dies.
type Apple struct {
	ID        string
	Pos       Vec2
	HeldBy    string // player id, empty while unheld
	SpawnedAt time.Time
}

// NewApple creates an unheld apple at pos.
func NewApple(pos Vec2, now time.Time) *Apple {
	return &Apple{
		ID:        uuid.New().String(),
		Pos:       pos,
		SpawnedAt: now,
	}
}

// Held reports whether a snake currently carries the apple.
func (a *Apple) Held() bool {
	return a.HeldBy != ""
}

// Drop releases the apple at pos.
func (a *Apple) Drop(pos Vec2) {
	a.HeldBy = ""
	a.Pos = pos
}
