package game

import "time"

// Stats is the per-match statistics block for one player.
type Stats struct {
	PelletsEaten int
	Kills        int
	MaxLength    int
	TimeAsLeader time.Duration
	BestRank     int // 0 = never ranked
	TimeSurvived time.Duration
}

// Player wraps one snake plus identity and bookkeeping. The record persists
// after the snake dies so final rankings can include everyone.
type Player struct {
	ID        string
	Name      string
	SessionID string
	Color     string
	Snake     *Snake
	IsBot     bool

	// External identity, opaque to the simulation.
	Wallet    string
	Cosmetics []string

	Stats Stats

	JoinedAt    time.Time
	LastInputAt time.Time

	// BoundaryTouchSince is zero while the head is clear of the bounds wall.
	BoundaryTouchSince time.Time

	// DiedAt is zero while alive.
	DiedAt time.Time
}

// Alive reports whether the player's snake still has a body.
func (p *Player) Alive() bool {
	return p.Snake != nil && p.Snake.Alive()
}

// NoteRank records rank (1-based) if it beats the best seen so far.
func (p *Player) NoteRank(rank int) {
	if p.Stats.BestRank == 0 || rank < p.Stats.BestRank {
		p.Stats.BestRank = rank
	}
}
