package protocol

// Wire protocol. Single-character keys keep messages small; all coordinates
// are rounded to 1 decimal place before encoding.
//
// Client → Server (JSON text frames):
//   "j" = join   {"t":"j","n":"Name","w":"wallet","k":["cosmetic"]}
//   "m" = move   {"t":"m","x":123.0,"y":456.0}   (world-coordinate target)
//   "b" = boost  {"t":"b","o":1}                 (edge-triggered, o=0/1)
//
// Server → Client:
//   "w" = welcome (JSON)
//   "s" = state snapshot (msgpack binary frame, broadcast cadence)
//   "d" = death (to the victim), "e" = elimination summary (broadcast)
//   "z" = boundary warning/safe/killed (to the affected player)
//   "a" = apple lifecycle event (broadcast)
//   "g" = match end result (broadcast)

const (
	MsgJoin  = "j"
	MsgMove  = "m"
	MsgBoost = "b"

	MsgWelcome  = "w"
	MsgState    = "s"
	MsgDeath    = "d"
	MsgElim     = "e"
	MsgBoundary = "z"
	MsgApple    = "a"
	MsgEnd      = "g"
	MsgError    = "x"
)

// Boundary event states.
const (
	BoundaryWarning = "warning"
	BoundarySafe    = "safe"
	BoundaryKilled  = "killed"
)

// Apple event kinds.
const (
	AppleSpawned   = "spawned"
	ApplePickedUp  = "picked_up"
	AppleDropped   = "dropped"
	AppleRespawned = "respawned"
	AppleRemoved   = "removed"
)

// Apple reward reasons, passed to the inventory hook.
const (
	RewardHeldAtEnd    = "held_at_end"
	RewardKilledHolder = "killed_holder"
)

// ClientMessage is the base incoming message.
type ClientMessage struct {
	Type      string   `json:"t"`
	Name      string   `json:"n,omitempty"`
	Wallet    string   `json:"w,omitempty"`
	Cosmetics []string `json:"k,omitempty"`
	X         float64  `json:"x,omitempty"`
	Y         float64  `json:"y,omitempty"`
	On        int      `json:"o,omitempty"` // boost flag, 0 or 1
}

// WelcomeMsg is sent once on connect.
type WelcomeMsg struct {
	Type      string  `json:"t"`
	ID        string  `json:"i"`
	RoomID    string  `json:"r"`
	MapWidth  float64 `json:"mw"`
	MapHeight float64 `json:"mh"`
	Color     string  `json:"c"`
}

// SnakeDTO is one live snake in a state snapshot. Segments are flat [x,y]
// pairs. Cosmetic tags are opaque pass-through data.
type SnakeDTO struct {
	ID        string       `json:"i" msgpack:"i"`
	Name      string       `json:"n" msgpack:"n"`
	Segments  [][2]float64 `json:"s" msgpack:"s"`
	Angle     float64      `json:"h" msgpack:"h"`
	Length    int          `json:"l" msgpack:"l"`
	Color     string       `json:"c" msgpack:"c"`
	Boosting  int          `json:"b,omitempty" msgpack:"b"`
	Cosmetics []string     `json:"k,omitempty" msgpack:"k"`
}

// PelletDTO is one pellet in a state snapshot.
type PelletDTO struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Color string  `json:"c" msgpack:"c"`
}

// LeaderboardEntry is a single leaderboard row, ranked by length.
type LeaderboardEntry struct {
	ID     string `json:"i" msgpack:"i"`
	Name   string `json:"n" msgpack:"n"`
	Length int    `json:"l" msgpack:"l"`
}

// BoundsDTO is the current safe zone; nil in StateMsg when shrink is disabled.
type BoundsDTO struct {
	MinX float64 `json:"a" msgpack:"a"`
	MaxX float64 `json:"b" msgpack:"b"`
	MinY float64 `json:"c" msgpack:"c"`
	MaxY float64 `json:"d" msgpack:"d"`
}

// AppleDTO is the special pickup; nil when no apple is in the match.
type AppleDTO struct {
	ID     string  `json:"i" msgpack:"i"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Holder string  `json:"p,omitempty" msgpack:"p"`
}

// StateMsg is the full state snapshot broadcast to every room subscriber.
// It is built fresh each broadcast tick and never aliases room state.
type StateMsg struct {
	Type        string             `json:"t" msgpack:"t"`
	Snakes      []SnakeDTO         `json:"s" msgpack:"s"`
	Pellets     []PelletDTO        `json:"f" msgpack:"f"`
	Leaderboard []LeaderboardEntry `json:"l" msgpack:"l"`
	Spectators  int                `json:"o" msgpack:"o"`
	Bounds      *BoundsDTO         `json:"z,omitempty" msgpack:"z"`
	TimeLeftMS  int64              `json:"r" msgpack:"r"`
	Apple       *AppleDTO          `json:"a,omitempty" msgpack:"a"`
}

// DeathMsg is sent to a player when their snake is eliminated.
type DeathMsg struct {
	Type   string `json:"t"`
	Killer string `json:"k"` // killer name, or "Boundary"
	Length int    `json:"l"` // length at death
	Kills  int    `json:"s"`
}

// ElimMsg is the broadcast elimination summary.
type ElimMsg struct {
	Type       string `json:"t"`
	VictimID   string `json:"v"`
	VictimName string `json:"n"`
	KillerID   string `json:"i,omitempty"`
	KillerName string `json:"k"`
}

// BoundaryMsg notifies a player about their boundary kill timer.
type BoundaryMsg struct {
	Type   string `json:"t"`
	State  string `json:"s"` // warning, safe, killed
	MSLeft int64  `json:"r,omitempty"`
}

// AppleMsg is a broadcast apple lifecycle event.
type AppleMsg struct {
	Type   string  `json:"t"`
	Event  string  `json:"e"`
	ID     string  `json:"i"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Holder string  `json:"p,omitempty"`
}

// RankingDTO is one row of the final rankings, carrying every tie-break
// field and the full per-player stat block.
type RankingDTO struct {
	Rank           int    `json:"r"`
	ID             string `json:"i"`
	Name           string `json:"n"`
	TimeSurvivedMS int64  `json:"v"`
	Length         int    `json:"l"`
	Kills          int    `json:"s"`
	Pellets        int    `json:"f"`
	MaxLength      int    `json:"m"`
	BestRank       int    `json:"b"`
	TimeAsLeaderMS int64  `json:"d"`
}

// EndMsg is the broadcast match end result.
type EndMsg struct {
	Type     string       `json:"t"`
	WinnerID string       `json:"i"` // empty when no winner
	Rankings []RankingDTO `json:"k"`
}

// ErrorMsg is sent before closing a connection that cannot be served.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}
