package room

// Outbound is one message published to a room subscriber. State snapshots
// are msgpack binary; everything else is JSON text.
type Outbound struct {
	Binary bool
	Data   []byte
}

type cmdKind int

const (
	cmdMove cmdKind = iota
	cmdBoost
)

// command is one queued client (or bot) input. Commands only ever update a
// player's stored target or boost flag; they never touch segment arrays.
type command struct {
	kind     cmdKind
	playerID string
	x, y     float64
	on       bool
}

// Hooks are the external collaborator callbacks invoked by the room at
// well-defined lifecycle points. All are optional. Hooks run on the room's
// tick goroutine and must not call back into the room.
type Hooks struct {
	// OnGameEnd fires after the match is fully torn down; the room may be
	// reclaimed.
	OnGameEnd func(roomID string)

	// OnWinnerDetermined triggers any off-core payout or settlement.
	OnWinnerDetermined func(winnerID, winnerName, matchID, sessionID, tier string, playerCount int)

	// OnAppleReward triggers an off-core inventory credit.
	OnAppleReward func(playerID, wallet, reason string)

	// OnCheatDetected is reserved; the simulation only clamps bad input.
	OnCheatDetected func(playerID, playerName, reason string)
}
