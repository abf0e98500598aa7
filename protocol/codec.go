package protocol

import (
	"encoding/json"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// State snapshots go out at the broadcast rate and dominate bandwidth, so
// they are encoded as msgpack binary frames. Control and lifecycle messages
// are occasional and stay JSON for easy client handling.

// EncodeState marshals a state snapshot to msgpack.
func EncodeState(s StateMsg) ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeState unmarshals a msgpack state snapshot.
func DecodeState(b []byte) (StateMsg, error) {
	var s StateMsg
	err := msgpack.Unmarshal(b, &s)
	return s, err
}

// EncodeEvent marshals a control or lifecycle message to JSON.
func EncodeEvent(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Round1 rounds a coordinate to 1 decimal place to save wire bytes.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
