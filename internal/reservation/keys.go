package reservation

import "strconv"

// Key layout.  The match id is wrapped in a hash tag so that every key of a
// match lives in one cluster slot and a single script may touch all of them.
//
//	seat:{<match>}:<seat>          claimant identity
//	match:{<match>}:reserved_count number of seat keys set
//	match:{<match>}:status         OPEN | CLOSED

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

func tag(matchID uint64) string { return "{" + strconv.FormatUint(matchID, 10) + "}" }

// SeatKey is the lock key of one seat.
func SeatKey(matchID uint64, seatID string) string { return "seat:" + tag(matchID) + ":" + seatID }

// CounterKey is the reserved-seat counter of a match.
func CounterKey(matchID uint64) string { return "match:" + tag(matchID) + ":reserved_count" }

// StatusKey is the cached gating flag of a match.
func StatusKey(matchID uint64) string { return "match:" + tag(matchID) + ":status" }

func seatKeys(matchID uint64, seatIDs []string) []string {
	keys := make([]string, len(seatIDs))
	for i, s := range seatIDs {
		keys[i] = SeatKey(matchID, s)
	}
	return keys
}
