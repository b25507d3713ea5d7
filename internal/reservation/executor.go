package reservation

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Executor runs the hold and release scripts.  It keeps no state of its own;
// any number of goroutines and processes may share the same store.
type Executor struct {
	rdb         redis.Scripter
	hardCeiling bool
}

// NewExecutor returns an Executor bound to rdb.  With hardCeiling set, a hold
// that would push the counter past capacity is refused instead of being
// accepted and closing the match afterwards.
func NewExecutor(rdb redis.Scripter, hardCeiling bool) *Executor {
	return &Executor{rdb: rdb, hardCeiling: hardCeiling}
}

// TryHold locks every seat in seatIDs for claimant, or none of them.  It
// returns false with a nil error when at least one seat is already taken.
// On success the reserved counter grows by len(seatIDs) and the status flag
// is set to CLOSED once the counter reaches capacity.
//
// The caller guarantees 1 <= len(seatIDs) <= max and no duplicates; a
// duplicate would be counted twice.
func (x *Executor) TryHold(ctx context.Context, matchID uint64, seatIDs []string, claimant string, capacity int64) (bool, error) {
	keys := make([]string, 0, len(seatIDs)+2)
	keys = append(keys, CounterKey(matchID), StatusKey(matchID))
	keys = append(keys, seatKeys(matchID, seatIDs)...)

	ceiling := "0"
	if x.hardCeiling {
		ceiling = "1"
	}
	res, err := holdScript.Run(ctx, x.rdb, keys, claimant, strconv.FormatInt(capacity, 10), ceiling).Int64Slice()
	if err != nil {
		return false, Infrastructure(matchID, "hold script", err)
	}
	code, _, err := decodeResult(res)
	if err != nil {
		return false, Infrastructure(matchID, "hold script", err)
	}
	switch code {
	case codeOK:
		return true, nil
	case codeConflict:
		return false, nil
	case codeCapacity:
		return false, Closed(matchID, "capacity reached")
	}
	return false, Infrastructure(matchID, "hold script", fmt.Errorf("unexpected result code %d", code))
}

// Release removes the locks of seatIDs when every one of them is owned by
// claimant and lowers the counter accordingly.  Nothing changes when any
// seat is free (KindNotHeld) or owned by someone else (KindConflict).  The
// status flag is left alone; reconciliation reopens the match if its
// lifecycle allows it.
func (x *Executor) Release(ctx context.Context, matchID uint64, seatIDs []string, claimant string) error {
	keys := make([]string, 0, len(seatIDs)+1)
	keys = append(keys, CounterKey(matchID))
	keys = append(keys, seatKeys(matchID, seatIDs)...)

	res, err := releaseScript.Run(ctx, x.rdb, keys, claimant).Int64Slice()
	if err != nil {
		return Infrastructure(matchID, "release script", err)
	}
	code, idx, err := decodeResult(res)
	if err != nil {
		return Infrastructure(matchID, "release script", err)
	}
	switch code {
	case codeOK:
		return nil
	case codeNotHeld:
		seat := seatAt(seatIDs, idx)
		return &Error{Kind: KindNotHeld, MatchID: matchID, SeatID: seat, Msg: fmt.Sprintf("seat %s is not held", seat)}
	case codeConflict:
		seat := seatAt(seatIDs, idx)
		return &Error{Kind: KindConflict, MatchID: matchID, SeatID: seat, Msg: fmt.Sprintf("seat %s is held by another user", seat)}
	}
	return Infrastructure(matchID, "release script", fmt.Errorf("unexpected result code %d", code))
}

func decodeResult(res []int64) (code, idx int64, err error) {
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("unexpected script result %v", res)
	}
	return res[0], res[1], nil
}

// seatAt maps a 1-based script index back to the seat id.
func seatAt(seatIDs []string, idx int64) string {
	if idx < 1 || int(idx) > len(seatIDs) {
		return ""
	}
	return seatIDs[idx-1]
}
