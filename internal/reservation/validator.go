package reservation

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ConfirmOutcome is the result of checking seat ownership.
type ConfirmOutcome int

const (
	ConfirmSuccess ConfirmOutcome = iota + 1
	ConfirmNotHeld
	ConfirmConflict
)

func (o ConfirmOutcome) String() string {
	switch o {
	case ConfirmSuccess:
		return "SUCCESS"
	case ConfirmNotHeld:
		return "NOT_HELD"
	case ConfirmConflict:
		return "CONFLICT"
	}
	return "UNKNOWN"
}

// Validator checks that a claimant still owns the seats it wants to
// confirm.  It only reads: seat locks never expire, so a seat observed as
// owned stays owned until an explicit release.
type Validator struct {
	rdb redis.Cmdable
}

// NewValidator returns a Validator reading from rdb.
func NewValidator(rdb redis.Cmdable) *Validator { return &Validator{rdb: rdb} }

// Confirm reads the owner of every seat in one round trip.  All seats must
// be owned by claimant for ConfirmSuccess.  Otherwise the first failing
// seat, in request order, decides between ConfirmNotHeld and
// ConfirmConflict and is returned alongside.
func (v *Validator) Confirm(ctx context.Context, matchID uint64, seatIDs []string, claimant string) (ConfirmOutcome, string, error) {
	vals, err := v.rdb.MGet(ctx, seatKeys(matchID, seatIDs)...).Result()
	if err != nil {
		return 0, "", Infrastructure(matchID, "read seat owners", err)
	}
	if len(vals) != len(seatIDs) {
		return 0, "", Infrastructure(matchID, "read seat owners", fmt.Errorf("got %d owners for %d seats", len(vals), len(seatIDs)))
	}
	for i, raw := range vals {
		if raw == nil {
			return ConfirmNotHeld, seatIDs[i], nil
		}
		if fmt.Sprint(raw) != claimant {
			return ConfirmConflict, seatIDs[i], nil
		}
	}
	return ConfirmSuccess, "", nil
}
