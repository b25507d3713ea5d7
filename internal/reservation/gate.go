package reservation

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Gate answers the cheap "is this match open" question from the cached
// status flag.  Its answer is advisory: the hold script's capacity close is
// what actually prevents overselling.
type Gate struct {
	rdb redis.Cmdable
}

// NewGate returns a Gate reading from rdb.
func NewGate(rdb redis.Cmdable) *Gate { return &Gate{rdb: rdb} }

// IsOpen reports whether the cached flag reads OPEN.  A missing flag means
// closed.
func (g *Gate) IsOpen(ctx context.Context, matchID uint64) (bool, error) {
	status, err := g.Status(ctx, matchID)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(status, StatusOpen), nil
}

// Status returns the raw cached flag, or "" when none is cached.
func (g *Gate) Status(ctx context.Context, matchID uint64) (string, error) {
	v, err := g.rdb.Get(ctx, StatusKey(matchID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", Infrastructure(matchID, "read status", err)
	}
	return v, nil
}

// ReservedCount returns the number of seats currently locked for the match.
func (g *Gate) ReservedCount(ctx context.Context, matchID uint64) (int64, error) {
	n, err := g.rdb.Get(ctx, CounterKey(matchID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, Infrastructure(matchID, "read reserved count", err)
	}
	return n, nil
}
