package model

import "time"

// LifecycleState is the authoritative state of a match as recorded in the
// matches table.  Only PLAYING matches accept holds.
type LifecycleState string

const (
	LifecycleWaiting  LifecycleState = "WAITING"
	LifecyclePlaying  LifecycleState = "PLAYING"
	LifecycleFinished LifecycleState = "FINISHED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s LifecycleState) Valid() bool {
	switch s {
	case LifecycleWaiting, LifecyclePlaying, LifecycleFinished:
		return true
	}
	return false
}

// Match is a live event whose seats are reserved through the cache.  The
// system of record owns every field; the reservation core only reads them.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the match.
//  Capacity  – number of seats that may be held before the pool closes.
//  Status    – lifecycle state (WAITING, PLAYING, FINISHED).
//  StartedAt – scheduled start.
//  EndedAt   – end time, nil while the match has not finished.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Match struct {
	ID        uint64         `json:"match_id"`      // matches.match_id
	Name      string         `json:"match_name"`    // matches.match_name
	Capacity  int64          `json:"seat_capacity"` // matches.seat_capacity
	Status    LifecycleState `json:"status"`        // matches.status
	StartedAt time.Time      `json:"started_at"`    // matches.started_at
	EndedAt   *time.Time     `json:"ended_at"`      // matches.ended_at (nullable)
	CreatedAt time.Time      `json:"created_at"`    // matches.created_at
	UpdatedAt time.Time      `json:"updated_at"`    // matches.updated_at
}

// MatchStatus is the cached view of a match returned by the status endpoint.
// Status is the gating flag ("OPEN", "CLOSED" or "" when nothing is cached),
// ReservedCount the number of seats currently locked.
type MatchStatus struct {
	MatchID       uint64         `json:"match_id"`
	Lifecycle     LifecycleState `json:"lifecycle"`
	Status        string         `json:"status"`
	ReservedCount int64          `json:"reserved_count"`
	Capacity      int64          `json:"capacity"`
}
