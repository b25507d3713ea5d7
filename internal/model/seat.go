package model

// SeatMeta is descriptive metadata for a seat.  It decorates responses and
// audit events only; reservation correctness never depends on it.
type SeatMeta struct {
	SectionID string
	Grade     string
}

// SeatInfo describes one seat in a hold or confirm response.
type SeatInfo struct {
	MatchID   uint64 `json:"match_id"`
	SeatID    string `json:"seat_id"`
	SectionID string `json:"section_id"`
	Grade     string `json:"grade"`
}
