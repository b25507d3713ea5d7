package model

// HoldRequest asks for an all-or-nothing hold on SeatIDs for one claimant.
// The seat list is ordered as the client sent it.
type HoldRequest struct {
	MatchID  uint64
	Claimant string
	SeatIDs  []string
}

// HoldResult is returned by a successful hold.  HeldSeats lists every
// requested seat; a failed hold is reported as an error instead.
type HoldResult struct {
	Success   bool       `json:"success"`
	MatchID   uint64     `json:"match_id"`
	UserID    string     `json:"user_id"`
	HeldSeats []SeatInfo `json:"held_seats"`
}
