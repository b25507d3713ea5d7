package model

// ConfirmRequest asks to finalize seats previously held by Claimant.
type ConfirmRequest struct {
	MatchID  uint64
	Claimant string
	SeatIDs  []string
}

// ConfirmResult is returned when every requested seat is still owned by the
// claimant.  Confirming the same seats again yields the same result.
type ConfirmResult struct {
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	MatchID        uint64     `json:"match_id"`
	UserID         string     `json:"user_id"`
	ConfirmedSeats []SeatInfo `json:"confirmed_seats"`
}

// ReleaseRequest removes locks held by Claimant.  It is the explicit
// out-of-band release path; holds never expire on their own.
type ReleaseRequest struct {
	MatchID  uint64
	Claimant string
	SeatIDs  []string
}
