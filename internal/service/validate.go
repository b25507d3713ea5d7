package service

import (
	"strings"

	"github.com/iliyamo/match-seat-reservation/internal/reservation"
)

// validateSeatIDs enforces the preconditions of the hold script: between one
// and max seats, none blank, no duplicates.  A duplicate would be counted
// twice by the script's counter increment.  Surrounding whitespace is
// trimmed; the returned slice keeps request order.
func validateSeatIDs(matchID uint64, seatIDs []string, max int) ([]string, error) {
	if len(seatIDs) == 0 {
		return nil, reservation.Validationf(matchID, "seat_ids is required")
	}
	if len(seatIDs) > max {
		return nil, reservation.Validationf(matchID, "too many seats requested: %d (max %d)", len(seatIDs), max)
	}
	out := make([]string, 0, len(seatIDs))
	seen := make(map[string]struct{}, len(seatIDs))
	for _, raw := range seatIDs {
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, reservation.Validationf(matchID, "seat id must not be blank")
		}
		if _, dup := seen[s]; dup {
			return nil, reservation.Validationf(matchID, "duplicate seat id %q", s)
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

func validateClaimant(matchID uint64, claimant string) error {
	if strings.TrimSpace(claimant) == "" {
		return reservation.Validationf(matchID, "user id is required")
	}
	return nil
}
