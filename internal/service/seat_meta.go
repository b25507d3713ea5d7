package service

import (
	"strings"

	"github.com/iliyamo/match-seat-reservation/internal/model"
)

const unknownMeta = "UNKNOWN"

// ResolveSeatMeta derives descriptive metadata from a seat id.  The section
// is the part before the first dash ("A-12" -> "A"); grades are not modelled
// yet and always resolve to UNKNOWN.
func ResolveSeatMeta(matchID uint64, seatID string) model.SeatMeta {
	section := unknownMeta
	if i := strings.IndexByte(seatID, '-'); i > 0 {
		section = seatID[:i]
	}
	return model.SeatMeta{SectionID: section, Grade: unknownMeta}
}

func describeSeats(matchID uint64, seatIDs []string) []model.SeatInfo {
	out := make([]model.SeatInfo, len(seatIDs))
	for i, s := range seatIDs {
		meta := ResolveSeatMeta(matchID, s)
		out[i] = model.SeatInfo{MatchID: matchID, SeatID: s, SectionID: meta.SectionID, Grade: meta.Grade}
	}
	return out
}
