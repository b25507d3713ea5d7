package reservation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a reservation failure so callers can pick a response
// without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: the seat list is missing, empty, oversized or has duplicates.
	KindValidation
	// KindNotFound: the match does not exist in the system of record.
	KindNotFound
	// KindClosed: the gate or the lifecycle state says the match is not open.
	KindClosed
	// KindConflict: a seat is held by someone else.
	KindConflict
	// KindNotHeld: a confirm or release targets a seat nobody holds.
	KindNotHeld
	// KindInfrastructure: the store could not be reached.  The script either
	// ran completely or not at all, so retrying is safe.
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindClosed:
		return "closed"
	case KindConflict:
		return "conflict"
	case KindNotHeld:
		return "seat_not_held"
	case KindInfrastructure:
		return "infrastructure"
	}
	return "unknown"
}

// Error is the error type returned by the reservation core and the service
// built on it.
type Error struct {
	Kind    Kind
	MatchID uint64
	SeatID  string // offending seat, when one can be named
	Msg     string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindUnknown when err is not a
// reservation error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

func newError(k Kind, matchID uint64, format string, args ...any) *Error {
	return &Error{Kind: k, MatchID: matchID, Msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a KindValidation error.
func Validationf(matchID uint64, format string, args ...any) error {
	return newError(KindValidation, matchID, format, args...)
}

// NotFound builds a KindNotFound error for matchID.
func NotFound(matchID uint64, err error) error {
	return &Error{Kind: KindNotFound, MatchID: matchID, Msg: fmt.Sprintf("match %d not found", matchID), Err: err}
}

// Closed builds a KindClosed error for matchID.
func Closed(matchID uint64, reason string) error {
	return &Error{Kind: KindClosed, MatchID: matchID, Msg: reason}
}

// Infrastructure builds a KindInfrastructure error for a failed store or
// database operation.
func Infrastructure(matchID uint64, op string, err error) error {
	return &Error{Kind: KindInfrastructure, MatchID: matchID, Msg: op, Err: err}
}
