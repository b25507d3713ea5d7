package repository

import "errors"

// ErrMatchNotFound indicates that a match was not located in the DB.
// Callers compare with errors.Is; the service layer turns it into a
// not-found reservation error.
var ErrMatchNotFound = errors.New("match not found")
