// Package queue defines the audit messages exchanged over the message broker
// together with their publisher and the log-writing consumer.
package queue

import "time"

// ConfirmationQueue is the default durable queue for confirmation events.
const ConfirmationQueue = "match.seat.confirmed"

// SeatConfirmationEvent is published after every confirm attempt, successful
// or not.  SectionIDs is only filled for successful confirmations.
type SeatConfirmationEvent struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	MatchID    uint64    `json:"match_id"`
	SeatIDs    []string  `json:"seat_ids"`
	SectionIDs []string  `json:"section_ids"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
}
