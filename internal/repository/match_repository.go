// Package repository contains data access logic for the system of record.
// The reservation service only reads matches; lifecycle transitions are
// owned by whichever process runs the matches themselves.
//
// Expected schema:
//
//	CREATE TABLE matches (
//	    match_id      BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	    match_name    VARCHAR(100) NOT NULL,
//	    seat_capacity INT NOT NULL,
//	    status        VARCHAR(20) NOT NULL, -- WAITING, PLAYING, FINISHED
//	    started_at    DATETIME NOT NULL,
//	    ended_at      DATETIME NULL,
//	    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
//	);
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons

	"github.com/iliyamo/match-seat-reservation/internal/model"
)

const matchColumns = `match_id, match_name, seat_capacity, status, started_at, ended_at, created_at, updated_at`

// MatchRepo reads matches from the system of record.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo constructs a MatchRepo with the given DB handle.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// GetByID retrieves a match by its ID.  It returns ErrMatchNotFound if
// there is no matching row.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (*model.Match, error) {
	q := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = ?`
	m, err := scanMatch(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns every match ordered by id.  Reconciliation walks this list
// on each pass.
func (r *MatchRepo) List(ctx context.Context) ([]model.Match, error) {
	q := `SELECT ` + matchColumns + ` FROM matches ORDER BY match_id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectMatches(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*model.Match, error) {
	var (
		m       model.Match
		status  string
		endedAt sql.NullTime
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Capacity, &status, &m.StartedAt, &endedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	// Unknown states are returned as-is; readers treat them as not PLAYING.
	m.Status = model.LifecycleState(status)
	if endedAt.Valid {
		t := endedAt.Time
		m.EndedAt = &t
	}
	return &m, nil
}

func collectMatches(rows *sql.Rows) ([]model.Match, error) {
	defer rows.Close()
	result := []model.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
