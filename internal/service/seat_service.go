// Package service orchestrates seat holds, confirmations and releases on top
// of the reservation core.  It validates requests, consults the system of
// record and emits audit events; all shared state stays in Redis.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/match-seat-reservation/internal/model"
	"github.com/iliyamo/match-seat-reservation/internal/queue"
	"github.com/iliyamo/match-seat-reservation/internal/repository"
	"github.com/iliyamo/match-seat-reservation/internal/reservation"
)

// maxReleaseSeats bounds an administrative release request.
const maxReleaseSeats = 100

// MatchFinder is the read-only view of the system of record.
type MatchFinder interface {
	GetByID(ctx context.Context, id uint64) (*model.Match, error)
	List(ctx context.Context) ([]model.Match, error)
}

// AuditPublisher receives one event per confirm attempt.
type AuditPublisher interface {
	PublishSeatConfirmation(ctx context.Context, ev queue.SeatConfirmationEvent) error
}

// Options tunes a SeatService.
type Options struct {
	MaxSeatsPerRequest int
	HardCeiling        bool
	AuditTimeout       time.Duration
}

// SeatService implements hold, confirm and release for match seats.
type SeatService struct {
	matches    MatchFinder
	gate       *reservation.Gate
	executor   *reservation.Executor
	validator  *reservation.Validator
	reconciler *reservation.Reconciler
	audit      AuditPublisher

	maxSeats     int
	auditTimeout time.Duration
	clock        func() time.Time
	newID        func() string

	pending sync.WaitGroup // in-flight audit publishes
}

// NewSeatService wires the reservation core to rdb.  audit may be nil, in
// which case no events are emitted.
func NewSeatService(matches MatchFinder, rdb redis.UniversalClient, audit AuditPublisher, opts Options) *SeatService {
	if matches == nil || rdb == nil {
		panic("nil dependency passed to NewSeatService")
	}
	if opts.MaxSeatsPerRequest < 1 {
		opts.MaxSeatsPerRequest = 2
	}
	if opts.AuditTimeout <= 0 {
		opts.AuditTimeout = 5 * time.Second
	}
	return &SeatService{
		matches:      matches,
		gate:         reservation.NewGate(rdb),
		executor:     reservation.NewExecutor(rdb, opts.HardCeiling),
		validator:    reservation.NewValidator(rdb),
		reconciler:   reservation.NewReconciler(matches, rdb),
		audit:        audit,
		maxSeats:     opts.MaxSeatsPerRequest,
		auditTimeout: opts.AuditTimeout,
		clock:        time.Now,
		newID:        uuid.NewString,
	}
}

// HoldSeats places an all-or-nothing hold.  The match must exist, be PLAYING
// and pass the status gate before the hold script runs.
func (s *SeatService) HoldSeats(ctx context.Context, req model.HoldRequest) (*model.HoldResult, error) {
	if err := validateClaimant(req.MatchID, req.Claimant); err != nil {
		return nil, err
	}
	seats, err := validateSeatIDs(req.MatchID, req.SeatIDs, s.maxSeats)
	if err != nil {
		return nil, err
	}
	m, err := s.lookupMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if m.Status != model.LifecyclePlaying {
		return nil, reservation.Closed(m.ID, fmt.Sprintf("match is %s", m.Status))
	}
	open, err := s.gate.IsOpen(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, reservation.Closed(m.ID, "match is closed")
	}

	ok, err := s.executor.TryHold(ctx, m.ID, seats, req.Claimant, m.Capacity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &reservation.Error{Kind: reservation.KindConflict, MatchID: m.ID, Msg: "one or more seats are already taken"}
	}
	return &model.HoldResult{
		Success:   true,
		MatchID:   m.ID,
		UserID:    req.Claimant,
		HeldSeats: describeSeats(m.ID, seats),
	}, nil
}

// ConfirmSeats verifies that the claimant still owns every requested seat.
// It writes nothing to the reservation store, so repeating a successful
// confirm succeeds again.  Every attempt past validation emits an audit
// event in the background; publish failures never change the result.
func (s *SeatService) ConfirmSeats(ctx context.Context, req model.ConfirmRequest) (*model.ConfirmResult, error) {
	start := s.clock()
	if err := validateClaimant(req.MatchID, req.Claimant); err != nil {
		return nil, err
	}
	seats, err := validateSeatIDs(req.MatchID, req.SeatIDs, s.maxSeats)
	if err != nil {
		return nil, err
	}

	res, sections, err := s.confirm(ctx, req.MatchID, seats, req.Claimant)
	msg := "confirmed"
	if err != nil {
		msg = err.Error()
	}
	s.publishAsync(queue.SeatConfirmationEvent{
		EventID:    s.newID(),
		UserID:     req.Claimant,
		MatchID:    req.MatchID,
		SeatIDs:    seats,
		SectionIDs: sections,
		Success:    err == nil,
		Message:    msg,
		Timestamp:  s.clock().UTC(),
		DurationMs: s.clock().Sub(start).Milliseconds(),
	})
	return res, err
}

func (s *SeatService) confirm(ctx context.Context, matchID uint64, seats []string, claimant string) (*model.ConfirmResult, []string, error) {
	m, err := s.lookupMatch(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	if m.Status != model.LifecyclePlaying {
		return nil, nil, reservation.Closed(m.ID, fmt.Sprintf("match is %s", m.Status))
	}
	outcome, seat, err := s.validator.Confirm(ctx, m.ID, seats, claimant)
	if err != nil {
		return nil, nil, err
	}
	switch outcome {
	case reservation.ConfirmNotHeld:
		return nil, nil, &reservation.Error{Kind: reservation.KindNotHeld, MatchID: m.ID, SeatID: seat, Msg: fmt.Sprintf("seat %s is not held", seat)}
	case reservation.ConfirmConflict:
		return nil, nil, &reservation.Error{Kind: reservation.KindConflict, MatchID: m.ID, SeatID: seat, Msg: fmt.Sprintf("seat %s is held by another user", seat)}
	}

	info := describeSeats(m.ID, seats)
	sections := make([]string, len(info))
	for i, si := range info {
		sections[i] = si.SectionID
	}
	return &model.ConfirmResult{
		Success:        true,
		Message:        "confirmed",
		MatchID:        m.ID,
		UserID:         claimant,
		ConfirmedSeats: info,
	}, sections, nil
}

// ReleaseSeats is the explicit release path for seats that were held but
// will never be confirmed.  Every seat must belong to the claimant.
func (s *SeatService) ReleaseSeats(ctx context.Context, req model.ReleaseRequest) error {
	if err := validateClaimant(req.MatchID, req.Claimant); err != nil {
		return err
	}
	seats, err := validateSeatIDs(req.MatchID, req.SeatIDs, maxReleaseSeats)
	if err != nil {
		return err
	}
	if _, err := s.lookupMatch(ctx, req.MatchID); err != nil {
		return err
	}
	if err := s.executor.Release(ctx, req.MatchID, seats, req.Claimant); err != nil {
		return err
	}
	log.Printf("release: match %d user %s seats %v", req.MatchID, req.Claimant, seats)
	return nil
}

// MatchStatus reports the cached flag and reserved count next to the
// authoritative lifecycle state.
func (s *SeatService) MatchStatus(ctx context.Context, matchID uint64) (*model.MatchStatus, error) {
	m, err := s.lookupMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	flag, err := s.gate.Status(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.gate.ReservedCount(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return &model.MatchStatus{
		MatchID:       m.ID,
		Lifecycle:     m.Status,
		Status:        flag,
		ReservedCount: count,
		Capacity:      m.Capacity,
	}, nil
}

// ListMatches returns every match known to the system of record.
func (s *SeatService) ListMatches(ctx context.Context) ([]model.Match, error) {
	ms, err := s.matches.List(ctx)
	if err != nil {
		return nil, reservation.Infrastructure(0, "list matches", err)
	}
	return ms, nil
}

// Reconcile runs one status reconciliation pass.
func (s *SeatService) Reconcile(ctx context.Context) (reservation.ReconcileReport, error) {
	return s.reconciler.Reconcile(ctx)
}

// Wait blocks until background audit publishes have finished.
func (s *SeatService) Wait() { s.pending.Wait() }

func (s *SeatService) lookupMatch(ctx context.Context, matchID uint64) (*model.Match, error) {
	if matchID == 0 {
		return nil, reservation.Validationf(matchID, "invalid match id")
	}
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return nil, reservation.NotFound(matchID, err)
		}
		return nil, reservation.Infrastructure(matchID, "load match", err)
	}
	return m, nil
}

// publishAsync hands ev to the audit sink on its own goroutine and context
// so that request cancellation cannot drop it.
func (s *SeatService) publishAsync(ev queue.SeatConfirmationEvent) {
	if s.audit == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.auditTimeout)
		defer cancel()
		if err := s.audit.PublishSeatConfirmation(ctx, ev); err != nil {
			log.Printf("audit: publish confirmation event %s for match %d failed: %v", ev.EventID, ev.MatchID, err)
		}
	}()
}
