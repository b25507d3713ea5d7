package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/match-seat-reservation/internal/model"
)

// MatchLister reads every match from the system of record.
type MatchLister interface {
	List(ctx context.Context) ([]model.Match, error)
}

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	Checked int // matches read from the system of record
	Written int // status flags actually changed
	Failed  int // matches whose flag could not be reconciled
}

// Reconciler copies lifecycle state from the system of record into the
// cached status flags.  It takes no locks and may run alongside holds.
type Reconciler struct {
	matches MatchLister
	rdb     redis.Scripter
}

// NewReconciler returns a Reconciler reading matches from src and writing
// flags to rdb.
func NewReconciler(src MatchLister, rdb redis.Scripter) *Reconciler {
	return &Reconciler{matches: src, rdb: rdb}
}

// DesiredStatus maps a lifecycle state to the flag it should produce.
// Unknown states map to CLOSED.
func DesiredStatus(s model.LifecycleState) string {
	if s == model.LifecyclePlaying {
		return StatusOpen
	}
	return StatusClosed
}

// Reconcile runs one pass over every match.  A failure on one match is
// logged and does not stop the pass; all such failures are returned joined.
// A match with an unknown lifecycle state is closed and counted as failed.
func (r *Reconciler) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var rep ReconcileReport
	matches, err := r.matches.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("list matches: %w", err)
	}
	var errs []error
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		rep.Checked++
		if !m.Status.Valid() {
			// Closed below like any non-PLAYING state, but still reported.
			rep.Failed++
			err := fmt.Errorf("match %d: unknown lifecycle state %q", m.ID, m.Status)
			log.Printf("reconcile: %v; closing", err)
			errs = append(errs, err)
		}
		written, err := r.reconcileOne(ctx, m)
		if err != nil {
			if m.Status.Valid() {
				rep.Failed++
			}
			log.Printf("reconcile: match %d: %v", m.ID, err)
			errs = append(errs, err)
			continue
		}
		if written {
			rep.Written++
		}
	}
	return rep, errors.Join(errs...)
}

func (r *Reconciler) reconcileOne(ctx context.Context, m model.Match) (bool, error) {
	keys := []string{StatusKey(m.ID), CounterKey(m.ID)}
	n, err := reconcileScript.Run(ctx, r.rdb, keys, DesiredStatus(m.Status), strconv.FormatInt(m.Capacity, 10)).Int64()
	if err != nil {
		return false, Infrastructure(m.ID, "reconcile script", err)
	}
	return n == 1, nil
}
