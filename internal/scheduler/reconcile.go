// Package scheduler runs periodic background work for the server.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/match-seat-reservation/internal/reservation"
)

const defaultReconcileInterval = 30 * time.Second

// Reconciler is the single pass run on every tick.
type Reconciler interface {
	Reconcile(ctx context.Context) (reservation.ReconcileReport, error)
}

// StartReconcileLoop runs one pass immediately and then one per interval
// until the returned cancel func is called.  done closes when the loop has
// exited.
func StartReconcileLoop(r Reconciler, interval time.Duration) (context.CancelFunc, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunReconcileLoop(ctx, r, interval)
	}()
	return cancel, done
}

// RunReconcileLoop blocks until ctx is done.
func RunReconcileLoop(ctx context.Context, r Reconciler, interval time.Duration) {
	if r == nil {
		return
	}
	if interval <= 0 {
		interval = defaultReconcileInterval
	}
	runOnce(ctx, r)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, r)
		}
	}
}

func runOnce(ctx context.Context, r Reconciler) {
	rep, err := r.Reconcile(ctx)
	if err != nil {
		log.Printf("reconcile: pass failed (checked=%d written=%d failed=%d): %v", rep.Checked, rep.Written, rep.Failed, err)
		return
	}
	if rep.Written > 0 {
		log.Printf("reconcile: checked=%d written=%d", rep.Checked, rep.Written)
	}
}
