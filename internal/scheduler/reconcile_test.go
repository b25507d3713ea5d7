package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iliyamo/match-seat-reservation/internal/reservation"
)

type countingReconciler struct {
	calls atomic.Int32
	err   error
}

func (c *countingReconciler) Reconcile(ctx context.Context) (reservation.ReconcileReport, error) {
	c.calls.Add(1)
	return reservation.ReconcileReport{Checked: 1}, c.err
}

func TestReconcileLoopRunsUntilCancelled(t *testing.T) {
	r := &countingReconciler{}
	cancel, done := StartReconcileLoop(r, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d passes ran", r.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	after := r.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if r.calls.Load() != after {
		t.Fatal("loop kept running after cancel")
	}
}

func TestReconcileLoopSurvivesErrors(t *testing.T) {
	r := &countingReconciler{err: errors.New("redis down")}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	RunReconcileLoop(ctx, r, 5*time.Millisecond)
	if r.calls.Load() < 2 {
		t.Fatalf("calls = %d, want the loop to keep ticking after a failure", r.calls.Load())
	}
}

func TestReconcileLoopNilReconciler(t *testing.T) {
	RunReconcileLoop(context.Background(), nil, time.Millisecond)
}
