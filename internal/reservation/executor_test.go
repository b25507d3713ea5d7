package reservation

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func counterOf(t *testing.T, mr *miniredis.Miniredis, matchID uint64) int {
	t.Helper()
	v, err := mr.Get(CounterKey(matchID))
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		t.Fatalf("counter value %q: %v", v, err)
	}
	return n
}

func seatLockCount(mr *miniredis.Miniredis, matchID uint64) int {
	prefix := SeatKey(matchID, "")
	n := 0
	for _, k := range mr.Keys() {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestTryHoldLocksAllSeats(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)

	ok, err := x.TryHold(context.Background(), 10, []string{"A-1", "A-2"}, "5", 10)
	if err != nil || !ok {
		t.Fatalf("TryHold = %v, %v", ok, err)
	}
	for _, s := range []string{"A-1", "A-2"} {
		if owner, _ := mr.Get(SeatKey(10, s)); owner != "5" {
			t.Fatalf("seat %s owner = %q", s, owner)
		}
	}
	if got := counterOf(t, mr, 10); got != 2 {
		t.Fatalf("counter = %d", got)
	}
	if mr.Exists(StatusKey(10)) {
		t.Fatal("flag must not be touched below capacity")
	}
}

func TestTryHoldConflictHasNoSideEffects(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)
	ctx := context.Background()

	if ok, _ := x.TryHold(ctx, 10, []string{"A-2"}, "5", 10); !ok {
		t.Fatal("first hold should succeed")
	}
	ok, err := x.TryHold(ctx, 10, []string{"A-1", "A-2"}, "6", 10)
	if err != nil {
		t.Fatalf("TryHold: %v", err)
	}
	if ok {
		t.Fatal("overlapping hold must fail")
	}
	if mr.Exists(SeatKey(10, "A-1")) {
		t.Fatal("free seat of a failed request must stay free")
	}
	if owner, _ := mr.Get(SeatKey(10, "A-2")); owner != "5" {
		t.Fatalf("existing lock overwritten: %q", owner)
	}
	if got := counterOf(t, mr, 10); got != 1 {
		t.Fatalf("counter = %d", got)
	}
}

// Two claimants race for the same seat of a match with capacity 2.
func TestTryHoldSingleSeatRace(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := x.TryHold(context.Background(), 10, []string{"A-1"}, strconv.Itoa(5+i), 2)
			if err != nil {
				t.Errorf("TryHold: %v", err)
			}
			results[i] = ok
		}(i)
	}
	wg.Wait()

	if results[0] == results[1] {
		t.Fatalf("exactly one hold must win, got %v", results)
	}
	if got := counterOf(t, mr, 10); got != 1 {
		t.Fatalf("counter = %d", got)
	}
}

func TestTryHoldClosesAtCapacity(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)

	ok, err := x.TryHold(context.Background(), 10, []string{"A-1", "A-2"}, "5", 2)
	if err != nil || !ok {
		t.Fatalf("TryHold = %v, %v", ok, err)
	}
	if got := counterOf(t, mr, 10); got != 2 {
		t.Fatalf("counter = %d", got)
	}
	if flag, _ := mr.Get(StatusKey(10)); flag != StatusClosed {
		t.Fatalf("flag = %q", flag)
	}
}

func TestTryHoldOvershootsByOneRequest(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)
	ctx := context.Background()

	if ok, _ := x.TryHold(ctx, 10, []string{"A-1"}, "5", 2); !ok {
		t.Fatal("first hold should succeed")
	}
	ok, err := x.TryHold(ctx, 10, []string{"A-2", "A-3"}, "6", 2)
	if err != nil || !ok {
		t.Fatalf("reactive close accepts the last request: %v, %v", ok, err)
	}
	if got := counterOf(t, mr, 10); got != 3 {
		t.Fatalf("counter = %d", got)
	}
	if flag, _ := mr.Get(StatusKey(10)); flag != StatusClosed {
		t.Fatalf("flag = %q", flag)
	}
}

func TestTryHoldHardCeiling(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, true)
	ctx := context.Background()

	if ok, _ := x.TryHold(ctx, 10, []string{"A-1"}, "5", 2); !ok {
		t.Fatal("first hold should succeed")
	}
	ok, err := x.TryHold(ctx, 10, []string{"A-2", "A-3"}, "6", 2)
	if ok || KindOf(err) != KindClosed {
		t.Fatalf("TryHold = %v, %v; want closed", ok, err)
	}
	if mr.Exists(SeatKey(10, "A-2")) || mr.Exists(SeatKey(10, "A-3")) {
		t.Fatal("refused hold wrote seat locks")
	}
	if got := counterOf(t, mr, 10); got != 1 {
		t.Fatalf("counter = %d", got)
	}
	if ok, _ := x.TryHold(ctx, 10, []string{"A-2"}, "6", 2); !ok {
		t.Fatal("hold that exactly fills capacity should succeed")
	}
	if flag, _ := mr.Get(StatusKey(10)); flag != StatusClosed {
		t.Fatalf("flag = %q", flag)
	}
}

func TestTryHoldUnreachableStore(t *testing.T) {
	mr, rdb := newTestStore(t)
	mr.Close()
	ok, err := NewExecutor(rdb, false).TryHold(context.Background(), 10, []string{"A-1"}, "5", 2)
	if ok || KindOf(err) != KindInfrastructure {
		t.Fatalf("TryHold = %v, %v", ok, err)
	}
}

// Many claimants race for overlapping pairs of seats.  Every seat ends with
// at most one owner, winners own all of their seats and the counter equals
// both the sum of successful request sizes and the number of lock keys.
func TestTryHoldConcurrentOverlap(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)
	const claimants = 40
	const capacity = 1000

	type outcome struct {
		claimant string
		seats    []string
		ok       bool
	}
	out := make([]outcome, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seats := []string{fmt.Sprintf("S-%d", i%10), fmt.Sprintf("S-%d", (i+1)%10)}
			claimant := fmt.Sprintf("user-%d", i)
			ok, err := x.TryHold(context.Background(), 42, seats, claimant, capacity)
			if err != nil {
				t.Errorf("TryHold: %v", err)
			}
			out[i] = outcome{claimant: claimant, seats: seats, ok: ok}
		}(i)
	}
	wg.Wait()

	sum := 0
	for _, o := range out {
		if !o.ok {
			continue
		}
		sum += len(o.seats)
		for _, s := range o.seats {
			if owner, _ := mr.Get(SeatKey(42, s)); owner != o.claimant {
				t.Fatalf("seat %s owner = %q, want %q", s, owner, o.claimant)
			}
		}
	}
	if sum == 0 {
		t.Fatal("at least one hold should succeed")
	}
	if got := counterOf(t, mr, 42); got != sum {
		t.Fatalf("counter = %d, successful seats = %d", got, sum)
	}
	if got := seatLockCount(mr, 42); got != sum {
		t.Fatalf("lock keys = %d, successful seats = %d", got, sum)
	}
}

func TestRelease(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)
	ctx := context.Background()

	if ok, _ := x.TryHold(ctx, 10, []string{"A-1", "A-2"}, "5", 2); !ok {
		t.Fatal("hold should succeed")
	}

	err := x.Release(ctx, 10, []string{"A-1", "A-3"}, "5")
	if KindOf(err) != KindNotHeld {
		t.Fatalf("release of free seat = %v", err)
	}
	if re, _ := err.(*Error); re == nil || re.SeatID != "A-3" {
		t.Fatalf("offending seat not reported: %v", err)
	}
	err = x.Release(ctx, 10, []string{"A-1"}, "6")
	if KindOf(err) != KindConflict {
		t.Fatalf("release by other claimant = %v", err)
	}
	if got := counterOf(t, mr, 10); got != 2 {
		t.Fatalf("failed release changed counter to %d", got)
	}

	if err := x.Release(ctx, 10, []string{"A-1", "A-2"}, "5"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if mr.Exists(SeatKey(10, "A-1")) || mr.Exists(SeatKey(10, "A-2")) {
		t.Fatal("locks not removed")
	}
	if got := counterOf(t, mr, 10); got != 0 {
		t.Fatalf("counter = %d", got)
	}
	if flag, _ := mr.Get(StatusKey(10)); flag != StatusClosed {
		t.Fatalf("release must not reopen the flag, got %q", flag)
	}
}

func TestTryHoldCorruptCounterWritesNothing(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)
	if err := mr.Set(CounterKey(10), "not-a-number"); err != nil {
		t.Fatal(err)
	}

	ok, err := x.TryHold(context.Background(), 10, []string{"A-1", "A-2"}, "5", 10)
	if ok || KindOf(err) != KindInfrastructure {
		t.Fatalf("TryHold = %v, %v", ok, err)
	}
	if n := seatLockCount(mr, 10); n != 0 {
		t.Fatalf("%d seat locks left behind", n)
	}
	if v, _ := mr.Get(CounterKey(10)); v != "not-a-number" {
		t.Fatalf("counter rewritten to %q", v)
	}
	if mr.Exists(StatusKey(10)) {
		t.Fatal("status flag written")
	}
}

func TestReleaseCorruptCounterKeepsLocks(t *testing.T) {
	mr, rdb := newTestStore(t)
	x := NewExecutor(rdb, false)
	ctx := context.Background()

	if ok, _ := x.TryHold(ctx, 10, []string{"A-1"}, "5", 10); !ok {
		t.Fatal("hold should succeed")
	}
	if err := mr.Set(CounterKey(10), "1.5"); err != nil {
		t.Fatal(err)
	}
	if err := x.Release(ctx, 10, []string{"A-1"}, "5"); KindOf(err) != KindInfrastructure {
		t.Fatalf("Release = %v", err)
	}
	if owner, _ := mr.Get(SeatKey(10, "A-1")); owner != "5" {
		t.Fatalf("lock removed despite failed release, owner = %q", owner)
	}
}
