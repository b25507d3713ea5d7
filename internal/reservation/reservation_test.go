package reservation

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestKeyLayout(t *testing.T) {
	if got := SeatKey(10, "A-1"); got != "seat:{10}:A-1" {
		t.Fatalf("SeatKey = %q", got)
	}
	if got := CounterKey(10); got != "match:{10}:reserved_count" {
		t.Fatalf("CounterKey = %q", got)
	}
	if got := StatusKey(10); got != "match:{10}:status" {
		t.Fatalf("StatusKey = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	err := Closed(3, "match is closed")
	if KindOf(err) != KindClosed {
		t.Fatalf("KindOf = %v", KindOf(err))
	}
	if KindOf(context.Canceled) != KindUnknown {
		t.Fatal("plain errors should be KindUnknown")
	}
	if err.Error() != "closed: match is closed" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestGateMissingFlagIsClosed(t *testing.T) {
	_, rdb := newTestStore(t)
	open, err := NewGate(rdb).IsOpen(context.Background(), 10)
	if err != nil {
		t.Fatalf("IsOpen: %v", err)
	}
	if open {
		t.Fatal("missing flag must read as closed")
	}
}

func TestGateReadsFlag(t *testing.T) {
	mr, rdb := newTestStore(t)
	g := NewGate(rdb)
	ctx := context.Background()

	mr.Set(StatusKey(10), "OPEN")
	if open, _ := g.IsOpen(ctx, 10); !open {
		t.Fatal("expected open")
	}
	mr.Set(StatusKey(10), "CLOSED")
	if open, _ := g.IsOpen(ctx, 10); open {
		t.Fatal("expected closed")
	}
	mr.Set(CounterKey(10), "7")
	if n, err := g.ReservedCount(ctx, 10); err != nil || n != 7 {
		t.Fatalf("ReservedCount = %d, %v", n, err)
	}
	if n, err := g.ReservedCount(ctx, 11); err != nil || n != 0 {
		t.Fatalf("ReservedCount on empty match = %d, %v", n, err)
	}
}

func TestGateUnreachableStore(t *testing.T) {
	mr, rdb := newTestStore(t)
	mr.Close()
	_, err := NewGate(rdb).IsOpen(context.Background(), 10)
	if KindOf(err) != KindInfrastructure {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}
