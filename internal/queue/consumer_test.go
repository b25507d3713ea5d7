package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatAuditLine(t *testing.T) {
	ev := SeatConfirmationEvent{
		EventID:    "ev-1",
		UserID:     "5",
		MatchID:    10,
		SeatIDs:    []string{"A-1", "A-2"},
		SectionIDs: []string{"A", "A"},
		Success:    true,
		Message:    "confirmed",
		Timestamp:  time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		DurationMs: 12,
	}
	want := `[2026-10-16T12:00:00Z] Seat confirmation CONFIRMED | event_id=ev-1 | user_id=5 | match_id=10 | seats=[A-1,A-2] | sections=[A,A] | duration=12ms | message="confirmed"` + "\n"
	if got := FormatAuditLine(ev); got != want {
		t.Fatalf("FormatAuditLine =\n%s\nwant\n%s", got, want)
	}
}

func TestHandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	for _, ok := range []bool{true, false} {
		body, err := json.Marshal(SeatConfirmationEvent{UserID: "5", MatchID: 10, SeatIDs: []string{"A-1"}, Success: ok})
		if err != nil {
			t.Fatal(err)
		}
		if err := HandleMessage(body, dir); err != nil {
			t.Fatalf("HandleMessage: %v", err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, AuditLogFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "CONFIRMED") || !strings.Contains(lines[1], "FAILED") {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	if err := HandleMessage([]byte("{not json"), t.TempDir()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
