package config

import (
	"testing"
	"time"
)

func TestLoadReservationConfigDefaults(t *testing.T) {
	cfg, err := LoadReservationConfig()
	if err != nil {
		t.Fatalf("LoadReservationConfig: %v", err)
	}
	if cfg.MaxSeatsPerRequest != 2 || cfg.HardCeiling || cfg.ReconcileInterval != 30*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.AuditQueue != "match.seat.confirmed" || cfg.AuditLogDir != "logs" || !cfg.AuditConsumerEnabled {
		t.Fatalf("unexpected audit defaults %+v", cfg)
	}
}

func TestLoadReservationConfigOverrides(t *testing.T) {
	t.Setenv("RESERVATION_MAX_SEATS", "4")
	t.Setenv("RESERVATION_HARD_CEILING", "true")
	t.Setenv("RESERVATION_RECONCILE_INTERVAL", "5s")

	cfg, err := LoadReservationConfig()
	if err != nil {
		t.Fatalf("LoadReservationConfig: %v", err)
	}
	if cfg.MaxSeatsPerRequest != 4 || !cfg.HardCeiling || cfg.ReconcileInterval != 5*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadReservationConfigRejectsZeroSeats(t *testing.T) {
	t.Setenv("RESERVATION_MAX_SEATS", "0")
	if _, err := LoadReservationConfig(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity = %d", cfg.Capacity)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("ttl = %s", cfg.TTL)
	}
}

func TestAMQPURL(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	if got := AMQPURL(); got != "amqp://u:p@mq:5672/" {
		t.Fatalf("AMQPURL = %q", got)
	}
}
