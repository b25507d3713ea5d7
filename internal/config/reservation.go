package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ReservationConfig tunes the seat reservation core and its audit trail.
type ReservationConfig struct {
	// MaxSeatsPerRequest bounds the seat list of a hold or confirm.
	MaxSeatsPerRequest int `env:"RESERVATION_MAX_SEATS" envDefault:"2"`
	// HardCeiling refuses a hold that would push the reserved counter past
	// capacity.  When false the last accepted hold may overshoot and the
	// match closes right after it.
	HardCeiling bool `env:"RESERVATION_HARD_CEILING" envDefault:"false"`
	// ReconcileInterval is the period of the status reconciliation pass.
	ReconcileInterval time.Duration `env:"RESERVATION_RECONCILE_INTERVAL" envDefault:"30s"`

	AuditQueue           string        `env:"AUDIT_QUEUE" envDefault:"match.seat.confirmed"`
	AuditPublishTimeout  time.Duration `env:"AUDIT_PUBLISH_TIMEOUT" envDefault:"5s"`
	AuditLogDir          string        `env:"AUDIT_LOG_DIR" envDefault:"logs"`
	AuditConsumerEnabled bool          `env:"AUDIT_CONSUMER_ENABLED" envDefault:"true"`
}

// LoadReservationConfig parses ReservationConfig from the environment and
// checks the bounds the reservation core relies on.
func LoadReservationConfig() (ReservationConfig, error) {
	var cfg ReservationConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxSeatsPerRequest < 1 {
		return cfg, fmt.Errorf("RESERVATION_MAX_SEATS must be at least 1, got %d", cfg.MaxSeatsPerRequest)
	}
	if cfg.ReconcileInterval <= 0 {
		return cfg, fmt.Errorf("RESERVATION_RECONCILE_INTERVAL must be positive, got %s", cfg.ReconcileInterval)
	}
	if cfg.AuditPublishTimeout <= 0 {
		cfg.AuditPublishTimeout = 5 * time.Second
	}
	return cfg, nil
}
