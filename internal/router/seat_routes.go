package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/match-seat-reservation/internal/config"
	"github.com/iliyamo/match-seat-reservation/internal/handler"
	"github.com/iliyamo/match-seat-reservation/internal/middleware"
)

// RegisterSeats registers the claimant endpoints.  They require a valid JWT
// with the USER role; the limiter runs after authentication so buckets are
// keyed by claimant.
func RegisterSeats(e *echo.Echo, h *handler.SeatHandler, jwtSecret string, rl config.RateLimitConfig, rdb redis.Scripter) {
	g := e.Group(
		"/v1/matches",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleUser),
		middleware.NewTokenBucket(rl, rdb),
	)
	g.POST("/:id/hold", h.HoldSeats)
	g.POST("/:id/confirm", h.ConfirmSeats)
}

// RegisterAdmin registers operator endpoints under /v1/admin for the ADMIN
// role: explicit release of abandoned holds and an on-demand reconcile.
func RegisterAdmin(e *echo.Echo, h *handler.SeatHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
	)
	g.POST("/matches/:id/release", h.ReleaseSeats)
	g.POST("/reconcile", h.Reconcile)
}
