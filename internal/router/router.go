package router // package router registers the HTTP routes of the reservation API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/match-seat-reservation/internal/config"
	"github.com/iliyamo/match-seat-reservation/internal/handler"
	"github.com/iliyamo/match-seat-reservation/internal/middleware"
)

// RegisterRoutes registers the unauthenticated health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest read endpoints.  The match listing
// mirrors MySQL and goes through the response cache; the status endpoint
// reads Redis directly and is never cached.
func RegisterPublic(e *echo.Echo, h *handler.SeatHandler, cache config.CacheConfig, rdb redis.Cmdable) {
	e.GET("/v1/matches", h.ListMatches, middleware.NewRedisCache(cache, rdb))
	e.GET("/v1/matches/:id/status", h.MatchStatus)
}
