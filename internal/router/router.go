// Package router wires the HTTP routes of the reservation service onto
// an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ingri/reservations/internal/config"
	"github.com/ingri/reservations/internal/handler"
	"github.com/ingri/reservations/internal/middleware"
)

// Register mounts every route of the service.
//
// Public surface:
//
//	GET  /healthz           – liveness probe
//	POST /api/reservations  – submit a completed booking draft (rate limited)
//	GET  /api/availability  – per-slot occupancy for a date (cached)
//
// Admin surface, behind the shared-credential Basic-auth gate:
//
//	GET   /admin/reservations            – ordered list, filter=today|all
//	GET   /admin/reservations/:id        – single record
//	PATCH /admin/reservations/:id/status – lifecycle transition
//	GET   /admin/feed                    – live SSE feed
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	booking *handler.BookingHandler, admin *handler.AdminHandler) {

	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.POST("/reservations", booking.Create,
		middleware.BookingRateLimit(config.LoadRateLimitConfig(), rdb))
	api.GET("/availability", booking.Availability,
		middleware.AvailabilityCache(config.LoadCacheConfig(), rdb))

	adm := e.Group("/admin")
	adm.Use(middleware.AdminBasicAuth(cfg))
	adm.GET("/reservations", admin.List)
	adm.GET("/reservations/:id", admin.Get)
	adm.PATCH("/reservations/:id/status", admin.UpdateStatus)
	adm.GET("/feed", admin.Feed)
}
