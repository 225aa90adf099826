// Package router registers the HTTP routes and their middleware chains.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	// For load balancers and monitoring.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints under /v1/auth plus the
// authenticated /v1/me profile route. The login and register routes sit
// behind the Redis token bucket so credential stuffing is throttled at
// the edge.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", rl)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body and needs no JWT.
	g.POST("/logout", a.Logout)

	protected := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	protected.GET("/me", a.Me)
}

// RegisterPublic registers the guest-visible catalogue: rooms,
// buildings and per-room occupied ranges. A valid token widens the room
// listing; without one the listing is capped. Responses are cached for
// anonymous callers only.
func RegisterPublic(e *echo.Echo, rooms *handler.RoomHandler, buildings *handler.BuildingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.OptionalJWTAuth(jwtSecret), cache)
	g.GET("/rooms", rooms.List)
	g.GET("/rooms/:id", rooms.Get)
	g.GET("/rooms/:id/occupied", rooms.OccupiedRanges)
	g.GET("/buildings", buildings.List)
	g.GET("/buildings/:id", buildings.Get)
}

// RegisterAPI registers the authenticated user surface: bookings,
// invoices, files and messages. Both roles pass the gate; per-resource
// ownership is decided in the service layer.
func RegisterAPI(e *echo.Echo, b *handler.BookingHandler, inv *handler.InvoiceHandler, f *handler.FileHandler, m *handler.MessageHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(auth.RoleAdministrator), string(auth.RoleRegisteredUser)),
	)

	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.GET("/bookings/:id", b.Get)
	g.PUT("/bookings/:id", b.Update)
	g.POST("/bookings/:id/cancel", b.Cancel)
	g.DELETE("/bookings/:id", b.Delete)

	g.GET("/invoices", inv.List)
	g.GET("/invoices/unpaid", inv.ListUnpaid)
	g.GET("/invoices/:id", inv.Get)
	g.POST("/invoices/:id/mark-paid", inv.MarkPaid)
	g.GET("/invoices/:id/pdf", inv.PrintPDF)

	g.POST("/files", f.Upload)
	g.GET("/files", f.List)
	g.GET("/files/:id", f.Download)
	g.DELETE("/files/:id", f.Delete)

	g.POST("/messages", m.Send)
	g.GET("/messages", m.List)
}

// RegisterAdmin registers the administrative surface: user management
// and catalogue writes.
func RegisterAdmin(e *echo.Echo, u *handler.UserHandler, rooms *handler.RoomHandler, buildings *handler.BuildingHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(auth.RoleAdministrator)),
	)

	g.GET("/users", u.List)
	g.POST("/users", u.Create)
	g.GET("/users/:id", u.Get)
	g.PUT("/users/:id", u.Update)
	g.DELETE("/users/:id", u.Delete)

	g.POST("/rooms", rooms.Create)
	g.PUT("/rooms/:id", rooms.Update)
	g.DELETE("/rooms/:id", rooms.Delete)

	g.POST("/buildings", buildings.Create)
	g.PUT("/buildings/:id", buildings.Update)
	g.DELETE("/buildings/:id", buildings.Delete)
}

// Limiter builds the rate limiting middleware from config; Redis may be
// nil, in which case the limiter is a no-op.
func Limiter(rdb *redis.Client) echo.MiddlewareFunc {
	return middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
}

// Cache builds the response cache middleware from config; Redis may be
// nil, in which case caching is a no-op.
func Cache(rdb *redis.Client) echo.MiddlewareFunc {
	return middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
}
