package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	mw "github.com/learnhub/learnhub/internal/middleware"
)

// RegisterRoutes sets up all auth endpoints on the given Echo instance.
// Auth routes are public (no session required) -- the RequireAuth and
// RequireRole middleware are exported separately for other modules to use
// on their route groups.
//
// POST endpoints are rate-limited to prevent brute-force and credential
// stuffing attacks: 10 attempts per IP per minute for login, 5 for register.
func RegisterRoutes(e *echo.Echo, h *Handler, rdb *redis.Client) {
	g := e.Group("/api/auth")

	g.POST("/register", h.Register, mw.RateLimit(rdb, 5, time.Minute))
	g.POST("/login", h.Login, mw.RateLimit(rdb, 10, time.Minute))
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
	g.GET("/me", h.Me)
}
