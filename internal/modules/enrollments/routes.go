package enrollments

import (
	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/modules/auth"
)

// RegisterRoutes sets up the enrollment endpoints. Self-service operations
// are student-only; the roster view is gated to teachers and admins, with
// the author check in the service.
func RegisterRoutes(e *echo.Echo, h *Handler, issuer *auth.TokenIssuer) {
	student := auth.RequireRole(auth.RoleStudent)
	teach := auth.RequireRole(auth.RoleTeacher, auth.RoleAdmin)

	g := e.Group("/api", auth.RequireAuth(issuer))

	g.GET("/enrollments", h.ListMine, student)
	g.POST("/courses/:id/enroll", h.Enroll, student)
	g.DELETE("/courses/:id/enroll", h.Drop, student)
	g.PUT("/courses/:id/progress", h.UpdateProgress, student)

	g.GET("/courses/:id/enrollments", h.ListRoster, teach)
}
