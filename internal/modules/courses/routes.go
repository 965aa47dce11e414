package courses

import (
	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/modules/auth"
)

// RegisterRoutes sets up the catalog endpoints. Reads require a session;
// writes additionally require the TEACHER or ADMIN role. Ownership checks
// happen in the service, the middleware only gates by role.
func RegisterRoutes(e *echo.Echo, h *Handler, issuer *auth.TokenIssuer) {
	g := e.Group("/api/courses", auth.RequireAuth(issuer))

	g.GET("", h.ListCourses)
	g.GET("/:id", h.GetCourse)

	teach := auth.RequireRole(auth.RoleTeacher, auth.RoleAdmin)
	g.POST("", h.CreateCourse, teach)
	g.PUT("/:id", h.UpdateCourse, teach)
	g.DELETE("/:id", h.DeleteCourse, teach)
	g.POST("/:id/lessons", h.CreateLesson, teach)
	g.PUT("/:id/lessons/order", h.ReorderLessons, teach)

	lessons := e.Group("/api/lessons", auth.RequireAuth(issuer), auth.RequireRole(auth.RoleTeacher, auth.RoleAdmin))
	lessons.PUT("/:id", h.UpdateLesson)
	lessons.DELETE("/:id", h.DeleteLesson)
}
