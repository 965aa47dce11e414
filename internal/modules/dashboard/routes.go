package dashboard

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the dashboard endpoints. These live on the page
// route prefixes the site-wide guard protects, so no extra middleware is
// attached here: the guard has already rejected wrong-role visitors and
// put the session in the context.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/dashboard/student", h.Student)
	e.GET("/dashboard/teacher", h.Teacher)
	e.GET("/dashboard/admin", h.Admin)
}
