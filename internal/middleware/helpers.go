package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// IsAPIRequest returns true if the request targets the JSON API under /api/.
// The route guard skips these paths; API handlers answer with JSON errors
// instead of redirects.
func IsAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// IsStaticRequest returns true for static asset paths, which bypass the
// route guard entirely.
func IsStaticRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/static/")
}
