package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Context keys for storing session data in Echo context. Other modules
// use these keys (via the exported getter functions below) to access
// the authenticated user's information.
const (
	contextKeySession = "auth_session"
	contextKeyUserID  = "auth_user_id"
	contextKeyRole    = "auth_role"
)

// RequireAuth returns middleware that decodes the session cookie and injects
// the session into the request context. Requests without a valid session get
// a 401 JSON response; the token is never inspected beyond valid/invalid.
func RequireAuth(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := issuer.Decode(getSessionToken(c))
			if session == nil {
				clearSessionCookie(c)
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":    "Unauthorized",
					"message": "authentication required",
				})
			}

			c.Set(contextKeySession, session)
			c.Set(contextKeyUserID, session.UserID)
			c.Set(contextKeyRole, session.Role)

			return next(c)
		}
	}
}

// RequireRole returns middleware that restricts a route group to the given
// roles. Must run after RequireAuth.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	allowed := make(map[Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)
			if session == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":    "Unauthorized",
					"message": "authentication required",
				})
			}
			if !allowed[session.Role] {
				return c.JSON(http.StatusForbidden, map[string]string{
					"code":    "Forbidden",
					"message": "insufficient permissions",
				})
			}
			return next(c)
		}
	}
}

// GetSession returns the decoded session for the current request, or nil if
// the request is unauthenticated.
func GetSession(c echo.Context) *Session {
	session, _ := c.Get(contextKeySession).(*Session)
	return session
}

// GetUserID returns the authenticated user's id, or "" if unauthenticated.
func GetUserID(c echo.Context) string {
	id, _ := c.Get(contextKeyUserID).(string)
	return id
}

// GetRole returns the authenticated user's role, or "" if unauthenticated.
func GetRole(c echo.Context) Role {
	role, _ := c.Get(contextKeyRole).(Role)
	return role
}

// getSessionToken extracts the session token from the request cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie writes the session token as an HttpOnly cookie. The
// Secure flag follows the request scheme so local development over plain
// HTTP still works.
func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}
