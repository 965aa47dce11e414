package auth

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	mw "github.com/learnhub/learnhub/internal/middleware"
)

// loginPath is where unauthenticated visitors of protected pages are sent.
const loginPath = "/auth/login"

// routeRoles maps protected page prefixes to the roles allowed in. A longer
// prefix wins over a shorter one, so order here is most-specific first.
var routeRoles = []struct {
	prefix string
	roles  []Role
}{
	{"/dashboard/teacher", []Role{RoleTeacher, RoleAdmin}},
	{"/dashboard/admin", []Role{RoleAdmin}},
	{"/dashboard/student", []Role{RoleStudent}},
	{"/dashboard", []Role{RoleStudent, RoleTeacher, RoleAdmin}},
}

// RouteGuard returns the site-wide navigation guard. It runs on every page
// request and applies, in order:
//
//  1. API, static asset, and health check requests pass through untouched;
//     the /api/ surface has its own RequireAuth/RequireRole middleware.
//  2. A signed-in user visiting an auth page is bounced to their ?next
//     destination, or to their role's dashboard home.
//  3. A signed-out visitor of any other page is sent to the login page
//     with the original destination preserved in ?next.
//  4. A signed-in user whose role does not match a role-gated prefix is
//     forcibly signed out: stale cookie cleared, then the login redirect
//     with ?next, same as rule 3.
//  5. Everyone else passes through. Sessions past half their lifetime are
//     re-issued so active users never hit a hard expiry.
func RouteGuard(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if mw.IsAPIRequest(c) || mw.IsStaticRequest(c) || c.Request().URL.Path == "/healthz" {
				return next(c)
			}

			path := c.Request().URL.Path
			session := issuer.Decode(getSessionToken(c))

			if isAuthPage(path) {
				if session == nil {
					return next(c)
				}
				return c.Redirect(http.StatusSeeOther, safeNext(c.QueryParam("next"), session.Role))
			}

			if session == nil {
				return redirectToLogin(c, path)
			}

			if required, gated := requiredRoles(path); gated && !roleAllowed(session.Role, required) {
				// Wrong role for this area. Treat the session as stale and
				// force a fresh sign-in rather than showing a 403 page.
				slog.Info("role mismatch, forcing sign-out",
					"user_id", session.UserID, "role", session.Role, "path", path)
				clearSessionCookie(c)
				return redirectToLogin(c, path)
			}

			refreshSession(c, issuer, session)
			c.Set(contextKeySession, session)
			c.Set(contextKeyUserID, session.UserID)
			c.Set(contextKeyRole, session.Role)

			return next(c)
		}
	}
}

// isAuthPage reports whether the path belongs to the sign-in/sign-up flow.
func isAuthPage(path string) bool {
	return path == "/auth" || strings.HasPrefix(path, "/auth/")
}

// requiredRoles returns the role set gating the given path, if any.
func requiredRoles(path string) ([]Role, bool) {
	for _, rule := range routeRoles {
		if path == rule.prefix || strings.HasPrefix(path, rule.prefix+"/") {
			return rule.roles, true
		}
	}
	return nil, false
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// safeNext validates a ?next destination. Only same-site absolute paths are
// honored; anything else falls back to the role's dashboard home so the
// login page cannot be used as an open redirect.
func safeNext(next string, role Role) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return role.DashboardPath()
}

// redirectToLogin sends the visitor to the login page, preserving where they
// were headed.
func redirectToLogin(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, loginPath+"?next="+url.QueryEscape(path))
}

// refreshSession re-issues the session token once it has consumed more than
// half of its lifetime. Issue failures are logged and ignored; the current
// token is still valid.
func refreshSession(c echo.Context, issuer *TokenIssuer, session *Session) {
	if !issuer.NeedsRefresh(session) {
		return
	}
	token, err := issuer.Issue(session.UserID, session.Role)
	if err != nil {
		slog.Error("session refresh failed", "user_id", session.UserID, "error", err)
		return
	}
	setSessionCookie(c, token, issuer.TTL())
}
