package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/apperror"
)

// Handler handles HTTP requests for authentication (login, register, logout,
// session introspection). Handlers are thin: they bind the request, call the
// service, and render the response. No business logic lives here.
type Handler struct {
	service AuthService
	issuer  *TokenIssuer
}

// NewHandler creates a new auth handler with the given dependencies.
func NewHandler(service AuthService, issuer *TokenIssuer) *Handler {
	return &Handler{service: service, issuer: issuer}
}

// Register processes a sign-up request (POST /api/auth/register).
//
// The response carries Cache-Control: no-store in every outcome so neither
// the created account payload nor a validation error ends up in a shared
// cache. A non-JSON body is rejected with 415 before any binding happens.
func (h *Handler) Register(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return apperror.NewUnsupportedMediaType("Content-Type must be application/json")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"user": user},
	})
}

// Login processes a credential sign-in (POST /api/auth/login). On success a
// session token is issued and set as an HttpOnly cookie.
func (h *Handler) Login(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, err := h.service.Authenticate(c.Request().Context(), req)
	if err != nil {
		return err
	}

	token, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return apperror.NewInternal(err)
	}
	setSessionCookie(c, token, h.issuer.TTL())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"user": user},
	})
}

// Logout clears the session cookie (POST /api/auth/logout). Always succeeds;
// signing out an already signed-out client is a no-op.
func (h *Handler) Logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "success"})
}

// Session returns the current session's identity (GET /api/auth/session).
// Clients use this to hydrate their UI state on page load.
func (h *Handler) Session(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	session := h.issuer.Decode(getSessionToken(c))
	if session == nil {
		return apperror.NewUnauthorized("no active session")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"id":   session.UserID,
			"role": session.Role,
		},
	})
}

// Me returns the full safe profile of the signed-in user (GET /api/auth/me).
func (h *Handler) Me(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	session := h.issuer.Decode(getSessionToken(c))
	if session == nil {
		return apperror.NewUnauthorized("no active session")
	}

	user, err := h.service.GetUser(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"user": user},
	})
}
