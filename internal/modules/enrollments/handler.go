package enrollments

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/modules/auth"
	"github.com/learnhub/learnhub/internal/modules/courses"
)

// Handler handles HTTP requests for enrollments. Handlers are thin: they
// bind the request, call the service, and render the response.
type Handler struct {
	service EnrollmentService
}

// NewHandler creates a new enrollments handler with the given service.
func NewHandler(service EnrollmentService) *Handler {
	return &Handler{service: service}
}

// Enroll signs the caller up for a course (POST /api/courses/:id/enroll).
func (h *Handler) Enroll(c echo.Context) error {
	enrollment, err := h.service.Enroll(c.Request().Context(), auth.GetUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope(map[string]interface{}{"enrollment": enrollment}))
}

// Drop removes the caller's enrollment (DELETE /api/courses/:id/enroll).
func (h *Handler) Drop(c echo.Context) error {
	if err := h.service.Drop(c.Request().Context(), auth.GetUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProgress records the caller's progress in a course
// (PUT /api/courses/:id/progress).
func (h *Handler) UpdateProgress(c echo.Context) error {
	var req ProgressRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	enrollment, err := h.service.UpdateProgress(c.Request().Context(),
		auth.GetUserID(c), c.Param("id"), req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(map[string]interface{}{"enrollment": enrollment}))
}

// ListMine returns the caller's enrollments (GET /api/enrollments).
func (h *Handler) ListMine(c echo.Context) error {
	list, err := h.service.ListForStudent(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(map[string]interface{}{"enrollments": list}))
}

// ListRoster returns a course's roster for its author
// (GET /api/courses/:id/enrollments).
func (h *Handler) ListRoster(c echo.Context) error {
	actor := courses.Actor{UserID: auth.GetUserID(c), Role: auth.GetRole(c)}
	list, err := h.service.ListForCourse(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(map[string]interface{}{"enrollments": list}))
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "success", "data": data}
}
