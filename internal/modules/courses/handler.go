package courses

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/modules/auth"
)

// Handler handles HTTP requests for the course catalog. Handlers are thin:
// they bind the request, call the service, and render the response.
type Handler struct {
	service CourseService
}

// NewHandler creates a new courses handler with the given service.
func NewHandler(service CourseService) *Handler {
	return &Handler{service: service}
}

// actor builds the acting identity from the authenticated session.
func actor(c echo.Context) Actor {
	return Actor{UserID: auth.GetUserID(c), Role: auth.GetRole(c)}
}

// ListCourses returns the full catalog (GET /api/courses).
func (h *Handler) ListCourses(c echo.Context) error {
	courses, err := h.service.ListCourses(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, map[string]interface{}{"courses": courses})
}

// GetCourse returns one course with its lessons (GET /api/courses/:id).
func (h *Handler) GetCourse(c echo.Context) error {
	course, err := h.service.GetCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, map[string]interface{}{"course": course})
}

// CreateCourse creates a course owned by the caller (POST /api/courses).
func (h *Handler) CreateCourse(c echo.Context) error {
	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	course, err := h.service.CreateCourse(c.Request().Context(), actor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope(map[string]interface{}{"course": course}))
}

// UpdateCourse modifies a course (PUT /api/courses/:id).
func (h *Handler) UpdateCourse(c echo.Context) error {
	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	course, err := h.service.UpdateCourse(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return ok(c, map[string]interface{}{"course": course})
}

// DeleteCourse removes a course (DELETE /api/courses/:id).
func (h *Handler) DeleteCourse(c echo.Context) error {
	if err := h.service.DeleteCourse(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateLesson appends a lesson to a course (POST /api/courses/:id/lessons).
func (h *Handler) CreateLesson(c echo.Context) error {
	var req LessonRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	lesson, err := h.service.CreateLesson(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope(map[string]interface{}{"lesson": lesson}))
}

// UpdateLesson modifies a lesson (PUT /api/lessons/:id).
func (h *Handler) UpdateLesson(c echo.Context) error {
	var req LessonRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	lesson, err := h.service.UpdateLesson(c.Request().Context(), actor(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return ok(c, map[string]interface{}{"lesson": lesson})
}

// DeleteLesson removes a lesson (DELETE /api/lessons/:id).
func (h *Handler) DeleteLesson(c echo.Context) error {
	if err := h.service.DeleteLesson(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReorderLessons applies a new lesson order (PUT /api/courses/:id/lessons/order).
func (h *Handler) ReorderLessons(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if err := h.service.ReorderLessons(c.Request().Context(), actor(c), c.Param("id"), req); err != nil {
		return err
	}
	return ok(c, nil)
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "success", "data": data}
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, envelope(data))
}
