package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/modules/auth"
)

// Handler serves the dashboard payloads. The route guard has already
// authenticated the request and verified the role before these run.
type Handler struct {
	service *Service
}

// NewHandler creates a new dashboard handler with the given service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Student serves GET /dashboard/student.
func (h *Handler) Student(c echo.Context) error {
	dash, err := h.service.ForStudent(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, dash)
}

// Teacher serves GET /dashboard/teacher.
func (h *Handler) Teacher(c echo.Context) error {
	dash, err := h.service.ForTeacher(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, dash)
}

// Admin serves GET /dashboard/admin.
func (h *Handler) Admin(c echo.Context) error {
	dash, err := h.service.ForAdmin(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, dash)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}
