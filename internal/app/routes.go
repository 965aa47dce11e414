package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub/internal/mail"
	"github.com/learnhub/learnhub/internal/modules/auth"
	"github.com/learnhub/learnhub/internal/modules/courses"
	"github.com/learnhub/learnhub/internal/modules/dashboard"
	"github.com/learnhub/learnhub/internal/modules/enrollments"
)

// RegisterRoutes builds every module's dependency chain and mounts its
// routes. This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	issuer := auth.NewTokenIssuer(a.Config.Auth.JWTSecret, a.Config.Auth.SessionTTL)

	// Site-wide navigation guard: role-gates the /dashboard prefixes,
	// bounces signed-in users off the auth pages, refreshes aging sessions.
	e.Use(auth.RouteGuard(issuer))

	// auth module (registration, login, logout, session introspection).
	userRepo := auth.NewUserRepository(a.DB)
	authSvc := auth.NewAuthService(userRepo, mail.NewLogSender(), a.Config.Auth.BcryptCost)
	auth.RegisterRoutes(e, auth.NewHandler(authSvc, issuer), a.Redis)

	// courses module (catalog and lessons).
	courseRepo := courses.NewCourseRepository(a.DB)
	courseSvc := courses.NewCourseService(courseRepo)
	courses.RegisterRoutes(e, courses.NewHandler(courseSvc), issuer)

	// enrollments module (student self-service and teacher rosters).
	enrollRepo := enrollments.NewEnrollmentRepository(a.DB)
	enrollSvc := enrollments.NewEnrollmentService(enrollRepo, courseSvc)
	enrollments.RegisterRoutes(e, enrollments.NewHandler(enrollSvc), issuer)

	// dashboard module (role dashboards behind the guard).
	dashSvc := dashboard.NewService(enrollSvc, courseRepo, enrollRepo, userRepo)
	dashboard.RegisterRoutes(e, dashboard.NewHandler(dashSvc))
}
