// Package dashboard aggregates the data behind the three role dashboards.
// The routes live under the guard-protected /dashboard prefixes and return
// JSON consumed by the frontend.
package dashboard

import (
	"context"
	"fmt"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/modules/auth"
	"github.com/learnhub/learnhub/internal/modules/courses"
	"github.com/learnhub/learnhub/internal/modules/enrollments"
)

// StudentEnrollments is the slice of the enrollment service the student
// dashboard needs.
type StudentEnrollments interface {
	ListForStudent(ctx context.Context, studentID string) ([]enrollments.StudentEnrollment, error)
}

// TeacherCourses provides the teacher's courses and their head counts.
type TeacherCourses interface {
	ListCoursesByAuthor(ctx context.Context, authorID string) ([]courses.Course, error)
	CountCourses(ctx context.Context) (int, error)
}

// EnrollmentCounts provides enrollment tallies for the teacher and admin
// views.
type EnrollmentCounts interface {
	CountByCourse(ctx context.Context, courseID string) (int, error)
	CountAll(ctx context.Context) (int, error)
}

// UserCounts provides per-role account tallies for the admin view.
type UserCounts interface {
	CountByRole(ctx context.Context, role auth.Role) (int, error)
}

// StudentDashboard is the payload behind /dashboard/student.
type StudentDashboard struct {
	Enrollments []enrollments.StudentEnrollment `json:"enrollments"`
}

// TeacherCourse is one course row in the teacher dashboard, with its
// enrollment count.
type TeacherCourse struct {
	courses.Course
	EnrollmentCount int `json:"enrollment_count"`
}

// TeacherDashboard is the payload behind /dashboard/teacher.
type TeacherDashboard struct {
	Courses []TeacherCourse `json:"courses"`
}

// AdminDashboard is the payload behind /dashboard/admin: site-wide totals.
type AdminDashboard struct {
	Students    int `json:"students"`
	Teachers    int `json:"teachers"`
	Admins      int `json:"admins"`
	Courses     int `json:"courses"`
	Enrollments int `json:"enrollments"`
}

// Service aggregates data from the other modules into dashboard payloads.
type Service struct {
	studentEnrollments StudentEnrollments
	teacherCourses     TeacherCourses
	enrollmentCounts   EnrollmentCounts
	userCounts         UserCounts
}

// NewService creates a dashboard service over the other modules' data.
func NewService(se StudentEnrollments, tc TeacherCourses, ec EnrollmentCounts, uc UserCounts) *Service {
	return &Service{
		studentEnrollments: se,
		teacherCourses:     tc,
		enrollmentCounts:   ec,
		userCounts:         uc,
	}
}

// ForStudent builds the student dashboard: their enrollments with progress.
func (s *Service) ForStudent(ctx context.Context, studentID string) (*StudentDashboard, error) {
	list, err := s.studentEnrollments.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, wrapErr(err, "loading student enrollments")
	}
	if list == nil {
		list = []enrollments.StudentEnrollment{}
	}
	return &StudentDashboard{Enrollments: list}, nil
}

// ForTeacher builds the teacher dashboard: their courses with head counts.
func (s *Service) ForTeacher(ctx context.Context, teacherID string) (*TeacherDashboard, error) {
	owned, err := s.teacherCourses.ListCoursesByAuthor(ctx, teacherID)
	if err != nil {
		return nil, wrapErr(err, "loading teacher courses")
	}

	result := make([]TeacherCourse, 0, len(owned))
	for _, course := range owned {
		count, err := s.enrollmentCounts.CountByCourse(ctx, course.ID)
		if err != nil {
			return nil, wrapErr(err, "counting course enrollments")
		}
		result = append(result, TeacherCourse{Course: course, EnrollmentCount: count})
	}
	return &TeacherDashboard{Courses: result}, nil
}

// ForAdmin builds the admin dashboard: site-wide totals.
func (s *Service) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	dash := &AdminDashboard{}

	var err error
	if dash.Students, err = s.userCounts.CountByRole(ctx, auth.RoleStudent); err != nil {
		return nil, wrapErr(err, "counting students")
	}
	if dash.Teachers, err = s.userCounts.CountByRole(ctx, auth.RoleTeacher); err != nil {
		return nil, wrapErr(err, "counting teachers")
	}
	if dash.Admins, err = s.userCounts.CountByRole(ctx, auth.RoleAdmin); err != nil {
		return nil, wrapErr(err, "counting admins")
	}
	if dash.Courses, err = s.teacherCourses.CountCourses(ctx); err != nil {
		return nil, wrapErr(err, "counting courses")
	}
	if dash.Enrollments, err = s.enrollmentCounts.CountAll(ctx); err != nil {
		return nil, wrapErr(err, "counting enrollments")
	}

	return dash, nil
}

func wrapErr(err error, action string) error {
	if appErr, ok := err.(*apperror.AppError); ok {
		return appErr
	}
	return apperror.NewInternal(fmt.Errorf("%s: %w", action, err))
}
