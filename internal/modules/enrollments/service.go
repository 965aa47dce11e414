package enrollments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/modules/auth"
	"github.com/learnhub/learnhub/internal/modules/courses"
)

// EnrollmentService defines the business logic contract for enrollments.
type EnrollmentService interface {
	// Enroll signs the acting student up for a course. Enrolling twice in
	// the same course is a Conflict.
	Enroll(ctx context.Context, studentID, courseID string) (*Enrollment, error)

	// Drop removes the student's enrollment.
	Drop(ctx context.Context, studentID, courseID string) error

	// UpdateProgress records how far the student has come, 0 to 100.
	UpdateProgress(ctx context.Context, studentID, courseID string, progress int) (*Enrollment, error)

	// ListForStudent returns the student's enrollments with course info.
	ListForStudent(ctx context.Context, studentID string) ([]StudentEnrollment, error)

	// ListForCourse returns a course's roster. Restricted to the course
	// author and admins.
	ListForCourse(ctx context.Context, actor courses.Actor, courseID string) ([]CourseEnrollment, error)
}

// CourseFinder is the slice of the course service this package needs:
// confirming a course exists and identifying its author.
type CourseFinder interface {
	GetCourse(ctx context.Context, id string) (*courses.CourseWithLessons, error)
}

// enrollmentService implements EnrollmentService.
type enrollmentService struct {
	repo    EnrollmentRepository
	courses CourseFinder
}

// NewEnrollmentService creates a new enrollment service. The course finder
// is used to confirm a course exists before enrolling and to check roster
// access.
func NewEnrollmentService(repo EnrollmentRepository, courseSvc CourseFinder) EnrollmentService {
	return &enrollmentService{repo: repo, courses: courseSvc}
}

func (s *enrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*Enrollment, error) {
	// Confirm the course exists so a typo'd id yields 404, not a foreign
	// key error dressed up as a 500.
	if _, err := s.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	enrollment := &Enrollment{
		ID:        uuid.NewString(),
		StudentID: studentID,
		CourseID:  courseID,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, wrapRepoErr(err, "enrolling")
	}

	slog.Info("student enrolled", "student_id", studentID, "course_id", courseID)
	return enrollment, nil
}

func (s *enrollmentService) Drop(ctx context.Context, studentID, courseID string) error {
	if err := s.repo.Delete(ctx, studentID, courseID); err != nil {
		return wrapRepoErr(err, "dropping enrollment")
	}
	slog.Info("student dropped course", "student_id", studentID, "course_id", courseID)
	return nil
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, studentID, courseID string, progress int) (*Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, apperror.NewValidation([]apperror.FieldError{
			{Field: "progress", Message: "Progress must be between 0 and 100"},
		})
	}

	if err := s.repo.UpdateProgress(ctx, studentID, courseID, progress); err != nil {
		return nil, wrapRepoErr(err, "updating progress")
	}

	enrollment, err := s.repo.Find(ctx, studentID, courseID)
	if err != nil {
		return nil, wrapRepoErr(err, "fetching enrollment")
	}
	return enrollment, nil
}

func (s *enrollmentService) ListForStudent(ctx context.Context, studentID string) ([]StudentEnrollment, error) {
	list, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, wrapRepoErr(err, "listing enrollments")
	}
	return list, nil
}

func (s *enrollmentService) ListForCourse(ctx context.Context, actor courses.Actor, courseID string) ([]CourseEnrollment, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.AuthorID != actor.UserID && actor.Role != auth.RoleAdmin {
		return nil, apperror.NewForbidden("only the course author may view the roster")
	}

	list, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, wrapRepoErr(err, "listing roster")
	}
	return list, nil
}

// wrapRepoErr passes AppErrors through and wraps anything else as internal.
func wrapRepoErr(err error, action string) error {
	if appErr, ok := err.(*apperror.AppError); ok {
		return appErr
	}
	return apperror.NewInternal(fmt.Errorf("%s: %w", action, err))
}
