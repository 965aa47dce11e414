package courses

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/modules/auth"
	"github.com/learnhub/learnhub/internal/sanitize"
)

// Actor identifies who is performing an operation. Ownership checks compare
// the actor against the course author; admins bypass them.
type Actor struct {
	UserID string
	Role   auth.Role
}

// CourseService defines the business logic contract for the catalog.
// Handlers call these methods -- they never touch the repository directly.
type CourseService interface {
	CreateCourse(ctx context.Context, actor Actor, req CourseRequest) (*Course, error)
	GetCourse(ctx context.Context, id string) (*CourseWithLessons, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Course, error)
	UpdateCourse(ctx context.Context, actor Actor, id string, req CourseRequest) (*Course, error)
	DeleteCourse(ctx context.Context, actor Actor, id string) error

	CreateLesson(ctx context.Context, actor Actor, courseID string, req LessonRequest) (*Lesson, error)
	UpdateLesson(ctx context.Context, actor Actor, lessonID string, req LessonRequest) (*Lesson, error)
	DeleteLesson(ctx context.Context, actor Actor, lessonID string) error
	ReorderLessons(ctx context.Context, actor Actor, courseID string, req ReorderRequest) error
}

// courseService implements CourseService.
type courseService struct {
	repo CourseRepository
}

// NewCourseService creates a new course service with the given repository.
func NewCourseService(repo CourseRepository) CourseService {
	return &courseService{repo: repo}
}

// CreateCourse creates a course owned by the acting teacher.
func (s *courseService) CreateCourse(ctx context.Context, actor Actor, req CourseRequest) (*Course, error) {
	if err := validateCourseRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course := &Course{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		AuthorID:    actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating course: %w", err))
	}

	slog.Info("course created", "course_id", course.ID, "author_id", actor.UserID)
	return course, nil
}

// GetCourse returns a course with its lessons in position order.
func (s *courseService) GetCourse(ctx context.Context, id string) (*CourseWithLessons, error) {
	course, err := s.repo.FindCourseByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr(err, "fetching course")
	}

	lessons, err := s.repo.ListLessonsByCourse(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("fetching lessons: %w", err))
	}

	return &CourseWithLessons{Course: *course, Lessons: lessons}, nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing courses: %w", err))
	}
	return courses, nil
}

func (s *courseService) ListByAuthor(ctx context.Context, authorID string) ([]Course, error) {
	courses, err := s.repo.ListCoursesByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing courses by author: %w", err))
	}
	return courses, nil
}

// UpdateCourse modifies a course's title and description. Only the author
// or an admin may do this.
func (s *courseService) UpdateCourse(ctx context.Context, actor Actor, id string, req CourseRequest) (*Course, error) {
	if err := validateCourseRequest(req); err != nil {
		return nil, err
	}

	course, err := s.authorizeCourse(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	course.Title = strings.TrimSpace(req.Title)
	course.Description = strings.TrimSpace(req.Description)
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		return nil, wrapRepoErr(err, "updating course")
	}
	return course, nil
}

// DeleteCourse removes a course with its lessons and enrollments.
func (s *courseService) DeleteCourse(ctx context.Context, actor Actor, id string) error {
	if _, err := s.authorizeCourse(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		return wrapRepoErr(err, "deleting course")
	}
	slog.Info("course deleted", "course_id", id, "actor_id", actor.UserID)
	return nil
}

// CreateLesson appends a lesson at the end of the course. Content is
// sanitized before persistence; the stored HTML is always safe to render.
func (s *courseService) CreateLesson(ctx context.Context, actor Actor, courseID string, req LessonRequest) (*Lesson, error) {
	if err := validateLessonRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.authorizeCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	maxPos, err := s.repo.MaxLessonPosition(ctx, courseID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("finding lesson position: %w", err))
	}

	now := time.Now().UTC()
	lesson := &Lesson{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Title:     strings.TrimSpace(req.Title),
		Content:   sanitize.HTML(req.Content),
		Position:  maxPos + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateLesson(ctx, lesson); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating lesson: %w", err))
	}
	return lesson, nil
}

// UpdateLesson modifies a lesson's title and content.
func (s *courseService) UpdateLesson(ctx context.Context, actor Actor, lessonID string, req LessonRequest) (*Lesson, error) {
	if err := validateLessonRequest(req); err != nil {
		return nil, err
	}

	lesson, err := s.repo.FindLessonByID(ctx, lessonID)
	if err != nil {
		return nil, wrapRepoErr(err, "fetching lesson")
	}
	if _, err := s.authorizeCourse(ctx, actor, lesson.CourseID); err != nil {
		return nil, err
	}

	lesson.Title = strings.TrimSpace(req.Title)
	lesson.Content = sanitize.HTML(req.Content)
	lesson.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateLesson(ctx, lesson); err != nil {
		return nil, wrapRepoErr(err, "updating lesson")
	}
	return lesson, nil
}

// DeleteLesson removes a lesson. Positions of the remaining lessons are left
// alone; ordering only depends on their relative values.
func (s *courseService) DeleteLesson(ctx context.Context, actor Actor, lessonID string) error {
	lesson, err := s.repo.FindLessonByID(ctx, lessonID)
	if err != nil {
		return wrapRepoErr(err, "fetching lesson")
	}
	if _, err := s.authorizeCourse(ctx, actor, lesson.CourseID); err != nil {
		return err
	}
	if err := s.repo.DeleteLesson(ctx, lessonID); err != nil {
		return wrapRepoErr(err, "deleting lesson")
	}
	return nil
}

// ReorderLessons applies a complete new ordering. The request must name
// every lesson of the course exactly once.
func (s *courseService) ReorderLessons(ctx context.Context, actor Actor, courseID string, req ReorderRequest) error {
	if _, err := s.authorizeCourse(ctx, actor, courseID); err != nil {
		return err
	}

	existing, err := s.repo.ListLessonsByCourse(ctx, courseID)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("listing lessons: %w", err))
	}
	if len(req.LessonIDs) != len(existing) {
		return apperror.NewBadRequest("reorder list must contain every lesson exactly once")
	}
	known := make(map[string]bool, len(existing))
	for _, lesson := range existing {
		known[lesson.ID] = true
	}
	seen := make(map[string]bool, len(req.LessonIDs))
	for _, id := range req.LessonIDs {
		if !known[id] || seen[id] {
			return apperror.NewBadRequest("reorder list must contain every lesson exactly once")
		}
		seen[id] = true
	}

	if err := s.repo.ReorderLessons(ctx, courseID, req.LessonIDs); err != nil {
		return wrapRepoErr(err, "reordering lessons")
	}
	return nil
}

// authorizeCourse loads a course and checks the actor may mutate it.
func (s *courseService) authorizeCourse(ctx context.Context, actor Actor, courseID string) (*Course, error) {
	course, err := s.repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, wrapRepoErr(err, "fetching course")
	}
	if course.AuthorID != actor.UserID && actor.Role != auth.RoleAdmin {
		return nil, apperror.NewForbidden("only the course author may modify it")
	}
	return course, nil
}

func validateCourseRequest(req CourseRequest) error {
	var fields []apperror.FieldError
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "Title is required"})
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

func validateLessonRequest(req LessonRequest) error {
	var fields []apperror.FieldError
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, apperror.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(req.Content) == "" {
		fields = append(fields, apperror.FieldError{Field: "content", Message: "Content is required"})
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

// wrapRepoErr passes AppErrors through and wraps anything else as internal.
func wrapRepoErr(err error, action string) error {
	if appErr, ok := err.(*apperror.AppError); ok {
		return appErr
	}
	return apperror.NewInternal(fmt.Errorf("%s: %w", action, err))
}
