package courses

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/learnhub/learnhub/internal/apperror"
	"github.com/learnhub/learnhub/internal/modules/auth"
)

// --- Mock Repository ---

type mockCourseRepo struct {
	createCourseFn        func(ctx context.Context, course *Course) error
	findCourseByIDFn      func(ctx context.Context, id string) (*Course, error)
	listCoursesFn         func(ctx context.Context) ([]Course, error)
	listCoursesByAuthorFn func(ctx context.Context, authorID string) ([]Course, error)
	updateCourseFn        func(ctx context.Context, course *Course) error
	deleteCourseFn        func(ctx context.Context, id string) error
	countCoursesFn        func(ctx context.Context) (int, error)

	createLessonFn        func(ctx context.Context, lesson *Lesson) error
	findLessonByIDFn      func(ctx context.Context, id string) (*Lesson, error)
	listLessonsByCourseFn func(ctx context.Context, courseID string) ([]Lesson, error)
	updateLessonFn        func(ctx context.Context, lesson *Lesson) error
	deleteLessonFn        func(ctx context.Context, id string) error
	maxLessonPositionFn   func(ctx context.Context, courseID string) (int, error)
	reorderLessonsFn      func(ctx context.Context, courseID string, lessonIDs []string) error
}

func (m *mockCourseRepo) CreateCourse(ctx context.Context, course *Course) error {
	if m.createCourseFn != nil {
		return m.createCourseFn(ctx, course)
	}
	return nil
}

func (m *mockCourseRepo) FindCourseByID(ctx context.Context, id string) (*Course, error) {
	if m.findCourseByIDFn != nil {
		return m.findCourseByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("course not found")
}

func (m *mockCourseRepo) ListCourses(ctx context.Context) ([]Course, error) {
	if m.listCoursesFn != nil {
		return m.listCoursesFn(ctx)
	}
	return nil, nil
}

func (m *mockCourseRepo) ListCoursesByAuthor(ctx context.Context, authorID string) ([]Course, error) {
	if m.listCoursesByAuthorFn != nil {
		return m.listCoursesByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func (m *mockCourseRepo) UpdateCourse(ctx context.Context, course *Course) error {
	if m.updateCourseFn != nil {
		return m.updateCourseFn(ctx, course)
	}
	return nil
}

func (m *mockCourseRepo) DeleteCourse(ctx context.Context, id string) error {
	if m.deleteCourseFn != nil {
		return m.deleteCourseFn(ctx, id)
	}
	return nil
}

func (m *mockCourseRepo) CountCourses(ctx context.Context) (int, error) {
	if m.countCoursesFn != nil {
		return m.countCoursesFn(ctx)
	}
	return 0, nil
}

func (m *mockCourseRepo) CreateLesson(ctx context.Context, lesson *Lesson) error {
	if m.createLessonFn != nil {
		return m.createLessonFn(ctx, lesson)
	}
	return nil
}

func (m *mockCourseRepo) FindLessonByID(ctx context.Context, id string) (*Lesson, error) {
	if m.findLessonByIDFn != nil {
		return m.findLessonByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("lesson not found")
}

func (m *mockCourseRepo) ListLessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error) {
	if m.listLessonsByCourseFn != nil {
		return m.listLessonsByCourseFn(ctx, courseID)
	}
	return nil, nil
}

func (m *mockCourseRepo) UpdateLesson(ctx context.Context, lesson *Lesson) error {
	if m.updateLessonFn != nil {
		return m.updateLessonFn(ctx, lesson)
	}
	return nil
}

func (m *mockCourseRepo) DeleteLesson(ctx context.Context, id string) error {
	if m.deleteLessonFn != nil {
		return m.deleteLessonFn(ctx, id)
	}
	return nil
}

func (m *mockCourseRepo) MaxLessonPosition(ctx context.Context, courseID string) (int, error) {
	if m.maxLessonPositionFn != nil {
		return m.maxLessonPositionFn(ctx, courseID)
	}
	return 0, nil
}

func (m *mockCourseRepo) ReorderLessons(ctx context.Context, courseID string, lessonIDs []string) error {
	if m.reorderLessonsFn != nil {
		return m.reorderLessonsFn(ctx, courseID, lessonIDs)
	}
	return nil
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected code %s, got %s (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

var (
	teacherActor = Actor{UserID: "teacher-1", Role: auth.RoleTeacher}
	adminActor   = Actor{UserID: "admin-1", Role: auth.RoleAdmin}
	otherTeacher = Actor{UserID: "teacher-2", Role: auth.RoleTeacher}
)

func ownedCourse() *Course {
	return &Course{ID: "course-1", Title: "Algebra", AuthorID: "teacher-1"}
}

// --- Course tests ---

func TestCreateCourse_Success(t *testing.T) {
	var created *Course
	repo := &mockCourseRepo{
		createCourseFn: func(ctx context.Context, course *Course) error {
			created = course
			return nil
		},
	}
	svc := NewCourseService(repo)

	course, err := svc.CreateCourse(context.Background(), teacherActor, CourseRequest{
		Title:       "  Algebra 101 ",
		Description: "Linear equations and beyond",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if course.Title != "Algebra 101" {
		t.Errorf("expected trimmed title, got %q", course.Title)
	}
	if created.AuthorID != "teacher-1" {
		t.Errorf("expected actor as author, got %q", created.AuthorID)
	}
	if created.ID == "" {
		t.Error("expected a generated course id")
	}
}

func TestCreateCourse_MissingTitle(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{})

	_, err := svc.CreateCourse(context.Background(), teacherActor, CourseRequest{Title: "  "})
	assertAppError(t, err, apperror.CodeValidation)
}

func TestUpdateCourse_OnlyAuthorOrAdmin(t *testing.T) {
	repo := &mockCourseRepo{
		findCourseByIDFn: func(ctx context.Context, id string) (*Course, error) {
			return ownedCourse(), nil
		},
	}
	svc := NewCourseService(repo)
	req := CourseRequest{Title: "Renamed"}

	if _, err := svc.UpdateCourse(context.Background(), teacherActor, "course-1", req); err != nil {
		t.Errorf("author update should succeed, got %v", err)
	}
	if _, err := svc.UpdateCourse(context.Background(), adminActor, "course-1", req); err != nil {
		t.Errorf("admin update should succeed, got %v", err)
	}

	_, err := svc.UpdateCourse(context.Background(), otherTeacher, "course-1", req)
	assertAppError(t, err, apperror.CodeForbidden)
}

func TestDeleteCourse_UnknownCourse(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{})

	err := svc.DeleteCourse(context.Background(), teacherActor, "nope")
	assertAppError(t, err, apperror.CodeNotFound)
}

func TestGetCourse_IncludesLessons(t *testing.T) {
	repo := &mockCourseRepo{
		findCourseByIDFn: func(ctx context.Context, id string) (*Course, error) {
			return ownedCourse(), nil
		},
		listLessonsByCourseFn: func(ctx context.Context, courseID string) ([]Lesson, error) {
			return []Lesson{
				{ID: "lesson-1", Position: 1},
				{ID: "lesson-2", Position: 2},
			}, nil
		},
	}
	svc := NewCourseService(repo)

	course, err := svc.GetCourse(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(course.Lessons) != 2 {
		t.Errorf("expected 2 lessons, got %d", len(course.Lessons))
	}
}

// --- Lesson tests ---

func TestCreateLesson_SanitizesContentAndAppends(t *testing.T) {
	var created *Lesson
	repo := &mockCourseRepo{
		findCourseByIDFn: func(ctx context.Context, id string) (*Course, error) {
			return ownedCourse(), nil
		},
		maxLessonPositionFn: func(ctx context.Context, courseID string) (int, error) {
			return 3, nil
		},
		createLessonFn: func(ctx context.Context, lesson *Lesson) error {
			created = lesson
			return nil
		},
	}
	svc := NewCourseService(repo)

	lesson, err := svc.CreateLesson(context.Background(), teacherActor, "course-1", LessonRequest{
		Title:   "Intro",
		Content: `<p>Hello</p><script>alert("xss")</script>`,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if strings.Contains(created.Content, "<script>") {
		t.Errorf("expected script tags stripped, got %q", created.Content)
	}
	if !strings.Contains(created.Content, "<p>Hello</p>") {
		t.Errorf("expected safe markup kept, got %q", created.Content)
	}
	if lesson.Position != 4 {
		t.Errorf("expected lesson appended at position 4, got %d", lesson.Position)
	}
}

func TestCreateLesson_ForbiddenForNonAuthor(t *testing.T) {
	repo := &mockCourseRepo{
		findCourseByIDFn: func(ctx context.Context, id string) (*Course, error) {
			return ownedCourse(), nil
		},
	}
	svc := NewCourseService(repo)

	_, err := svc.CreateLesson(context.Background(), otherTeacher, "course-1", LessonRequest{
		Title:   "Intro",
		Content: "<p>Hello</p>",
	})
	assertAppError(t, err, apperror.CodeForbidden)
}

func TestReorderLessons_Success(t *testing.T) {
	var reordered []string
	repo := &mockCourseRepo{
		findCourseByIDFn: func(ctx context.Context, id string) (*Course, error) {
			return ownedCourse(), nil
		},
		listLessonsByCourseFn: func(ctx context.Context, courseID string) ([]Lesson, error) {
			return []Lesson{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
		reorderLessonsFn: func(ctx context.Context, courseID string, lessonIDs []string) error {
			reordered = lessonIDs
			return nil
		},
	}
	svc := NewCourseService(repo)

	err := svc.ReorderLessons(context.Background(), teacherActor, "course-1",
		ReorderRequest{LessonIDs: []string{"c", "a", "b"}})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(reordered) != 3 || reordered[0] != "c" {
		t.Errorf("unexpected reorder list: %v", reordered)
	}
}

func TestReorderLessons_RejectsIncompleteList(t *testing.T) {
	repo := &mockCourseRepo{
		findCourseByIDFn: func(ctx context.Context, id string) (*Course, error) {
			return ownedCourse(), nil
		},
		listLessonsByCourseFn: func(ctx context.Context, courseID string) ([]Lesson, error) {
			return []Lesson{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	svc := NewCourseService(repo)

	cases := [][]string{
		{"a", "b"},           // missing one
		{"a", "b", "x"},      // unknown id
		{"a", "a", "b"},      // duplicate
		{"a", "b", "c", "c"}, // too many
	}
	for _, ids := range cases {
		err := svc.ReorderLessons(context.Background(), teacherActor, "course-1",
			ReorderRequest{LessonIDs: ids})
		assertAppError(t, err, apperror.CodeBadRequest)
	}
}
