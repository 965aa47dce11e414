package courses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/learnhub/internal/apperror"
)

// CourseRepository defines the data access contract for courses and lessons.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *Course) error
	FindCourseByID(ctx context.Context, id string) (*Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListCoursesByAuthor(ctx context.Context, authorID string) ([]Course, error)
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id string) error
	CountCourses(ctx context.Context) (int, error)

	CreateLesson(ctx context.Context, lesson *Lesson) error
	FindLessonByID(ctx context.Context, id string) (*Lesson, error)
	ListLessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error)
	UpdateLesson(ctx context.Context, lesson *Lesson) error
	DeleteLesson(ctx context.Context, id string) error
	MaxLessonPosition(ctx context.Context, courseID string) (int, error)
	ReorderLessons(ctx context.Context, courseID string, lessonIDs []string) error
}

// courseRepository implements CourseRepository with hand-written MariaDB
// queries.
type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository backed by the given
// DB pool.
func NewCourseRepository(db *sql.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) CreateCourse(ctx context.Context, course *Course) error {
	query := `INSERT INTO courses (id, title, description, author_id, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.AuthorID,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}
	return nil
}

// FindCourseByID retrieves a course by id.
// Returns apperror.NotFound if no course exists with this id.
func (r *courseRepository) FindCourseByID(ctx context.Context, id string) (*Course, error) {
	query := `SELECT id, title, description, author_id, created_at, updated_at
	          FROM courses WHERE id = ?`

	course := &Course{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.AuthorID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying course by id: %w", err)
	}
	return course, nil
}

func (r *courseRepository) ListCourses(ctx context.Context) ([]Course, error) {
	query := `SELECT id, title, description, author_id, created_at, updated_at
	          FROM courses ORDER BY created_at DESC`
	return r.queryCourses(ctx, query)
}

func (r *courseRepository) ListCoursesByAuthor(ctx context.Context, authorID string) ([]Course, error) {
	query := `SELECT id, title, description, author_id, created_at, updated_at
	          FROM courses WHERE author_id = ? ORDER BY created_at DESC`
	return r.queryCourses(ctx, query, authorID)
}

func (r *courseRepository) queryCourses(ctx context.Context, query string, args ...interface{}) ([]Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.AuthorID,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course rows: %w", err)
	}
	return courses, nil
}

func (r *courseRepository) UpdateCourse(ctx context.Context, course *Course) error {
	query := `UPDATE courses SET title = ?, description = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("updating course: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("course not found")
	}
	return nil
}

// DeleteCourse removes a course. Lessons and enrollments go with it via
// ON DELETE CASCADE.
func (r *courseRepository) DeleteCourse(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("course not found")
	}
	return nil
}

func (r *courseRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return count, nil
}

// --- Lessons ---

func (r *courseRepository) CreateLesson(ctx context.Context, lesson *Lesson) error {
	query := `INSERT INTO lessons (id, course_id, title, content, position, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.CourseID,
		lesson.Title,
		lesson.Content,
		lesson.Position,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting lesson: %w", err)
	}
	return nil
}

func (r *courseRepository) FindLessonByID(ctx context.Context, id string) (*Lesson, error) {
	query := `SELECT id, course_id, title, content, position, created_at, updated_at
	          FROM lessons WHERE id = ?`

	lesson := &Lesson{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Content,
		&lesson.Position,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying lesson by id: %w", err)
	}
	return lesson, nil
}

func (r *courseRepository) ListLessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error) {
	query := `SELECT id, course_id, title, content, position, created_at, updated_at
	          FROM lessons WHERE course_id = ? ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []Lesson
	for rows.Next() {
		var lesson Lesson
		if err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Content,
			&lesson.Position,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson rows: %w", err)
	}
	return lessons, nil
}

func (r *courseRepository) UpdateLesson(ctx context.Context, lesson *Lesson) error {
	query := `UPDATE lessons SET title = ?, content = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		lesson.Title,
		lesson.Content,
		lesson.UpdatedAt,
		lesson.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lesson: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("lesson not found")
	}
	return nil
}

func (r *courseRepository) DeleteLesson(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lesson: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("lesson not found")
	}
	return nil
}

// MaxLessonPosition returns the highest position in the course, 0 when the
// course has no lessons yet.
func (r *courseRepository) MaxLessonPosition(ctx context.Context, courseID string) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM lessons WHERE course_id = ?`, courseID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max lesson position: %w", err)
	}
	return int(max.Int64), nil
}

// ReorderLessons rewrites the position column for every lesson of a course
// in a single transaction, following the order of lessonIDs.
func (r *courseRepository) ReorderLessons(ctx context.Context, courseID string, lessonIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for i, lessonID := range lessonIDs {
		result, err := tx.ExecContext(ctx,
			`UPDATE lessons SET position = ? WHERE id = ? AND course_id = ?`,
			i+1, lessonID, courseID)
		if err != nil {
			return fmt.Errorf("repositioning lesson %s: %w", lessonID, err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return apperror.NewBadRequest("unknown lesson in reorder list")
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}
