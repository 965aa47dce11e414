package enrollments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/learnhub/learnhub/internal/apperror"
)

// EnrollmentRepository defines the data access contract for enrollments.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	Find(ctx context.Context, studentID, courseID string) (*Enrollment, error)
	Delete(ctx context.Context, studentID, courseID string) error
	UpdateProgress(ctx context.Context, studentID, courseID string, progress int) error
	ListByStudent(ctx context.Context, studentID string) ([]StudentEnrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]CourseEnrollment, error)
	CountAll(ctx context.Context) (int, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// enrollmentRepository implements EnrollmentRepository with hand-written
// MariaDB queries.
type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository backed by the
// given DB pool.
func NewEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create inserts an enrollment row. A repeat enrollment trips the
// UNIQUE(student_id, course_id) index and surfaces as a Conflict.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *Enrollment) error {
	query := `INSERT INTO enrollments (id, student_id, course_id, progress, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.Progress,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return apperror.NewConflict("already enrolled in this course")
		}
		return fmt.Errorf("inserting enrollment: %w", err)
	}
	return nil
}

// Find retrieves the enrollment for a (student, course) pair.
// Returns apperror.NotFound when the student is not enrolled.
func (r *enrollmentRepository) Find(ctx context.Context, studentID, courseID string) (*Enrollment, error) {
	query := `SELECT id, student_id, course_id, progress, created_at, updated_at
	          FROM enrollments WHERE student_id = ? AND course_id = ?`

	enrollment := &Enrollment{}
	err := r.db.QueryRowContext(ctx, query, studentID, courseID).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("enrollment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying enrollment: %w", err)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, studentID, courseID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM enrollments WHERE student_id = ? AND course_id = ?`, studentID, courseID)
	if err != nil {
		return fmt.Errorf("deleting enrollment: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("enrollment not found")
	}
	return nil
}

func (r *enrollmentRepository) UpdateProgress(ctx context.Context, studentID, courseID string, progress int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE enrollments SET progress = ?, updated_at = NOW() WHERE student_id = ? AND course_id = ?`,
		progress, studentID, courseID)
	if err != nil {
		return fmt.Errorf("updating progress: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		// RowsAffected is also 0 when the progress value did not change,
		// so confirm the row really is missing before reporting NotFound.
		if _, findErr := r.Find(ctx, studentID, courseID); findErr != nil {
			return findErr
		}
	}
	return nil
}

// ListByStudent returns the student's enrollments joined with course info,
// newest first.
func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]StudentEnrollment, error) {
	query := `SELECT e.id, e.student_id, e.course_id, e.progress, e.created_at, e.updated_at,
	                 c.title, c.description
	          FROM enrollments e
	          JOIN courses c ON c.id = e.course_id
	          WHERE e.student_id = ?
	          ORDER BY e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments by student: %w", err)
	}
	defer rows.Close()

	var result []StudentEnrollment
	for rows.Next() {
		var e StudentEnrollment
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.Progress, &e.CreatedAt, &e.UpdatedAt,
			&e.CourseTitle, &e.CourseDescription,
		); err != nil {
			return nil, fmt.Errorf("scanning enrollment row: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enrollment rows: %w", err)
	}
	return result, nil
}

// ListByCourse returns a course's enrollments joined with the students'
// public identity, newest first.
func (r *enrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]CourseEnrollment, error) {
	query := `SELECT e.id, e.student_id, e.course_id, e.progress, e.created_at, e.updated_at,
	                 u.name, u.email
	          FROM enrollments e
	          JOIN users u ON u.id = e.student_id
	          WHERE e.course_id = ?
	          ORDER BY e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments by course: %w", err)
	}
	defer rows.Close()

	var result []CourseEnrollment
	for rows.Next() {
		var e CourseEnrollment
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.Progress, &e.CreatedAt, &e.UpdatedAt,
			&e.StudentName, &e.StudentEmail,
		); err != nil {
			return nil, fmt.Errorf("scanning enrollment row: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enrollment rows: %w", err)
	}
	return result, nil
}

func (r *enrollmentRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting enrollments: %w", err)
	}
	return count, nil
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = ?`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting enrollments by course: %w", err)
	}
	return count, nil
}
