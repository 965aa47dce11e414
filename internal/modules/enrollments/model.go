// Package enrollments tracks which students take which courses and how far
// along they are. Enrollment is student self-service; one row per
// (student, course) pair, enforced by a unique index.
package enrollments

import (
	"time"
)

// Enrollment links a student to a course with a progress percentage.
type Enrollment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CourseID  string    `json:"course_id"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentEnrollment is an enrollment joined with its course, for the
// student-facing listing.
type StudentEnrollment struct {
	Enrollment
	CourseTitle       string `json:"course_title"`
	CourseDescription string `json:"course_description"`
}

// CourseEnrollment is an enrollment joined with the student's public
// identity, for the teacher-facing listing.
type CourseEnrollment struct {
	Enrollment
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}

// ProgressRequest carries a progress update. Values outside 0-100 are
// rejected, not clamped silently.
type ProgressRequest struct {
	Progress int `json:"progress" form:"progress"`
}
