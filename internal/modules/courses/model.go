// Package courses manages the course catalog: teacher-owned courses and the
// ordered lessons inside them. Lesson content is HTML and is sanitized
// before it is persisted.
package courses

import (
	"time"
)

// Course is a unit of teaching owned by its author. Only the author or an
// admin may mutate a course or its lessons.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Lesson is an ordered content unit inside a course. Content holds sanitized
// HTML; Position is 1-based and unique within a course.
type Lesson struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseWithLessons bundles a course with its lessons in position order.
type CourseWithLessons struct {
	Course
	Lessons []Lesson `json:"lessons"`
}

// --- Request DTOs ---

// CourseRequest holds the fields a teacher submits to create or update a
// course.
type CourseRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// LessonRequest holds the fields for creating or updating a lesson. Content
// arrives as raw HTML and is sanitized by the service.
type LessonRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// ReorderRequest lists lesson ids in their new order. Every lesson of the
// course must appear exactly once.
type ReorderRequest struct {
	LessonIDs []string `json:"lesson_ids" form:"lesson_ids"`
}
