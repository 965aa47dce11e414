// Package main is the database seeding utility. It fills a LearnHub
// database with demo data: students, teachers, courses with lessons, and
// enrollments with random progress.
//
// Teacher and student accounts are created without a password hash, so
// password sign-in is impossible for them. The one admin account gets a
// known password for local exploration.
//
// Run with: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub/internal/config"
	"github.com/learnhub/learnhub/internal/database"
	"github.com/learnhub/learnhub/internal/modules/auth"
	"github.com/learnhub/learnhub/internal/modules/courses"
	"github.com/learnhub/learnhub/internal/modules/enrollments"
	"github.com/learnhub/learnhub/internal/sanitize"
)

const (
	studentCount = 20
	teacherCount = 3

	adminEmail    = "admin@learnhub.local"
	adminPassword = "Admin123!"
)

var firstNames = []string{
	"Alice", "Hugo", "Chloé", "Lucas", "Emma", "Louis", "Léa", "Jules",
	"Manon", "Arthur", "Camille", "Nathan", "Inès", "Tom", "Jade", "Théo",
	"Sarah", "Raphaël", "Zoé", "Gabriel", "Clara", "Adam", "Louise", "Paul",
}

var lastNames = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit",
	"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel",
	"Garcia", "David", "Bertrand", "Roux", "Vincent", "Fournier",
}

var courseTitles = []string{
	"Introduction to Algebra", "Modern Web Development", "World History",
	"Fundamentals of Physics", "Creative Writing", "Data Analysis Basics",
	"Digital Photography", "Music Theory", "Organic Chemistry",
	"Classical Literature",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.NewMariaDB(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to MariaDB", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db, "migrations"); err != nil {
		slog.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	users := auth.NewUserRepository(db)
	catalog := courses.NewCourseRepository(db)
	enrolls := enrollments.NewEnrollmentRepository(db)

	// --- Users ---
	students := make([]*auth.User, 0, studentCount)
	for i := 0; i < studentCount; i++ {
		student := newUser(fmt.Sprintf("student%d@learnhub.local", i+1), auth.RoleStudent)
		if err := users.Create(ctx, student); err != nil {
			fail("creating student", err)
		}
		students = append(students, student)
	}

	teachers := make([]*auth.User, 0, teacherCount)
	for i := 0; i < teacherCount; i++ {
		teacher := newUser(fmt.Sprintf("teacher%d@learnhub.local", i+1), auth.RoleTeacher)
		if err := users.Create(ctx, teacher); err != nil {
			fail("creating teacher", err)
		}
		teachers = append(teachers, teacher)
	}

	hash, err := auth.HashPassword(adminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		fail("hashing admin password", err)
	}
	admin := newUser(adminEmail, auth.RoleAdmin)
	admin.Name = "Site Admin"
	admin.PasswordHash = &hash
	if err := users.Create(ctx, admin); err != nil {
		fail("creating admin", err)
	}

	// --- Courses and lessons ---
	totalCourses, totalLessons, totalEnrollments := 0, 0, 0
	titleIdx := 0
	for _, teacher := range teachers {
		for n := rand.IntN(3) + 1; n > 0; n-- {
			title := courseTitles[titleIdx%len(courseTitles)]
			titleIdx++

			now := time.Now().UTC()
			course := &courses.Course{
				ID:          uuid.NewString(),
				Title:       title,
				Description: fmt.Sprintf("A demo course on %s, taught by %s.", title, teacher.Name),
				AuthorID:    teacher.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := catalog.CreateCourse(ctx, course); err != nil {
				fail("creating course", err)
			}
			totalCourses++

			lessonCount := rand.IntN(5) + 3
			for pos := 1; pos <= lessonCount; pos++ {
				lesson := &courses.Lesson{
					ID:       uuid.NewString(),
					CourseID: course.ID,
					Title:    fmt.Sprintf("Lesson %d", pos),
					Content: sanitize.HTML(fmt.Sprintf(
						"<h2>Lesson %d</h2><p>Part %d of %s.</p>", pos, pos, title)),
					Position:  pos,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := catalog.CreateLesson(ctx, lesson); err != nil {
					fail("creating lesson", err)
				}
				totalLessons++
			}

			// Enroll a random subset of students with random progress.
			for _, idx := range pickStudents(len(students), rand.IntN(11)+5) {
				enrollment := &enrollments.Enrollment{
					ID:        uuid.NewString(),
					StudentID: students[idx].ID,
					CourseID:  course.ID,
					Progress:  rand.IntN(101),
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := enrolls.Create(ctx, enrollment); err != nil {
					fail("creating enrollment", err)
				}
				totalEnrollments++
			}
		}
	}

	slog.Info("seeding complete",
		slog.Int("students", studentCount),
		slog.Int("teachers", teacherCount),
		slog.Int("courses", totalCourses),
		slog.Int("lessons", totalLessons),
		slog.Int("enrollments", totalEnrollments),
		slog.String("admin_email", adminEmail),
	)
}

// newUser builds a seed user with a random name and no password hash.
func newUser(email string, role auth.Role) *auth.User {
	now := time.Now().UTC()
	return &auth.User{
		ID:        uuid.NewString(),
		Name:      firstNames[rand.IntN(len(firstNames))] + " " + lastNames[rand.IntN(len(lastNames))],
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// pickStudents returns n distinct indexes into a pool of the given size.
func pickStudents(poolSize, n int) []int {
	if n > poolSize {
		n = poolSize
	}
	perm := rand.Perm(poolSize)
	return perm[:n]
}

func fail(action string, err error) {
	slog.Error(action, slog.Any("error", err))
	os.Exit(1)
}
