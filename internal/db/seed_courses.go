package db

import (
	"context"
	"time"

	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultCourses is the catalog inserted by the seeder.
func DefaultCourses() []course.Course {
	return []course.Course{
		{
			Title:       "Introduction to Programming",
			Description: "Learn programming basics using Python & JavaScript.",
			Code:        "CS101",
		},
		{
			Title:       "Data Structures & Algorithms",
			Description: "Learn arrays, linked lists, stacks, queues, trees, and more.",
			Code:        "CS201",
		},
		{
			Title:       "Web Development",
			Description: "HTML, CSS, JavaScript, Node.js, Express basics.",
			Code:        "WD301",
		},
		{
			Title:       "Database Systems",
			Description: "Learn SQL, NoSQL, MongoDB, indexing, ACID principles.",
			Code:        "DB401",
		},
		{
			Title:       "Cloud Computing",
			Description: "AWS, Azure, GCP basics, virtualization, Docker.",
			Code:        "CL501",
		},
	}
}

// SeedCourses inserts the default catalog. With reset it wipes the courses
// table first; otherwise it is a no-op when any course already exists.
func SeedCourses(ctx context.Context, pool *pgxpool.Pool, reset bool) (int, error) {
	if reset {
		_, err := pool.Exec(ctx, `DELETE FROM courses`)

		if err != nil {
			return 0, err
		}
	}

	var existing int

	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&existing)

	if err != nil {
		return 0, err
	}

	if existing > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	inserted := 0

	for i, c := range DefaultCourses() {
		// stagger created_at so the catalog lists in seed order
		at := now.Add(time.Duration(i) * time.Millisecond)

		_, err = pool.Exec(ctx,
			`INSERT INTO courses (id, title, description, code, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)
			`,
			uuid.NewString(), c.Title, c.Description, c.Code, at, at,
		)

		if err != nil {
			return inserted, err
		}

		inserted++
	}

	return inserted, nil
}
