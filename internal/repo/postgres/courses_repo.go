package postgres

import (
	"context"
	"errors"

	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/coursehub/coursehub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCoursesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CoursesRepo {
	return &CoursesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *CoursesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// List returns the full catalog. An empty catalog is an empty slice, not an error.
func (r *CoursesRepo) List(ctx context.Context) ([]course.Course, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("courses.list", func() error {
		rows, err = r.pool.Query(ctx,
			`SELECT id, title, description, code, created_at, updated_at
			FROM courses
			ORDER BY created_at ASC, id ASC`,
		)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]course.Course, 0)

	for rows.Next() {
		var c course.Course

		err = rows.Scan(&c.ID, &c.Title, &c.Description, &c.Code, &c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CoursesRepo) GetByID(ctx context.Context, id string) (course.Course, error) {
	var c course.Course

	err := r.observe("courses.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, description, code, created_at, updated_at
			FROM courses
			WHERE id = $1`, id,
		).Scan(&c.ID, &c.Title, &c.Description, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}

		return course.Course{}, err
	}

	return c, nil
}
