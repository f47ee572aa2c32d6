package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/coursehub/coursehub/internal/domain/enrollment"
	"github.com/coursehub/coursehub/internal/domain/user"
	"github.com/coursehub/coursehub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEnrollmentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EnrollmentsRepo {
	return &EnrollmentsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *EnrollmentsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Enroll adds the course to the user's set in a single statement.
// ON CONFLICT DO NOTHING on the (user_id, course_id) primary key makes the
// add-to-set-if-absent atomic, so two concurrent enrolls cannot both win.
//
// Note the course id is not checked against the catalog here.
func (r *EnrollmentsRepo) Enroll(ctx context.Context, userID, courseID string) error {
	var tag pgconn.CommandTag

	err := r.observe("enrollments.enroll", func() error {
		var e error
		tag, e = r.pool.Exec(ctx,
			`INSERT INTO enrollments (user_id, course_id, created_at)
			VALUES ($1,$2,$3)
			ON CONFLICT DO NOTHING`,
			userID, courseID, time.Now().UTC(),
		)
		return e
	})

	if err != nil {
		var pgErr *pgconn.PgError

		// 23503: user row vanished under us
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return user.ErrNotFound
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return enrollment.ErrAlreadyEnrolled
	}

	return nil
}

// ListCoursesForUser resolves the user's enrolled course ids into full
// course records. This is the explicit join behind the dashboard; ids that
// no longer resolve to a catalog row simply drop out of the result.
func (r *EnrollmentsRepo) ListCoursesForUser(ctx context.Context, userID string) ([]course.Course, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("enrollments.list_courses_for_user", func() error {
		rows, err = r.pool.Query(ctx,
			`SELECT c.id, c.title, c.description, c.code, c.created_at, c.updated_at
			FROM enrollments e
			JOIN courses c ON c.id = e.course_id
			WHERE e.user_id = $1
			ORDER BY e.created_at ASC, c.id ASC`,
			userID,
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
