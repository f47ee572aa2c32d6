package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/coursehub/coursehub/internal/domain/enrollment"
)

type EnrollmentsRepo struct {
	mu      sync.Mutex
	courses *CoursesRepo
	byUser  map[string]map[string]time.Time // userID -> courseID -> enrolled at
}

func NewEnrollmentsRepo(courses *CoursesRepo) *EnrollmentsRepo {
	return &EnrollmentsRepo{
		courses: courses,
		byUser:  make(map[string]map[string]time.Time),
	}
}

// Enroll is add-to-set-if-absent under one lock, mirroring the single
// atomic insert the postgres repo does.
func (r *EnrollmentsRepo) Enroll(ctx context.Context, userID, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.byUser[userID]

	if !ok {
		set = make(map[string]time.Time)
		r.byUser[userID] = set
	}

	_, enrolled := set[courseID]

	if enrolled {
		return enrollment.ErrAlreadyEnrolled
	}

	set[courseID] = time.Now().UTC()

	return nil
}

// ListCoursesForUser resolves enrolled ids against the catalog. Ids with no
// catalog entry are dropped, same as the SQL join.
func (r *EnrollmentsRepo) ListCoursesForUser(ctx context.Context, userID string) ([]course.Course, error) {
	r.mu.Lock()
	set := make(map[string]time.Time, len(r.byUser[userID]))
	for id, at := range r.byUser[userID] {
		set[id] = at
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(set))

	for id := range set {
		ids = append(ids, id)
	}

	// enrollment order, same as the postgres repo
	sort.Slice(ids, func(i, j int) bool {
		if !set[ids[i]].Equal(set[ids[j]]) {
			return set[ids[i]].Before(set[ids[j]])
		}
		return ids[i] < ids[j]
	})

	out := make([]course.Course, 0, len(ids))

	for _, id := range ids {
		c, err := r.courses.GetByID(ctx, id)

		if err != nil {
			continue
		}

		out = append(out, c)
	}

	return out, nil
}
