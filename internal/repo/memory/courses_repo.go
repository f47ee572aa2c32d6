package memory

import (
	"context"
	"sync"
	"time"

	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/google/uuid"
)

type CoursesRepo struct {
	mu    sync.RWMutex
	items []course.Course // insertion order, matches the seeded catalog
}

func NewCoursesRepo() *CoursesRepo {
	return &CoursesRepo{
		items: make([]course.Course, 0),
	}
}

func (r *CoursesRepo) Create(ctx context.Context, title, description, code string) (course.Course, error) {
	now := time.Now().UTC()

	c := course.Course{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Code:        code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.items = append(r.items, c)
	r.mu.Unlock()

	return c, nil
}

func (r *CoursesRepo) List(ctx context.Context) ([]course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]course.Course, len(r.items))
	copy(out, r.items)

	return out, nil
}

func (r *CoursesRepo) GetByID(ctx context.Context, id string) (course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}

	return course.Course{}, course.ErrNotFound
}
