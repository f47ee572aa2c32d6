package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/gin-gonic/gin"
)

type CourseLister interface {
	List(ctx context.Context) ([]course.Course, error)
}

// CatalogCache sits in front of the catalog reads. Both the redis and the
// in-memory implementation satisfy it.
type CatalogCache interface {
	Get(ctx context.Context) ([]course.Course, bool)
	Set(ctx context.Context, courses []course.Course)
}

type CoursesHandler struct {
	repo  CourseLister
	cache CatalogCache
	log   *slog.Logger
}

func NewCoursesHandler(repo CourseLister, cache CatalogCache, log *slog.Logger) *CoursesHandler {
	return &CoursesHandler{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List returns the full catalog as a bare JSON array. An empty catalog is
// a 200 with [].
func (h *CoursesHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.cache != nil {
		if courses, ok := h.cache.Get(cctx); ok {
			RespondJSONWithETag(ctx, http.StatusOK, courses)
			return
		}
	}

	courses, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("list courses failed", "err", err)
		RespondInternal(ctx)
		return
	}

	if h.cache != nil {
		h.cache.Set(cctx, courses)
	}

	RespondJSONWithETag(ctx, http.StatusOK, courses)
}
