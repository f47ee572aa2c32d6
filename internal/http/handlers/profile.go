package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/coursehub/coursehub/internal/domain/enrollment"
	"github.com/coursehub/coursehub/internal/domain/user"
	"github.com/coursehub/coursehub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type UserGetter interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type EnrollmentStore interface {
	Enroll(ctx context.Context, userID, courseID string) error
	ListCoursesForUser(ctx context.Context, userID string) ([]course.Course, error)
}

type ProfileHandler struct {
	users       UserGetter
	enrollments EnrollmentStore
	log         *slog.Logger
}

func NewProfileHandler(users UserGetter, enrollments EnrollmentStore, log *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		users:       users,
		enrollments: enrollments,
		log:         log,
	}
}

// Me returns the caller's profile with enrolled course ids resolved into
// full course records.
func (h *ProfileHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "Invalid or expired token")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// token was valid but the user is gone (deleted out of band)
			RespondNotFound(ctx, "User not found")
			return
		}

		h.log.Error("load profile failed", "err", err)
		RespondInternal(ctx)
		return
	}

	courses, err := h.enrollments.ListCoursesForUser(cctx, u.ID)

	if err != nil {
		h.log.Error("resolve enrollments failed", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"name":            u.Name,
		"email":           u.Email,
		"enrolledCourses": courses,
	})
}

// Enroll adds one course to the caller's set. The catalog is not consulted
// here, only the user's own list guards the insert.
func (h *ProfileHandler) Enroll(ctx *gin.Context) {
	var req enrollment.EnrollRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, "courseId is required")
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "Invalid or expired token")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		h.log.Error("load user failed", "err", err)
		RespondInternal(ctx)
		return
	}

	err = h.enrollments.Enroll(cctx, userID, req.CourseID)

	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrAlreadyEnrolled):
			RespondBadRequest(ctx, "Already enrolled")
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		default:
			h.log.Error("enroll failed", "err", err)
			RespondInternal(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Successfully enrolled",
	})
}
