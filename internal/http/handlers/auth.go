package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coursehub/coursehub/internal/auth"
	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/domain/user"
	"github.com/coursehub/coursehub/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, name, email, passwordHash string) (user.User, error)
}

type AuthHandler struct {
	readers UserReader
	writers UserWriter
	jwt     *auth.Manager
	log     *slog.Logger
}

func NewAuthHandler(readers UserReader, writers UserWriter, jwtManager *auth.Manager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		readers: readers,
		writers: writers,
		jwt:     jwtManager,
		log:     log,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		h.log.Error("hash password failed", "err", err)
		RespondInternal(ctx)
		return
	}

	u, err := h.writers.Create(cctx, req.Name, req.Email, hash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "Email already exists")
			return
		}

		h.log.Error("create user failed", "err", err)
		RespondInternal(ctx)
		return
	}

	token, err := h.jwt.Issue(u.ID, u.Email)

	if err != nil {
		h.log.Error("issue token failed", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.readers.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// identical message for unknown email and wrong password,
			// so a caller cannot probe which emails exist
			RespondBadRequest(ctx, "Invalid email or password")
			return
		}

		h.log.Error("lookup user failed", "err", err)
		RespondInternal(ctx)
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondBadRequest(ctx, "Invalid email or password")
		return
	}

	token, err := h.jwt.Issue(foundUser.ID, foundUser.Email)

	if err != nil {
		h.log.Error("issue token failed", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
