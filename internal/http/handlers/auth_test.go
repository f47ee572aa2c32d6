package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coursehub/coursehub/internal/auth"
	"github.com/coursehub/coursehub/internal/domain/user"
	"github.com/coursehub/coursehub/internal/http/handlers"
	"github.com/coursehub/coursehub/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWT() *auth.Manager {
	return auth.NewManager("test-secret-key", 7*24*time.Hour)
}

// Fake implementations of the handlers user store interfaces

type fakeUsersRepo struct {
	createFn     func(ctx context.Context, name, email, passwordHash string) (user.User, error)
	getByEmailFn func(ctx context.Context, email string) (user.User, error)
	getByIDFn    func(ctx context.Context, id string) (user.User, error)
}

func (f *fakeUsersRepo) Create(ctx context.Context, name, email, passwordHash string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, name, email, passwordHash)
	}

	return user.User{}, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}

	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}

	return user.User{}, user.ErrNotFound
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doJSON(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		repoSetUp   func(*fakeUsersRepo)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "success",
			body: `{"name":"Alice","email":"a@x.com","password":"pw123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					return user.User{
						ID:           uuid.NewString(),
						Name:         name,
						Email:        email,
						PasswordHash: passwordHash,
					}, nil
				}
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing fields",
			body:        `{"email":"a@x.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing fields",
		},
		{
			name:        "empty strings count as missing",
			body:        `{"name":"","email":"a@x.com","password":""}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing fields",
		},
		{
			name: "email taken",
			body: `{"name":"Alice","email":"a@x.com","password":"pw123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					return user.User{}, user.ErrEmailTaken
				}
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Email already exists",
		},
		{
			name: "storage failure",
			body: `{"name":"Alice","email":"a@x.com","password":"pw123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					return user.User{}, errors.New("boom")
				}
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}

			if tc.repoSetUp != nil {
				tc.repoSetUp(repo)
			}

			h := handlers.NewAuthHandler(repo, repo, testJWT(), testLogger())
			r := setupRouter(http.MethodPost, "/api/register", h.Register)

			w := doJSON(r, http.MethodPost, "/api/register", tc.body, nil)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantMessage != "" {
				var resp messageResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Message != tc.wantMessage {
					t.Fatalf("got message %q, want %q", resp.Message, tc.wantMessage)
				}
			}
		})
	}
}

func TestRegisterHandler_TokenEmbedsEmail(t *testing.T) {
	repo := &fakeUsersRepo{
		createFn: func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
			return user.User{ID: "u-1", Name: name, Email: email}, nil
		},
	}

	jwtManager := testJWT()
	h := handlers.NewAuthHandler(repo, repo, jwtManager, testLogger())
	r := setupRouter(http.MethodPost, "/api/register", h.Register)

	w := doJSON(r, http.MethodPost, "/api/register", `{"name":"Alice","email":"a@x.com","password":"pw123"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	claims, err := jwtManager.Verify(resp.Token)

	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}

	if claims.Email != "a@x.com" {
		t.Fatalf("token email %q, want %q", claims.Email, "a@x.com")
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("pw123")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	alice := user.User{ID: "u-1", Name: "Alice", Email: "a@x.com", PasswordHash: hash}

	lookup := func(ctx context.Context, email string) (user.User, error) {
		if email == alice.Email {
			return alice, nil
		}
		return user.User{}, user.ErrNotFound
	}

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "success",
			body:       `{"email":"a@x.com","password":"pw123"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing fields",
			body:        `{"email":"a@x.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing fields",
		},
		{
			name:        "unknown email",
			body:        `{"email":"nobody@x.com","password":"pw123"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "wrong password",
			body:        `{"email":"a@x.com","password":"nope"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid email or password",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeUsersRepo{getByEmailFn: lookup}

			h := handlers.NewAuthHandler(repo, repo, testJWT(), testLogger())
			r := setupRouter(http.MethodPost, "/api/login", h.Login)

			w := doJSON(r, http.MethodPost, "/api/login", tc.body, nil)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantMessage != "" {
				var resp messageResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Message != tc.wantMessage {
					t.Fatalf("got message %q, want %q", resp.Message, tc.wantMessage)
				}
			}
		})
	}
}

// login must not reveal whether the email or the password was wrong

func TestLoginHandler_EnumerationResistance(t *testing.T) {
	hash, _ := security.HashPassword("pw123")

	repo := &fakeUsersRepo{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			if email == "real@x.com" {
				return user.User{ID: "u-1", Email: email, PasswordHash: hash}, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}

	h := handlers.NewAuthHandler(repo, repo, testJWT(), testLogger())
	r := setupRouter(http.MethodPost, "/api/login", h.Login)

	wBadPass := doJSON(r, http.MethodPost, "/api/login", `{"email":"real@x.com","password":"wrong"}`, nil)
	wNoUser := doJSON(r, http.MethodPost, "/api/login", `{"email":"fake@x.com","password":"wrong"}`, nil)

	if wBadPass.Code != wNoUser.Code {
		t.Fatalf("status differs: %d vs %d", wBadPass.Code, wNoUser.Code)
	}

	if wBadPass.Body.String() != wNoUser.Body.String() {
		t.Fatalf("bodies differ: %s vs %s", wBadPass.Body.String(), wNoUser.Body.String())
	}
}
