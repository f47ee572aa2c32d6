package http

import (
	"log/slog"
	gohttp "net/http"

	"github.com/coursehub/coursehub/internal/auth"
	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/http/handlers"
	"github.com/coursehub/coursehub/internal/http/middlewares"
	"github.com/coursehub/coursehub/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// UserStore is everything the handlers need from the credential store.
// Both the postgres and the in-memory repos satisfy it.
type UserStore interface {
	handlers.UserReader
	handlers.UserWriter
	handlers.UserGetter
}

// Deps carries the process-wide handles. Everything is injected here at
// startup, nothing reaches for globals.
type Deps struct {
	Users       UserStore
	Courses     handlers.CourseLister
	Enrollments handlers.EnrollmentStore
	JWT         *auth.Manager
	Catalog     handlers.CatalogCache
	Prom        *observability.Prom
	Metrics     gohttp.Handler
	DBPing      func() error
	CachePing   func() error
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware(cfg.ServiceName))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health + metrics

	h := handlers.NewHealthHandler(deps.DBPing, deps.CachePing)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	// wire up handlers

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Users, deps.JWT, log)
	coursesHandler := handlers.NewCoursesHandler(deps.Courses, deps.Catalog, log)
	profileHandler := handlers.NewProfileHandler(deps.Users, deps.Enrollments, log)

	authMW := middlewares.NewAuthMiddleware(deps.JWT)
	authLimiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow())
	authRL := authLimiter.RateLimiterMiddleware(middlewares.KeyByIP)

	api := r.Group("/api")

	api.POST("/register", authRL, authHandler.Register)
	api.POST("/login", authRL, authHandler.Login)
	api.GET("/courses", coursesHandler.List)

	authed := api.Group("")
	authed.Use(authMW.RequireAuth())

	authed.POST("/enroll", profileHandler.Enroll)
	authed.GET("/me", profileHandler.Me)

	return r
}
