package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coursehub/coursehub/internal/auth"
	"github.com/coursehub/coursehub/internal/cache"
	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/db"
	httpx "github.com/coursehub/coursehub/internal/http"
	"github.com/coursehub/coursehub/internal/observability"
	"github.com/coursehub/coursehub/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// tracing is optional, only wired when an endpoint is configured
	if cfg.OTELEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), cfg.ServiceName, cfg.OTELEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// database
	pool, err := db.NewPool(context.Background(), cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	ctx, cancel := config.WithTimeout(10 * time.Second)

	err = db.EnsureSchema(ctx, pool)

	cancel()

	if err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	// metrics
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	coursesRepo := postgres.NewCoursesRepo(pool, prom)
	enrollmentsRepo := postgres.NewEnrollmentsRepo(pool, prom)

	// session tokens
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())

	deps := httpx.Deps{
		Users:       usersRepo,
		Courses:     coursesRepo,
		Enrollments: enrollmentsRepo,
		JWT:         jwtManager,
		Prom:        prom,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		DBPing: func() error {
			pctx, pcancel := config.WithTimeout(1 * time.Second)
			defer pcancel()

			return pool.Ping(pctx)
		},
	}

	// catalog cache: redis when configured, process-local otherwise
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		defer rdb.Close()

		catalog := cache.NewRedisCatalog(rdb, cfg.CatalogCacheTTL())

		deps.Catalog = catalog
		deps.CachePing = func() error {
			pctx, pcancel := config.WithTimeout(1 * time.Second)
			defer pcancel()

			return catalog.Ping(pctx)
		}
	} else {
		deps.Catalog = cache.NewMemoryCatalog(cfg.CatalogCacheTTL())
	}

	router := httpx.NewRouter(log, cfg, deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctxTimeOut := 10 * time.Second

		sctx, scancel := config.WithTimeout(ctxTimeOut)

		defer scancel()

		err := srv.Shutdown(sctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
