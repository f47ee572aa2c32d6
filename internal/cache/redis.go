package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coursehub/coursehub/internal/domain/course"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// RedisCatalog stores the serialized course list under a single key.
// Failures degrade to a cache miss; the catalog always has the DB behind it.

type RedisCatalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalog(rdb *redis.Client, ttl time.Duration) *RedisCatalog {
	return &RedisCatalog{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *RedisCatalog) Get(ctx context.Context) ([]course.Course, bool) {
	raw, err := r.rdb.Get(ctx, catalogKey).Bytes()

	if err != nil {
		return nil, false
	}

	var courses []course.Course

	err = json.Unmarshal(raw, &courses)

	if err != nil {
		return nil, false
	}

	return courses, true
}

func (r *RedisCatalog) Set(ctx context.Context, courses []course.Course) {
	raw, err := json.Marshal(courses)

	if err != nil {
		return
	}

	_ = r.rdb.Set(ctx, catalogKey, raw, r.ttl).Err()
}

func (r *RedisCatalog) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
