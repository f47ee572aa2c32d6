package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/db"
)

// Seeds the course catalog with the default courses. Safe to run more than
// once; pass -reset to wipe the catalog and start over.

func main() {
	reset := flag.Bool("reset", false, "delete existing courses before seeding")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	pool, err := db.NewPool(ctx, cfg.DBURL)

	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	defer pool.Close()

	err = db.EnsureSchema(ctx, pool)

	if err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	inserted, err := db.SeedCourses(ctx, pool, *reset)

	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	if inserted == 0 {
		log.Println("catalog already seeded, nothing to do")
		return
	}

	log.Printf("seeded %d courses", inserted)
}
