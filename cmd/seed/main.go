// Command seed loads fixture or random data into the Quill database.
package main

import (
	"context"
	"flag"
	"log"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/seed"
	"quill/internal/service"
)

func main() {
	clean := flag.Bool("clean", false, "Delete all comments, posts and users first")
	fixture := flag.Bool("fixture", true, "Load the fixture dataset (replaces existing data)")
	randomUsers := flag.Int("random-users", 0, "Number of random users to add")
	randomPosts := flag.Int("random-posts", 0, "Number of random posts to add")
	randSeed := flag.Int64("rand-seed", 0, "Seed for the random generator (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.InitLogger(cfg.Env, cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	// clearing through the cache drops stale user entries held by running servers
	rdb := cache.Connect(cfg.RedisURL)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	uow := repository.NewTxUnitOfWork(db, cache.New(rdb))
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	seeder := seed.NewSeeder(uow, hasher)

	if *clean && !*fixture {
		if err := seeder.Clear(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *fixture {
		ds, err := seeder.Seed(ctx)
		if err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
		log.Printf("Fixture loaded: %d users, %d posts, %d comments", len(ds.Users), len(ds.Posts), len(ds.Comments))
	}

	if *randomUsers > 0 || *randomPosts > 0 {
		ds, err := seed.NewFactory(uow, hasher, *randSeed).Random(ctx, *randomUsers, *randomPosts)
		if err != nil {
			log.Fatalf("Random seeding failed: %v", err)
		}
		log.Printf("Random data added: %d users, %d posts, %d comments", len(ds.Users), len(ds.Posts), len(ds.Comments))
	}

	log.Printf("All seeded users have the password: %s", seed.FixturePassword)
}
