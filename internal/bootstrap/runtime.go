// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/seed"
	"quill/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFixture loads the fixture dataset when the store has no users.
	SeedFixture bool
}

// InitRuntime connects to the database and Redis and optionally seeds.
// The Redis client is nil when Redis is not reachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	r := cache.Connect(cfg.RedisURL)

	if opts.SeedFixture {
		if err := seedIfEmpty(ctx, cfg, db, r); err != nil {
			_ = database.Close(db)
			if r != nil {
				_ = r.Close()
			}
			return nil, nil, fmt.Errorf("failed to seed fixture data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(ctx context.Context, cfg *config.Config, db *gorm.DB, r *redis.Client) error {
	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		middleware.Logger.InfoContext(ctx, "skipping fixture seed, store is not empty", slog.Int64("users", users))
		return nil
	}

	uow := repository.NewTxUnitOfWork(db, cache.New(r))
	_, err := seed.NewSeeder(uow, service.NewBcryptHasher(cfg.BcryptCost)).Seed(ctx)
	return err
}
