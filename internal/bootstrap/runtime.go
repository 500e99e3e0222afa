// Package bootstrap establishes runtime dependencies shared by the server
// and the development tooling.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"memeverse/internal/cache"
	"memeverse/internal/config"
	"memeverse/internal/database"
	"memeverse/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates the interaction store with demo content.
	// Only honored in development environments.
	SeedDemoData bool
	// DemoUploads is the upload count for demo seeding (0 uses a default).
	DemoUploads int
}

const defaultDemoUploads = 20

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The Redis client may be nil when the server is unreachable; callers run
// uncached in that case.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData && strings.EqualFold(cfg.Env, "development") {
		uploads := opts.DemoUploads
		if uploads <= 0 {
			uploads = defaultDemoUploads
		}
		s := seed.NewSeeder(db, 0)
		if err := s.Run(context.Background(), seed.Options{
			NumUploads:      uploads,
			CommentsPerMeme: 5,
			ShouldClean:     true,
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
