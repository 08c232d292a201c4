// Package bootstrap wires external dependencies during process startup.
package bootstrap

import (
	"fmt"
	"strings"

	"linkup/internal/cache"
	"linkup/internal/config"
	"linkup/internal/database"
	"linkup/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoIdentities bool
	SeedGenerated      bool
}

// InitRuntime connects to DB and Redis and optionally runs seeding. Demo
// identities are only ever seeded outside production; generated data is
// opt-in on top of that.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May result in a nil client if unreachable; callers degrade gracefully.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoIdentities && strings.EqualFold(cfg.Env, "development") {
		if err := seed.DemoIdentities(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo identities: %w", err)
		}
		if opts.SeedGenerated {
			if err := seed.Run(db, seed.Options{}); err != nil {
				return nil, nil, fmt.Errorf("failed to seed generated data: %w", err)
			}
		}
	}

	return db, r, nil
}
