// Package scheduler runs background maintenance jobs
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CacheWarmer periodically refreshes the per-category candidate-screen
// cache so single-category allocation requests hit warm entries, and
// reports storage health. Multi-category cache keys are left to expire
// on their own TTL.
type CacheWarmer struct {
	categoryRepo repository.CategoryRepository
	screenRepo   repository.ScreenRepository
	rc           *redis.Client
	db           *gorm.DB
	cachePrefix  string
	interval     time.Duration
	logger       *log.Logger
}

// NewCacheWarmer creates a new cache warmer instance
func NewCacheWarmer(
	categoryRepo repository.CategoryRepository,
	screenRepo repository.ScreenRepository,
	rc *redis.Client,
	db *gorm.DB,
	cachePrefix string,
	interval time.Duration,
	logger *log.Logger,
) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CacheWarmer{
		categoryRepo: categoryRepo,
		screenRepo:   screenRepo,
		rc:           rc,
		db:           db,
		cachePrefix:  cachePrefix,
		interval:     interval,
		logger:       logger,
	}
}

// Start launches the warmer loop in a background goroutine and returns
// a stop function.
func (w *CacheWarmer) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (w *CacheWarmer) runOnce(ctx context.Context) {
	if err := w.checkHealth(ctx); err != nil {
		w.logger.Printf("cache warmer: health check failed: %v", err)
		return
	}

	categories, err := w.categoryRepo.All(ctx)
	if err != nil {
		w.logger.Printf("cache warmer: category listing failed: %v", err)
		return
	}

	warmed := 0
	for _, category := range categories {
		if ctx.Err() != nil {
			return
		}
		if err := w.warmCategory(ctx, category.ID); err != nil {
			w.logger.Printf("cache warmer: category %s failed: %v", category.ID, err)
			continue
		}
		warmed++
	}

	if warmed > 0 {
		w.logger.Printf("cache warmer: refreshed %d category entries", warmed)
	}
}

func (w *CacheWarmer) warmCategory(ctx context.Context, categoryID uuid.UUID) error {
	screens, err := w.screenRepo.ByCategoryIDs(ctx, []uuid.UUID{categoryID})
	if err != nil {
		return err
	}

	payload, err := json.Marshal(screens)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%scandidates:%s", w.cachePrefix, categoryID.String())
	return w.rc.Set(ctx, key, payload, utils.CandidateScreensCacheTTL).Err()
}

// checkHealth pings redis and the database. A dead dependency makes
// warming pointless, so the cycle is skipped.
func (w *CacheWarmer) checkHealth(ctx context.Context) error {
	if err := w.rc.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	sqlDB, err := w.db.DB()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}
