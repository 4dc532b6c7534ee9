package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/domain"
)

// Warmer is the part of the exam service the cache warmer drives.
type Warmer interface {
	GetTests(ctx context.Context, slug string) ([]domain.ExamGroup, error)
}

// StartCacheWarmer loads every department once immediately and then on each tick,
// so requests are served from cache. It stops when ctx is done.
func StartCacheWarmer(ctx context.Context, svc Warmer, interval time.Duration, logger *zap.Logger) {
	if svc == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			warmOnce(ctx, svc, logger)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func warmOnce(ctx context.Context, svc Warmer, logger *zap.Logger) {
	for _, dept := range domain.Departments() {
		if ctx.Err() != nil {
			return
		}
		if _, err := svc.GetTests(ctx, dept.Slug); err != nil {
			logger.Warn("cache warm failed", zap.String("slug", dept.Slug), zap.Error(err))
		}
	}
}
