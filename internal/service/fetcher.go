package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/cache"
	"github.com/proftafla/exam-service/internal/domain"
	"github.com/proftafla/exam-service/internal/events"
)

// ScheduleSource fetches raw schedule text for a department id.
type ScheduleSource interface {
	FetchDepartment(ctx context.Context, departmentID int) (string, error)
}

// Fetcher returns raw upstream text for a department, serving from cache when possible.
type Fetcher struct {
	cache      cache.Gateway
	source     ScheduleSource
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewFetcher creates the fetcher. dispatcher may be nil.
func NewFetcher(gateway cache.Gateway, source ScheduleSource, dispatcher events.Dispatcher, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cache:      gateway,
		source:     source,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ResolveDepartment maps a slug to the upstream department id.
func (f *Fetcher) ResolveDepartment(slug string) (int, bool) {
	dept, ok := domain.DepartmentBySlug(slug)
	if !ok {
		return 0, false
	}
	return dept.ID, true
}

// CacheKey returns the cache key used for a department slug.
func (f *Fetcher) CacheKey(slug string) string {
	return f.cache.Key(slug)
}

// Retrieve returns the cached text under cacheKey, or fetches it and caches it.
// The cache lookup always precedes the network call. An empty cached body counts as a miss.
func (f *Fetcher) Retrieve(ctx context.Context, departmentID int, cacheKey string) (string, error) {
	start := time.Now()

	cached, ok, err := f.cache.Get(ctx, cacheKey)
	if err != nil {
		return "", err
	}
	if ok && cached != "" {
		f.logger.Debug("cache hit", zap.String("key", cacheKey))
		f.publish(ctx, departmentID, cacheKey, true, len(cached), time.Since(start))
		return cached, nil
	}

	text, err := f.source.FetchDepartment(ctx, departmentID)
	if err != nil {
		return "", err
	}

	if err := f.cache.Set(ctx, cacheKey, text); err != nil {
		return "", err
	}

	f.logger.Debug("fetched from upstream",
		zap.String("key", cacheKey),
		zap.Int("department_id", departmentID),
		zap.Int("bytes", len(text)))
	f.publish(ctx, departmentID, cacheKey, false, len(text), time.Since(start))
	return text, nil
}

func (f *Fetcher) publish(ctx context.Context, departmentID int, cacheKey string, hit bool, size int, took time.Duration) {
	if f.dispatcher == nil {
		return
	}
	err := f.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDepartmentRetrieved,
		Timestamp: time.Now(),
		Payload: events.DepartmentRetrievedPayload{
			DepartmentID: departmentID,
			CacheKey:     cacheKey,
			CacheHit:     hit,
			Bytes:        size,
			Duration:     took,
		},
	})
	if err != nil {
		f.logger.Warn("event handler failed", zap.String("event", string(events.EventDepartmentRetrieved)), zap.Error(err))
	}
}
