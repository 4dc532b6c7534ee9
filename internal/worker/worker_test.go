package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/domain"
	"github.com/proftafla/exam-service/internal/events"
	"github.com/proftafla/exam-service/internal/observability"
)

type countingWarmer struct {
	mu    sync.Mutex
	slugs map[string]int
}

func (w *countingWarmer) GetTests(_ context.Context, slug string) ([]domain.ExamGroup, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slugs[slug]++
	return nil, nil
}

func (w *countingWarmer) count(slug string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slugs[slug]
}

func TestCacheWarmerVisitsEveryDepartment(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	warmer := &countingWarmer{slugs: map[string]int{}}
	StartCacheWarmer(ctx, warmer, time.Hour, zap.NewNop())

	require.Eventually(t, func() bool {
		for _, dept := range domain.Departments() {
			if warmer.count(dept.Slug) == 0 {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)
}

func TestCacheWarmerDisabled(t *testing.T) {
	warmer := &countingWarmer{slugs: map[string]int{}}
	StartCacheWarmer(context.Background(), warmer, 0, zap.NewNop())

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, warmer.count("hugvisindasvid"))
}

func TestEventRecorderFeedsMetrics(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	StartEventRecorder(dispatcher, metrics, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:    events.EventDepartmentRetrieved,
		Payload: events.DepartmentRetrievedPayload{CacheKey: "ugla:hugvisindasvid", CacheHit: false, Duration: 5 * time.Millisecond},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:    events.EventDepartmentRetrieved,
		Payload: events.DepartmentRetrievedPayload{CacheKey: "ugla:hugvisindasvid", CacheHit: true},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventCacheCleared, Payload: events.CacheClearedPayload{Cleared: true}}))

	snap := metrics.Snapshot()
	require.Equal(t, int64(1), snap.CacheHits)
	require.Equal(t, int64(1), snap.CacheMisses)
	require.Equal(t, int64(1), snap.CacheFlushes)
	require.Equal(t, int64(2), snap.Retrievals["ugla:hugvisindasvid"])
}
