package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/events"
	"github.com/proftafla/exam-service/internal/observability"
)

// StartEventRecorder subscribes metric and log handlers to service events.
func StartEventRecorder(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventDepartmentRetrieved, func(_ context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.DepartmentRetrievedPayload)
		if !ok {
			return nil
		}
		metrics.RecordRetrieval(payload.CacheKey, payload.CacheHit, payload.Duration)
		return nil
	})
	dispatcher.Subscribe(events.EventCacheCleared, func(_ context.Context, event events.Event) error {
		metrics.RecordCacheFlush()
		logger.Info("CacheCleared", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
		return nil
	})
}
