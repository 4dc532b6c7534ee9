package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentRetrieved EventType = "department_retrieved"
	EventCacheCleared        EventType = "cache_cleared"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DepartmentRetrievedPayload payload.
type DepartmentRetrievedPayload struct {
	DepartmentID int           `json:"department_id"`
	CacheKey     string        `json:"cache_key"`
	CacheHit     bool          `json:"cache_hit"`
	Bytes        int           `json:"bytes"`
	Duration     time.Duration `json:"duration"`
}

// CacheClearedPayload payload.
type CacheClearedPayload struct {
	Cleared bool `json:"cleared"`
}
