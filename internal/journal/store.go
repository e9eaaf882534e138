package journal

import (
	"context"
	"time"
)

// Store persists and retrieves journal events.
type Store interface {
	// Append adds a new event to the store.
	Append(ctx context.Context, runID, eventType string, payload []byte, metadata map[string]string) error

	// ByRun retrieves all events of one run in append order.
	ByRun(ctx context.Context, runID string) ([]Event, error)

	// Range retrieves events within a time range in append order.
	Range(ctx context.Context, start, end time.Time) ([]Event, error)

	// Close releases the store.
	Close() error
}
