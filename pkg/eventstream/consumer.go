// Package eventstream defines the storage-notification contract that drives
// document ingestion.
//
// Blob storage emits an object-finalized event for every new upload. A
// Consumer implementation delivers those events, one at a time, to a Handler
// (the ingestion pipeline). Delivery semantics are at-least-once: consumers
// must only acknowledge an event after the handler returns, so a crash
// mid-ingestion redelivers the event. Handler errors are terminal — the
// pipeline reports and logs them, and no retry is scheduled here.
package eventstream

import "context"

// Handler processes a single object-finalized event.
type Handler func(ctx context.Context, event *ObjectFinalizedEvent) error

// Consumer delivers object-finalized events to a handler.
type Consumer interface {
	// Run consumes events until ctx is cancelled, invoking handler for
	// each. Returns the first transport error, or nil on clean shutdown.
	Run(ctx context.Context, handler Handler) error

	// Close releases consumer resources.
	Close() error
}
