package eventstream

import "time"

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeObjectFinalized is emitted by blob storage when a new
	// object has been fully written.
	EventTypeObjectFinalized = "storage.object.finalized"
)

// ObjectFinalizedEvent is a transport-neutral notification that a new object
// landed in blob storage. It carries just enough to drive ingestion; the
// object content itself is fetched from the store.
type ObjectFinalizedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`

	// Bucket is the storage bucket the object was written to.
	Bucket string `json:"bucket"`

	// Name is the object path within the bucket.
	Name string `json:"name"`

	// ContentType is the MIME type reported by the store, if any.
	ContentType string `json:"content_type,omitempty"`
}
