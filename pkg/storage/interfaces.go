package storage

import (
	"time"

	"github.com/toddkasper/outage-query/pkg/model"
)

// Interface is implemented by the storage
type Interface interface {
	Mentions() MentionStore
	Checkpoints() CheckpointStore
}

// MentionStore is responsible for managing the Mention model
type MentionStore interface {
	// Upsert writes the mention keyed by its ID. Writing the same mention
	// twice leaves the store unchanged.
	Upsert(m *model.Mention) error
	// ScanRange returns all mentions with min <= CreatedAt <= max.
	ScanRange(min, max time.Time) ([]model.Mention, error)
	Count() (int, error)
}

// CheckpointStore manages named timestamps, such as the time the last
// notification was sent.
type CheckpointStore interface {
	// Read returns the checkpoint value or ErrNotFound if it was never written.
	Read(name string) (time.Time, error)
	Write(name string, value time.Time) error
	// CompareAndWrite updates the checkpoint only if its current value still
	// equals expected. A zero expected value means the checkpoint must not
	// exist yet. Returns false when another writer got there first.
	CompareAndWrite(name string, expected, value time.Time) (bool, error)
}
