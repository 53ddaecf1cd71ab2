package postgres

import (
	"github.com/jmoiron/sqlx"
	"github.com/toddkasper/outage-query/pkg/storage"
)

// store contains all PostgreSQL based sub-stores for managing the models
type store struct {
	mentions    *mentionStore
	checkpoints *checkpointStore
}

// NewStore creates a new PostgreSQL based Storage interface
func NewStore(db *sqlx.DB) storage.Interface {
	return &store{
		mentions:    newMentionStore(db),
		checkpoints: newCheckpointStore(db),
	}
}

// Mentions returns a sub-store for managing the Mention model
func (s *store) Mentions() storage.MentionStore {
	return s.mentions
}

// Checkpoints returns a sub-store for managing named checkpoints
func (s *store) Checkpoints() storage.CheckpointStore {
	return s.checkpoints
}
