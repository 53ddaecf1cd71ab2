package memory

import "github.com/toddkasper/outage-query/pkg/storage"

// Store contains all memory-based sub-stores for managing the persistent models
type store struct {
	mentions    *mentionStore
	checkpoints *checkpointStore
}

// NewStore creates a new memory-based Storage interface
func NewStore() storage.Interface {
	return &store{
		mentions:    newMentionStore(),
		checkpoints: newCheckpointStore(),
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
