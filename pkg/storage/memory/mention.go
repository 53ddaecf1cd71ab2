package memory

import (
	"sync"
	"time"

	"github.com/toddkasper/outage-query/pkg/model"
)

type mentionStore struct {
	store map[string]model.Mention
	sync.RWMutex
}

func newMentionStore() *mentionStore {
	return &mentionStore{
		store: make(map[string]model.Mention),
	}
}

func (s *mentionStore) Upsert(m *model.Mention) error {
	s.Lock()
	defer s.Unlock()

	s.store[m.ID] = model.Mention{
		ID:        m.ID,
		CreatedAt: m.CreatedAt.Round(time.Second).UTC(),
	}

	return nil
}

func (s *mentionStore) ScanRange(min, max time.Time) ([]model.Mention, error) {
	s.RLock()
	defer s.RUnlock()

	models := make([]model.Mention, 0)
	for _, m := range s.store {
		if !m.CreatedAt.Before(min) && !m.CreatedAt.After(max) {
			models = append(models, m)
		}
	}

	return models, nil
}

func (s *mentionStore) Count() (int, error) {
	s.RLock()
	defer s.RUnlock()
	return len(s.store), nil
}
