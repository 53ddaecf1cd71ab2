package memory

import (
	"sync"
	"time"

	"github.com/toddkasper/outage-query/pkg/storage"
)

type checkpointStore struct {
	store map[string]time.Time
	sync.Mutex
}

func newCheckpointStore() *checkpointStore {
	return &checkpointStore{
		store: make(map[string]time.Time),
	}
}

func (s *checkpointStore) Read(name string) (time.Time, error) {
	s.Lock()
	defer s.Unlock()
	if v, ok := s.store[name]; ok {
		return v, nil
	}

	return time.Time{}, storage.ErrNotFound
}

func (s *checkpointStore) Write(name string, value time.Time) error {
	s.Lock()
	defer s.Unlock()
	s.store[name] = value.Round(time.Second).UTC()

	return nil
}

func (s *checkpointStore) CompareAndWrite(name string, expected, value time.Time) (bool, error) {
	s.Lock()
	defer s.Unlock()

	current, ok := s.store[name]
	if !ok {
		if !expected.IsZero() {
			return false, nil
		}
	} else if !current.Equal(expected.Round(time.Second).UTC()) {
		return false, nil
	}

	s.store[name] = value.Round(time.Second).UTC()

	return true, nil
}
