package store

import (
	"context"
	"sync"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/storage"
)

// recordingStore is an in-memory storage.Store that counts operations and
// can be told to fail, so tests can assert on the write-through protocol.
type recordingStore struct {
	mu     sync.Mutex
	values map[string]string

	gets    int
	sets    int
	removes int

	getErr error
	setErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]string)}
}

func (s *recordingStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return "", s.getErr
	}
	value, exists := s.values[key]
	if !exists {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (s *recordingStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *recordingStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes++
	delete(s.values, key)
	return nil
}

func (s *recordingStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, exists := s.values[key]
	return value, exists
}

func (s *recordingStore) seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *recordingStore) opCount() (gets, sets, removes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets, s.removes
}
