package prefs

import (
	"context"
	"sync"

	"github.com/jhoicas/orderly-console/internal/application/ports"
)

var _ ports.PreferenceStore = (*MemoryStore)(nil)

// MemoryStore almacén en proceso; se usa cuando no hay Redis configurado.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryStore crea el almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[sessionID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.data[sessionID]
	if !ok {
		m = make(map[string]string)
		s.data[sessionID] = m
	}
	m[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
	return nil
}
