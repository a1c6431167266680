package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/avelisk/remindd/pkg/models"
)

// MemoryStore is an in-process EventStore used by tests and the "memory"
// development backend. Natural order is insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	order  []string
	events map[string]models.Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string]models.Event)}
}

func (s *MemoryStore) Add(_ context.Context, ev models.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.events[id] = ev
	s.order = append(s.order, id)
	return id, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.StoredEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]models.StoredEvent, 0, len(s.order))
	for _, id := range s.order {
		events = append(events, models.StoredEvent{ID: id, Event: s.events[id]})
	}
	return events, nil
}

func (s *MemoryStore) ListByCreator(_ context.Context, createdBy string) ([]models.StoredEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := []models.StoredEvent{}
	for _, id := range s.order {
		if ev := s.events[id]; ev.CreatedBy == createdBy {
			events = append(events, models.StoredEvent{ID: id, Event: ev})
		}
	}
	return events, nil
}
