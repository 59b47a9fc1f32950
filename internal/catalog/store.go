package catalog

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/guonaihong/gout"
	"go.uber.org/zap"

	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
)

// Bus topics published by every store: reloaded after a successful Load,
// changed after a successful mutation (the caller is expected to reload).
const (
	TopicReloaded = "catalog:reloaded"
	TopicChanged  = "catalog:changed"
)

// Store caches one entity type's collection. Consistency is achieved purely
// by re-fetching after every successful mutation: Load replaces the whole
// cache, mutations never patch it. Concurrent loads are not sequenced, so
// the last response to arrive wins regardless of request order.
type Store[T domain.Entity] struct {
	kind string
	path string
	rc   *restclient.Client
	bus  EventBus.Bus

	mu    sync.RWMutex
	items []T
}

func newStore[T domain.Entity](kind, path string, rc *restclient.Client, bus EventBus.Bus) *Store[T] {
	return &Store[T]{kind: kind, path: path, rc: rc, bus: bus}
}

// Kind names the collection ("products", "services", "sellers").
func (s *Store[T]) Kind() string { return s.kind }

// Load replaces the cached collection with the collaborator's current view,
// in server order.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	var rows []T
	if err := s.rc.Get(ctx, s.path, nil, &rows); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = rows
	s.mu.Unlock()
	s.publish(TopicReloaded, len(rows))
	return append([]T(nil), rows...), nil
}

// Items returns a copy of the cached collection.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Find looks an entity up in the cache by identifier.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes the entity server-side. The cache is left untouched: the
// caller reloads on success, and a failed delete must not lose rows.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.rc.Delete(ctx, s.path+"/"+id); err != nil {
		return err
	}
	s.publish(TopicChanged, id)
	return nil
}

// loadQuery fetches a filtered view without touching the shared cache, used
// for seller-scoped listings.
func (s *Store[T]) loadQuery(ctx context.Context, query gout.H) ([]T, error) {
	var rows []T
	if err := s.rc.Get(ctx, s.path, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store[T]) create(ctx context.Context, body, out interface{}) error {
	if err := s.rc.Post(ctx, s.path, body, out); err != nil {
		return err
	}
	s.publish(TopicChanged, "")
	return nil
}

func (s *Store[T]) update(ctx context.Context, id string, body, out interface{}) error {
	if err := s.rc.Put(ctx, s.path+"/"+id, body, out); err != nil {
		return err
	}
	s.publish(TopicChanged, id)
	return nil
}

func (s *Store[T]) publish(topic string, arg interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(topic, s.kind, arg)
	zap.L().Debug("catalog event", zap.String("topic", topic), zap.String("kind", s.kind))
}
