// Package memory is an in-process implementation of the baseline and rate
// cache ports. It backs tests and the store.driver=memory setting.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
)

type Store struct {
	mu           sync.RWMutex
	baselines    map[string]models.LocalityBaseline
	cache        map[string]models.CachedRate
	observations map[string][]models.RateObservation
}

func NewStore() *Store {
	return &Store{
		baselines:    make(map[string]models.LocalityBaseline),
		cache:        make(map[string]models.CachedRate),
		observations: make(map[string][]models.RateObservation),
	}
}

func (s *Store) GetBaseline(_ context.Context, locality string) (*models.LocalityBaseline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.baselines[locality]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// UpsertBaseline replaces the row unless it would lower sample_size, in which
// case the stored row is kept whole.
func (s *Store) UpsertBaseline(_ context.Context, b *models.LocalityBaseline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.baselines[b.Locality]; ok && b.SampleSize < prev.SampleSize {
		return nil
	}
	s.baselines[b.Locality] = *b
	return nil
}

func (s *Store) AppendObservation(_ context.Context, o *models.RateObservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observations[o.Locality] = append(s.observations[o.Locality], *o)
	return nil
}

func (s *Store) ListObservations(_ context.Context, locality string) ([]models.RateObservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.observations[locality]
	out := make([]models.RateObservation, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt.Before(out[j].ObservedAt) })
	return out, nil
}

func (s *Store) ListObservedLocalities(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.observations))
	for name := range s.observations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) GetCachedRate(_ context.Context, locality string) (*models.CachedRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cache[locality]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) PutCachedRate(_ context.Context, c *models.CachedRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[c.Locality] = *c
	return nil
}

func (s *Store) Close() error { return nil }
