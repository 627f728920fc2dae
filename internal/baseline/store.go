// Package baseline owns the per-locality rolling rate statistic: the
// append-only observation log, the materialized baseline row and the
// confidence score derived from it.
package baseline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
)

var ErrInvalidObservation = errors.New("invalid rate observation")

// Port is the persistence boundary for baselines and observations.
// GetBaseline returns nil, nil for a locality that was never aggregated.
type Port interface {
	GetBaseline(ctx context.Context, locality string) (*models.LocalityBaseline, error)
	UpsertBaseline(ctx context.Context, b *models.LocalityBaseline) error
	AppendObservation(ctx context.Context, o *models.RateObservation) error
	// ListObservations returns a locality's observations oldest first.
	ListObservations(ctx context.Context, locality string) ([]models.RateObservation, error)
	ListObservedLocalities(ctx context.Context) ([]string, error)
}

type Store struct {
	port Port
	now  func() time.Time
}

func NewStore(port Port) *Store {
	return &Store{port: port, now: time.Now}
}

// WithClock replaces the time source used to stamp observations.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Get(ctx context.Context, locality string) (*models.LocalityBaseline, error) {
	b, err := s.port.GetBaseline(ctx, locality)
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline for %s: %w", locality, err)
	}
	return b, nil
}

// RecordObservation appends one accepted rate to the history.
func (s *Store) RecordObservation(ctx context.Context, locality string, rate float64, source models.RateSource) error {
	if strings.TrimSpace(locality) == "" || rate <= 0 {
		return fmt.Errorf("%w: locality=%q rate=%v", ErrInvalidObservation, locality, rate)
	}

	obs := &models.RateObservation{
		ID:         uuid.NewString(),
		Locality:   locality,
		Rate:       rate,
		Source:     source,
		ObservedAt: s.now().UTC(),
	}
	if err := s.port.AppendObservation(ctx, obs); err != nil {
		return fmt.Errorf("failed to append observation for %s: %w", locality, err)
	}
	return nil
}
