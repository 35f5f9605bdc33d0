package repository

import (
	"context"
	"sync/atomic"

	"github.com/okian/rootsroads/internal/domain/dataset"
	"github.com/okian/rootsroads/pkg/metrics"
)

// MemoryStore keeps the current dataset in process memory only.
type MemoryStore struct {
	current atomic.Pointer[dataset.Dataset]
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(_ context.Context) *MemoryStore {
	return &MemoryStore{}
}

// Current implements Store.
func (s *MemoryStore) Current(_ context.Context) (*dataset.Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return ds, nil
}

// Replace implements Store.
func (s *MemoryStore) Replace(_ context.Context, ds *dataset.Dataset) error {
	if ds == nil {
		return ErrNilData
	}
	s.current.Store(ds)

	totals := ds.Totals()
	metrics.UpdateContributors(totals.Stories)
	metrics.UpdateCountries(totals.Countries)
	metrics.UpdateGeolocated(len(ds.Geolocated()))
	return nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	if ds := s.current.Load(); ds != nil {
		return ds.Len()
	}
	return 0
}
