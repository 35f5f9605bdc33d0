// Package repository holds the application's current dataset.
package repository

import (
	"context"

	"github.com/okian/rootsroads/internal/domain/dataset"
)

// Store provides access to the single current dataset. Readers always see a
// complete dataset; a replacement is published atomically.
type Store interface {
	// Current returns the loaded dataset or ErrNotLoaded.
	Current(ctx context.Context) (*dataset.Dataset, error)
	// Replace publishes ds as the current dataset.
	Replace(ctx context.Context, ds *dataset.Dataset) error
	// Count returns the number of contributors in the current dataset.
	Count(ctx context.Context) int
}
