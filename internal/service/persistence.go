package service

import (
	"context"
	"fmt"

	"provider-enricher/internal/models"
)

// ProviderStore interface for dependency injection
type ProviderStore interface {
	EnsureTable(ctx context.Context) error
	AppendProviders(ctx context.Context, rows []models.EnrichedRow) (int64, error)
}

// PersistenceService writes an enriched batch to the provider table
type PersistenceService struct {
	store ProviderStore
}

// NewPersistenceService creates a new persistence service
func NewPersistenceService(store ProviderStore) *PersistenceService {
	return &PersistenceService{store: store}
}

// Persist makes sure the table exists, then appends every row. Nothing is deduplicated.
func (s *PersistenceService) Persist(ctx context.Context, rows []models.EnrichedRow) (int64, error) {
	if err := s.store.EnsureTable(ctx); err != nil {
		return 0, fmt.Errorf("service: ensure table: %w", err)
	}

	n, err := s.store.AppendProviders(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("service: append providers: %w", err)
	}

	return n, nil
}
