package usecase

import (
	"context"

	"account-reconciler/internal/domain"
)

// AccountRepository defines the interface for extracting account identifiers from a file.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type AccountRepository interface {
	GetAccountIDs(ctx context.Context, path string) (domain.IdentifierSet, error)
}

// ResultWriter defines the interface for persisting reconciliation results.
type ResultWriter interface {
	WriteResults(ctx context.Context, matchesBySource map[domain.Source][]domain.Identifier, notFound []domain.Identifier, outputDir string) error
}
