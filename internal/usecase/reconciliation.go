package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"account-reconciler/internal/domain"

	"go.uber.org/zap"
)

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo   AccountRepository
	writer ResultWriter
	logger *zap.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo AccountRepository, writer ResultWriter, logger *zap.Logger) *ReconciliationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationUseCase{repo: repo, writer: writer, logger: logger}
}

// Run compares the main file against the reference files, writes the results
// to outputDir and returns the run summary. Nothing is written when the main
// file cannot be read.
func (uc *ReconciliationUseCase) Run(ctx context.Context, mainPath string, referencePaths []string, outputDir string) (*domain.Summary, error) {
	result, mainAccounts, err := uc.compare(ctx, mainPath, referencePaths)
	if err != nil {
		return nil, err
	}

	if err := uc.WriteResults(ctx, result, outputDir); err != nil {
		return nil, err
	}

	return domain.NewSummary(result, mainAccounts, outputDir), nil
}

// Compare classifies every identifier of the main file as matched per
// reference source or not found in any of them.
func (uc *ReconciliationUseCase) Compare(ctx context.Context, mainPath string, referencePaths []string) (*domain.MatchResult, error) {
	result, _, err := uc.compare(ctx, mainPath, referencePaths)
	return result, err
}

// WriteResults persists a MatchResult to outputDir.
func (uc *ReconciliationUseCase) WriteResults(ctx context.Context, result *domain.MatchResult, outputDir string) error {
	if err := uc.writer.WriteResults(ctx, result.MatchesBySource, result.NotFound, outputDir); err != nil {
		return fmt.Errorf("could not write results: %w", err)
	}
	uc.logger.Info("Results written", zap.String("output_dir", outputDir))
	return nil
}

func (uc *ReconciliationUseCase) compare(ctx context.Context, mainPath string, referencePaths []string) (*domain.MatchResult, int, error) {
	// Step 1: the main list is mandatory
	mainAccounts, err := uc.repo.GetAccountIDs(ctx, mainPath)
	if err != nil {
		return nil, 0, fmt.Errorf("could not get main accounts: %w", err)
	}

	result := &domain.MatchResult{
		MatchesBySource: make(map[domain.Source][]domain.Identifier),
		NotFound:        make([]domain.Identifier, 0),
		Skipped:         make([]domain.Source, 0),
	}

	// Step 2: reference lists are best effort
	allMatches := domain.NewIdentifierSet()
	for _, path := range referencePaths {
		source := domain.Source(filepath.Base(path))

		refAccounts, err := uc.repo.GetAccountIDs(ctx, path)
		if err != nil {
			uc.logger.Warn("Skipping reference file", zap.String("path", path), zap.Error(err))
			result.Skipped = append(result.Skipped, source)
			continue
		}

		matches := mainAccounts.Intersect(refAccounts)
		if matches.Len() == 0 {
			continue
		}
		result.MatchesBySource[source] = matches.Sorted()
		allMatches.Union(matches)
	}

	// Step 3: whatever no reference file claimed
	result.NotFound = mainAccounts.Difference(allMatches).Sorted()

	uc.logger.Info("Comparison finished",
		zap.Int("main_accounts", mainAccounts.Len()),
		zap.Int("matched_sources", len(result.MatchesBySource)),
		zap.Int("not_found", len(result.NotFound)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, mainAccounts.Len(), nil
}
