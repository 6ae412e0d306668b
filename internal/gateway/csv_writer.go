package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"account-reconciler/internal/domain"

	"go.uber.org/zap"
)

const (
	matchesFilePrefix = "matches_"
	// NotFoundFileName is written only when at least one account was not found.
	NotFoundFileName = "not_found_accounts.csv"
)

// CSVResultWriter implements the ResultWriter interface for CSV files.
type CSVResultWriter struct {
	logger *zap.Logger
}

// NewCSVResultWriter creates a new writer instance.
func NewCSVResultWriter(logger *zap.Logger) *CSVResultWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVResultWriter{logger: logger}
}

// MatchesFileName returns the result file name for a reference source.
func MatchesFileName(source domain.Source) string {
	return matchesFilePrefix + string(source)
}

// WriteResults writes one matches file per source and, when non-empty, the not-found file.
func (w *CSVResultWriter) WriteResults(ctx context.Context, matchesBySource map[domain.Source][]domain.Identifier, notFound []domain.Identifier, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return &domain.WriteError{Path: outputDir, Err: err}
	}

	for source, ids := range matchesBySource {
		if err := w.writeIDs(filepath.Join(outputDir, MatchesFileName(source)), ids); err != nil {
			return err
		}
	}

	if len(notFound) > 0 {
		if err := w.writeIDs(filepath.Join(outputDir, NotFoundFileName), notFound); err != nil {
			return err
		}
	}
	return nil
}

func (w *CSVResultWriter) writeIDs(path string, ids []domain.Identifier) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &domain.WriteError{Path: path, Err: cerr}
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{domain.IDColumn}); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	for _, id := range ids {
		if err := writer.Write([]string{string(id)}); err != nil {
			return &domain.WriteError{Path: path, Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}

	w.logger.Debug("Wrote result file", zap.String("path", path), zap.Int("rows", len(ids)))
	return nil
}
