package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"account-reconciler/internal/domain"

	"go.uber.org/zap"
)

const utf8BOM = "\uFEFF"

// CSVAccountRepository implements the AccountRepository interface for CSV files.
type CSVAccountRepository struct {
	logger *zap.Logger
}

// NewCSVAccountRepository creates a new repository instance.
func NewCSVAccountRepository(logger *zap.Logger) *CSVAccountRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVAccountRepository{logger: logger}
}

// GetAccountIDs reads the account identifiers of a CSV file.
// Files carrying every complex column are read from the "id" column,
// any other file from its first column.
func (r *CSVAccountRepository) GetAccountIDs(ctx context.Context, path string) (domain.IdentifierSet, error) {
	set, err := r.readAccountIDs(path)
	if err != nil {
		r.logger.Error("Error reading account file", zap.String("path", path), zap.Error(err))
		return domain.IdentifierSet{}, &domain.ReadError{Path: path, Err: err}
	}
	if set.Duplicates > 0 {
		r.logger.Debug("Duplicate account ids collapsed",
			zap.String("path", path),
			zap.Int("duplicates", set.Duplicates),
		)
	}
	return set, nil
}

func (r *CSVAccountRepository) readAccountIDs(path string) (domain.IdentifierSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.IdentifierSet{}, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Short rows are tolerated, long rows are rejected below.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.IdentifierSet{}, errors.New("no header row")
		}
		return domain.IdentifierSet{}, fmt.Errorf("failed to read header: %w", err)
	}
	if !validUTF8(header) {
		return domain.IdentifierSet{}, errors.New("line 1: invalid UTF-8")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	schema := domain.DetectSchema(header)
	column := idColumnIndex(schema, header)
	r.logger.Debug("Detected account file schema",
		zap.String("path", path),
		zap.Stringer("schema", schema),
		zap.Int("column", column),
	)

	set := domain.NewIdentifierSet()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.IdentifierSet{}, fmt.Errorf("error reading record: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if !validUTF8(record) {
			return domain.IdentifierSet{}, fmt.Errorf("line %d: invalid UTF-8", line)
		}
		if len(record) > len(header) {
			return domain.IdentifierSet{}, fmt.Errorf("line %d: expected at most %d fields, got %d", line, len(header), len(record))
		}
		if column >= len(record) {
			continue
		}

		id := domain.NormalizeIdentifier(record[column])
		if id == "" {
			continue
		}
		set.Add(id)
	}
	return set, nil
}

// idColumnIndex returns the position of the identifier column for a header.
func idColumnIndex(schema domain.Schema, header []string) int {
	if schema == domain.ComplexSchema {
		for i, col := range header {
			if col == domain.IDColumn {
				return i
			}
		}
	}
	return 0
}

func validUTF8(record []string) bool {
	for _, field := range record {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}
