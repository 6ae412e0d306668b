package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Identifier is a normalized account identifier used as the unit of comparison.
type Identifier string

// Source is the base filename of a reference file.
type Source string

// Schema describes how identifiers are located inside a tabular file.
type Schema int

const (
	// PositionalSchema reads identifiers from the first column, whatever its header.
	PositionalSchema Schema = iota
	// ComplexSchema reads identifiers from the column named IDColumn.
	ComplexSchema
)

// IDColumn is the column holding identifiers in a complex schema file.
const IDColumn = "id"

// ComplexColumns are the header names that must all be present for a file
// to be treated as ComplexSchema.
var ComplexColumns = []string{IDColumn, "isCanceled", "name", "regionCode"}

func (s Schema) String() string {
	switch s {
	case ComplexSchema:
		return "complex"
	default:
		return "positional"
	}
}

// DetectSchema decides the schema of a file from its header row.
// Matching is exact and case-sensitive; column order and extra columns are ignored.
func DetectSchema(header []string) Schema {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[col] = struct{}{}
	}
	for _, col := range ComplexColumns {
		if _, ok := present[col]; !ok {
			return PositionalSchema
		}
	}
	return ComplexSchema
}

// NormalizeIdentifier converts a cell value of any type to its identifier form.
// Integer-valued numbers and their string spelling produce the same token.
func NormalizeIdentifier(val any) Identifier {
	var s string
	switch v := val.(type) {
	case Identifier:
		s = string(v)
	case string:
		s = v
	case []byte:
		s = string(v)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case uint:
		s = strconv.FormatUint(uint64(v), 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	case uint32:
		s = strconv.FormatUint(uint64(v), 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprintf("%v", v)
	}
	return Identifier(strings.TrimSpace(s))
}

// IdentifierSet holds the unique identifiers extracted from one file.
type IdentifierSet struct {
	ids map[Identifier]struct{}
	// Duplicates counts values that were absorbed because they were already present.
	Duplicates int
}

// NewIdentifierSet builds a set from the given identifiers.
func NewIdentifierSet(ids ...Identifier) IdentifierSet {
	set := IdentifierSet{ids: make(map[Identifier]struct{}, len(ids))}
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add inserts id and reports whether it was new.
func (s *IdentifierSet) Add(id Identifier) bool {
	if s.ids == nil {
		s.ids = make(map[Identifier]struct{})
	}
	if _, ok := s.ids[id]; ok {
		s.Duplicates++
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is in the set.
func (s IdentifierSet) Contains(id Identifier) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of unique identifiers.
func (s IdentifierSet) Len() int {
	return len(s.ids)
}

// Intersect returns the identifiers present in both s and other.
func (s IdentifierSet) Intersect(other IdentifierSet) IdentifierSet {
	small, large := s, other
	if large.Len() < small.Len() {
		small, large = large, small
	}
	out := IdentifierSet{ids: make(map[Identifier]struct{})}
	for id := range small.ids {
		if large.Contains(id) {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Union adds every identifier of other into s.
func (s *IdentifierSet) Union(other IdentifierSet) {
	if s.ids == nil {
		s.ids = make(map[Identifier]struct{}, other.Len())
	}
	for id := range other.ids {
		s.ids[id] = struct{}{}
	}
}

// Difference returns the identifiers of s that are absent from other.
func (s IdentifierSet) Difference(other IdentifierSet) IdentifierSet {
	out := IdentifierSet{ids: make(map[Identifier]struct{})}
	for id := range s.ids {
		if !other.Contains(id) {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the identifiers in ascending byte-wise lexicographic order.
func (s IdentifierSet) Sorted() []Identifier {
	out := make([]Identifier, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
