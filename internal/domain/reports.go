package domain

// MatchResult is the outcome of one reconciliation run.
type MatchResult struct {
	// MatchesBySource holds, per reference file, the sorted identifiers it shares
	// with the main file. Sources without matches are absent.
	MatchesBySource map[Source][]Identifier `json:"matches_by_source"`
	// NotFound holds the sorted main-file identifiers absent from every reference file.
	NotFound []Identifier `json:"not_found"`
	// Skipped lists reference files that could not be read, in input order.
	Skipped []Source `json:"skipped"`
}

// Summary provides the counts displayed at the end of a run.
type Summary struct {
	MainAccounts    int            `json:"main_accounts"`
	MatchesBySource map[Source]int `json:"matches_by_source"`
	NotFound        int            `json:"not_found"`
	SkippedSources  []Source       `json:"skipped_sources"`
	OutputDir       string         `json:"output_dir"`
}

// NewSummary counts the entries of a MatchResult.
func NewSummary(result *MatchResult, mainAccounts int, outputDir string) *Summary {
	summary := &Summary{
		MainAccounts:    mainAccounts,
		MatchesBySource: make(map[Source]int, len(result.MatchesBySource)),
		NotFound:        len(result.NotFound),
		SkippedSources:  result.Skipped,
		OutputDir:       outputDir,
	}
	for source, ids := range result.MatchesBySource {
		summary.MatchesBySource[source] = len(ids)
	}
	return summary
}
