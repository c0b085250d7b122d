// Package search provides fuzzy matching over record names for the quick
// search path. The list view's exact substring filter lives in the query
// package; this is the looser, ranked matching used when the query comes
// from the command line.
package search

import (
	"github.com/backendren/Web-Directory/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Record         model.BookmarkRecord
	MatchedIndexes []int
	Score          int
}

// recordNames implements fuzzy.Source for a record slice.
type recordNames []model.BookmarkRecord

func (rn recordNames) String(i int) string {
	return rn[i].Name
}

func (rn recordNames) Len() int {
	return len(rn)
}

// Records searches records by name using fuzzy matching.
// Returns results sorted by match score (best first).
func Records(records []model.BookmarkRecord, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, recordNames(records))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Record:         records[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
