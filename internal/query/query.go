// Package query derives the caller-visible working set from a record
// snapshot: keyword filter, stable sort, page slice.
package query

import (
	"sort"
	"strings"

	"github.com/backendren/Web-Directory/internal/model"
)

// Result is everything a presentation layer needs to render one page of
// records and its pagination controls.
type Result struct {
	Items           []model.BookmarkRecord
	TotalFiltered   int
	TotalUnfiltered int
	CurrentPage     int
	TotalPages      int
}

// List filters records by keyword, sorts them newest-first and slices out
// the requested page.
//
// The keyword matches case-insensitively as a substring of name, url or any
// tag; an empty or whitespace-only keyword passes everything through. The
// sort is stable over the snapshot order, so records sharing a creation
// minute keep ascending id order among themselves. Out-of-range pages clamp
// to [1, TotalPages]. The function never touches storage; page navigation is
// a re-slice of the same snapshot.
func List(records []model.BookmarkRecord, keyword string, page, pageSize int) Result {
	if pageSize < 1 {
		pageSize = 1
	}

	filtered := filter(records, keyword)

	sorted := make([]model.BookmarkRecord, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return Result{
		Items:           sorted[start:end],
		TotalFiltered:   len(sorted),
		TotalUnfiltered: len(records),
		CurrentPage:     page,
		TotalPages:      totalPages,
	}
}

// filter retains records matching the keyword.
func filter(records []model.BookmarkRecord, keyword string) []model.BookmarkRecord {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return records
	}

	matched := make([]model.BookmarkRecord, 0, len(records))
	for _, r := range records {
		if Matches(r, keyword) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Matches reports whether the lowercased keyword is a substring of the
// record's name, url or any tag.
func Matches(r model.BookmarkRecord, keyword string) bool {
	if strings.Contains(strings.ToLower(r.Name), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(r.URL), keyword) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}
