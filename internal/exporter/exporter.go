// Package exporter projects the record set into a flat tabular form and
// writes it out as CSV.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/tags"
)

// Header returns the column set of the tabular projection.
func Header() []string {
	return []string{"id", "name", "url", "tags", "created"}
}

// Rows projects records into rows matching Header, sorted newest-first —
// the same ordering rule the list view uses. The input slice is not
// modified.
func Rows(records []model.BookmarkRecord) [][]string {
	sorted := make([]model.BookmarkRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.URL,
			tags.Join(r.Tags),
			model.FormatTime(r.CreatedAt),
		})
	}
	return rows
}

// WriteCSV writes the projection, header first, to w.
func WriteCSV(w io.Writer, records []model.BookmarkRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, row := range Rows(records) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the projection to a file at path.
func WriteCSVFile(path string, records []model.BookmarkRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/webdir-export-YYYY-MM-DD.csv
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("webdir-export-%s.csv", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}
