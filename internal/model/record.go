package model

import "time"

// TimeLayout is the canonical creation timestamp format. Records carry
// minute precision only; the layout sorts lexicographically in step with
// chronological order, which the storage layer relies on.
const TimeLayout = "2006-01-02 15:04"

// BookmarkRecord represents a saved URL with metadata.
type BookmarkRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft holds the caller-supplied fields for creating a record.
// The store assigns ID and CreatedAt.
type Draft struct {
	Name string   `json:"name" validate:"required"`
	URL  string   `json:"url" validate:"required,url"`
	Tags []string `json:"tags"`
}

// Patch holds replacement fields for updating a record. Name, URL and Tags
// always replace the stored values. CreatedAt is an administrative override:
// empty keeps the original timestamp, a non-empty value must be in TimeLayout.
type Patch struct {
	Name      string   `json:"name" validate:"required"`
	URL       string   `json:"url" validate:"required,url"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// FormatTime renders t in the canonical layout, truncated to the minute.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a timestamp in the canonical layout.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// Truncate drops sub-minute precision from t. Timestamps are stored in
// TimeLayout, so anything finer would not survive a save/load roundtrip.
func Truncate(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
