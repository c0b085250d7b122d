package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backendren/Web-Directory/internal/config"
	"github.com/backendren/Web-Directory/internal/errs"
	"github.com/backendren/Web-Directory/internal/logger"
	"github.com/backendren/Web-Directory/internal/model"
)

// RecordStore defines the interface for persisting bookmark records.
// The store owns identity assignment and timestamp stamping; callers are
// expected to validate and tag-normalize input before it gets here.
//
// Contract notes:
//   - Identity values are monotonically increasing and never reused, not
//     even after a delete.
//   - Update and Delete of a nonexistent id fail with a not-found error.
//   - Every mutation is all-or-nothing; a failed call leaves the store
//     exactly as it was.
//   - GetAll returns records in ascending id order. Display ordering is the
//     query layer's job.
type RecordStore interface {
	Create(draft model.Draft) (int64, error)
	Update(id int64, patch model.Patch) error
	Delete(id int64) error
	Get(id int64) (model.BookmarkRecord, error)
	GetAll() ([]model.BookmarkRecord, error)
	Path() string
	Close() error
}

// jsonFile is the on-disk layout of the JSON backend. NextID only ever
// grows, which is what keeps deleted ids from coming back.
type jsonFile struct {
	NextID  int64                  `json:"nextId"`
	Records []model.BookmarkRecord `json:"records"`
}

// JSONStore implements RecordStore using a single JSON file.
type JSONStore struct {
	path string
	log  logger.Logger

	// Clock stamps CreatedAt on create. Tests override it.
	Clock func() time.Time
}

// NewJSONStore creates a JSONStore at the given file path.
func NewJSONStore(path string, log logger.Logger) *JSONStore {
	return &JSONStore{path: path, log: log, Clock: time.Now}
}

// Path returns the storage file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Close is a no-op; the file is opened per operation.
func (s *JSONStore) Close() error {
	return nil
}

// Create assigns the next identity, stamps CreatedAt and persists the draft.
func (s *JSONStore) Create(draft model.Draft) (int64, error) {
	f, err := s.load()
	if err != nil {
		return 0, err
	}

	id := f.NextID + 1
	record := model.BookmarkRecord{
		ID:        id,
		Name:      draft.Name,
		URL:       draft.URL,
		Tags:      ensureTags(draft.Tags),
		CreatedAt: model.Truncate(s.Clock()),
	}
	f.NextID = id
	f.Records = append(f.Records, record)

	if err := s.save(f); err != nil {
		return 0, err
	}
	s.log.Debug("record created", logger.Int64("id", id), logger.String("backend", "json"))
	return id, nil
}

// Update replaces name, url and tags of an existing record. CreatedAt is
// replaced only when the patch supplies a non-empty value.
func (s *JSONStore) Update(id int64, patch model.Patch) error {
	f, err := s.load()
	if err != nil {
		return err
	}

	idx := -1
	for i := range f.Records {
		if f.Records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errs.NotFound("bookmark %d does not exist", id)
	}

	createdAt := f.Records[idx].CreatedAt
	if patch.CreatedAt != "" {
		t, err := model.ParseTime(patch.CreatedAt)
		if err != nil {
			return errs.Validation("createdAt must match %s", model.TimeLayout)
		}
		createdAt = t
	}

	f.Records[idx] = model.BookmarkRecord{
		ID:        id,
		Name:      patch.Name,
		URL:       patch.URL,
		Tags:      ensureTags(patch.Tags),
		CreatedAt: createdAt,
	}

	if err := s.save(f); err != nil {
		return err
	}
	s.log.Debug("record updated", logger.Int64("id", id), logger.String("backend", "json"))
	return nil
}

// Delete removes a record. Deleting a nonexistent id is an error, not a
// no-op.
func (s *JSONStore) Delete(id int64) error {
	f, err := s.load()
	if err != nil {
		return err
	}

	idx := -1
	for i := range f.Records {
		if f.Records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errs.NotFound("bookmark %d does not exist", id)
	}

	f.Records = append(f.Records[:idx], f.Records[idx+1:]...)

	if err := s.save(f); err != nil {
		return err
	}
	s.log.Debug("record deleted", logger.Int64("id", id), logger.String("backend", "json"))
	return nil
}

// Get returns a single record by id.
func (s *JSONStore) Get(id int64) (model.BookmarkRecord, error) {
	f, err := s.load()
	if err != nil {
		return model.BookmarkRecord{}, err
	}
	for _, r := range f.Records {
		if r.ID == id {
			return r, nil
		}
	}
	return model.BookmarkRecord{}, errs.NotFound("bookmark %d does not exist", id)
}

// GetAll returns every record in ascending id order.
func (s *JSONStore) GetAll() ([]model.BookmarkRecord, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Records, nil
}

// load reads the file, returning an empty store when it doesn't exist yet.
func (s *JSONStore) load() (*jsonFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &jsonFile{Records: []model.BookmarkRecord{}}, nil
		}
		return nil, errs.Storage(err, "reading %s", s.path)
	}

	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errs.Storage(err, "parsing %s", s.path)
	}
	if f.Records == nil {
		f.Records = []model.BookmarkRecord{}
	}
	return &f, nil
}

// save writes the file through a temp-file rename so a failed write never
// leaves a half-written store behind.
func (s *JSONStore) save(f *jsonFile) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.Storage(err, "creating %s", dir)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errs.Storage(err, "encoding %s", s.path)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.Storage(err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errs.Storage(err, "replacing %s", s.path)
	}
	return nil
}

func ensureTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Open opens the appropriate storage backend for the configured database
// path: SQLite by default, the JSON backend when the path points at a
// .json file.
func Open(cfg *config.Config, log logger.Logger) (RecordStore, error) {
	path, err := cfg.DatabaseFile()
	if err != nil {
		return nil, errs.Storage(err, "resolving database path")
	}
	if strings.HasSuffix(path, ".json") {
		return NewJSONStore(path, log), nil
	}
	return NewSQLiteStore(path, log)
}
