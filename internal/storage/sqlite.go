package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/backendren/Web-Directory/internal/errs"
	"github.com/backendren/Web-Directory/internal/logger"
	"github.com/backendren/Web-Directory/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStore implements RecordStore using a SQLite database.
//
// Identity comes from an AUTOINCREMENT primary key, so ids keep growing
// across deletes. Name and url carry plain secondary indexes; tags get a
// multi-valued index table with one row per tag.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  logger.Logger

	// Clock stamps CreatedAt on create. Tests override it.
	Clock func() time.Time
}

// NewSQLiteStore creates a SQLiteStore with the given database path.
func NewSQLiteStore(path string, log logger.Logger) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errs.Storage(err, "creating %s", dir)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Storage(err, "opening %s", path)
	}

	// Enable foreign keys and set pragmas for performance
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errs.Storage(err, "configuring %s", path)
		}
	}

	s := &SQLiteStore{db: db, path: path, log: log, Clock: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	// Check current schema version
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return errs.Storage(err, "migrating %s to v1", s.path)
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_name ON bookmarks(name);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		CREATE TABLE IF NOT EXISTS bookmark_tags (
			bookmark_id INTEGER NOT NULL REFERENCES bookmarks(id) ON DELETE CASCADE,
			tag TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmark_tags_tag ON bookmark_tags(tag);
		CREATE INDEX IF NOT EXISTS idx_bookmark_tags_bookmark_id ON bookmark_tags(bookmark_id);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create assigns the next identity, stamps CreatedAt and persists the draft.
// The row and its tag index entries are written in one transaction.
func (s *SQLiteStore) Create(draft model.Draft) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, errs.Storage(err, "starting transaction")
	}
	defer tx.Rollback()

	createdAt := model.Truncate(s.Clock())
	tagsJSON, err := json.Marshal(ensureTags(draft.Tags))
	if err != nil {
		return 0, errs.Storage(err, "encoding tags")
	}

	res, err := tx.Exec(`
		INSERT INTO bookmarks (name, url, tags, created_at)
		VALUES (?, ?, ?, ?)
	`, draft.Name, draft.URL, string(tagsJSON), model.FormatTime(createdAt))
	if err != nil {
		return 0, errs.Storage(err, "inserting record")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Storage(err, "reading assigned id")
	}

	if err := insertTagIndex(tx, id, draft.Tags); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errs.Storage(err, "committing create")
	}
	s.log.Debug("record created", logger.Int64("id", id), logger.String("backend", "sqlite"))
	return id, nil
}

// Update replaces name, url and tags of an existing record inside one
// transaction. CreatedAt is replaced only when the patch supplies a
// non-empty value; the existence check and the write share the transaction
// so a concurrent delete cannot be silently resurrected.
func (s *SQLiteStore) Update(id int64, patch model.Patch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Storage(err, "starting transaction")
	}
	defer tx.Rollback()

	var storedCreatedAt string
	err = tx.QueryRow("SELECT created_at FROM bookmarks WHERE id = ?", id).Scan(&storedCreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NotFound("bookmark %d does not exist", id)
	}
	if err != nil {
		return errs.Storage(err, "reading record %d", id)
	}

	createdAt := storedCreatedAt
	if patch.CreatedAt != "" {
		if _, err := model.ParseTime(patch.CreatedAt); err != nil {
			return errs.Validation("createdAt must match %s", model.TimeLayout)
		}
		createdAt = patch.CreatedAt
	}

	tagsJSON, err := json.Marshal(ensureTags(patch.Tags))
	if err != nil {
		return errs.Storage(err, "encoding tags")
	}

	if _, err := tx.Exec(`
		UPDATE bookmarks SET name = ?, url = ?, tags = ?, created_at = ?
		WHERE id = ?
	`, patch.Name, patch.URL, string(tagsJSON), createdAt, id); err != nil {
		return errs.Storage(err, "updating record %d", id)
	}

	if _, err := tx.Exec("DELETE FROM bookmark_tags WHERE bookmark_id = ?", id); err != nil {
		return errs.Storage(err, "clearing tag index for %d", id)
	}
	if err := insertTagIndex(tx, id, patch.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errs.Storage(err, "committing update")
	}
	s.log.Debug("record updated", logger.Int64("id", id), logger.String("backend", "sqlite"))
	return nil
}

// Delete removes a record and its tag index entries. Deleting a nonexistent
// id is an error, not a no-op.
func (s *SQLiteStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errs.Storage(err, "starting transaction")
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM bookmarks WHERE id = ?", id)
	if err != nil {
		return errs.Storage(err, "deleting record %d", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errs.Storage(err, "checking delete of %d", id)
	}
	if affected == 0 {
		return errs.NotFound("bookmark %d does not exist", id)
	}

	// Tag index rows go with the record via ON DELETE CASCADE.
	if err := tx.Commit(); err != nil {
		return errs.Storage(err, "committing delete")
	}
	s.log.Debug("record deleted", logger.Int64("id", id), logger.String("backend", "sqlite"))
	return nil
}

// Get returns a single record by id.
func (s *SQLiteStore) Get(id int64) (model.BookmarkRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, name, url, tags, created_at
		FROM bookmarks
		WHERE id = ?
	`, id)

	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookmarkRecord{}, errs.NotFound("bookmark %d does not exist", id)
	}
	if err != nil {
		return model.BookmarkRecord{}, errs.Storage(err, "reading record %d", id)
	}
	return record, nil
}

// GetAll returns every record in ascending id order.
func (s *SQLiteStore) GetAll() ([]model.BookmarkRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, name, url, tags, created_at
		FROM bookmarks
		ORDER BY id
	`)
	if err != nil {
		return nil, errs.Storage(err, "reading records")
	}
	defer rows.Close()

	records := []model.BookmarkRecord{}
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, errs.Storage(err, "scanning record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(err, "iterating records")
	}

	return records, nil
}

// scanRecord decodes one bookmarks row.
func scanRecord(scan func(dest ...any) error) (model.BookmarkRecord, error) {
	var r model.BookmarkRecord
	var tagsJSON string
	var createdAtStr string

	if err := scan(&r.ID, &r.Name, &r.URL, &tagsJSON, &createdAtStr); err != nil {
		return model.BookmarkRecord{}, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
		r.Tags = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	createdAt, err := model.ParseTime(createdAtStr)
	if err != nil {
		return model.BookmarkRecord{}, err
	}
	r.CreatedAt = createdAt

	return r, nil
}

// insertTagIndex writes one bookmark_tags row per tag inside tx.
func insertTagIndex(tx *sql.Tx, id int64, tagList []string) error {
	if len(tagList) == 0 {
		return nil
	}
	stmt, err := tx.Prepare("INSERT INTO bookmark_tags (bookmark_id, tag) VALUES (?, ?)")
	if err != nil {
		return errs.Storage(err, "preparing tag index insert")
	}
	defer stmt.Close()

	for _, tag := range tagList {
		if _, err := stmt.Exec(id, tag); err != nil {
			return errs.Storage(err, "indexing tag %q", tag)
		}
	}
	return nil
}
