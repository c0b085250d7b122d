// Package directory is the surface presentation code talks to: it
// re-validates input, normalizes tags, delegates persistence to the record
// store and derives list views. It holds no state between calls beyond the
// persisted table; page and keyword live with the caller.
package directory

import (
	"strings"

	"github.com/backendren/Web-Directory/internal/config"
	"github.com/backendren/Web-Directory/internal/errs"
	"github.com/backendren/Web-Directory/internal/exporter"
	"github.com/backendren/Web-Directory/internal/importer"
	"github.com/backendren/Web-Directory/internal/logger"
	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/query"
	"github.com/backendren/Web-Directory/internal/storage"
	"github.com/backendren/Web-Directory/internal/tags"
	"github.com/backendren/Web-Directory/internal/validate"
)

// Directory wires the record store, validation and the query layer together.
type Directory struct {
	store     storage.RecordStore
	validator *validate.Validator
	pageSize  int
	maxTags   int
	log       logger.Logger
}

// New creates a Directory over the given store.
func New(store storage.RecordStore, cfg *config.Config, log logger.Logger) *Directory {
	return &Directory{
		store:     store,
		validator: validate.New(),
		pageSize:  cfg.PageSize,
		maxTags:   cfg.MaxTags,
		log:       log,
	}
}

// PageSize returns the configured page size for list views.
func (d *Directory) PageSize() int {
	return d.pageSize
}

// Create validates the draft, normalizes its tags and persists it.
// Returns the assigned id.
func (d *Directory) Create(draft model.Draft) (int64, error) {
	if err := d.validator.Draft(draft); err != nil {
		return 0, err
	}
	draft.Tags = d.normalizeTags(draft.Tags)

	id, err := d.store.Create(draft)
	if err != nil {
		d.log.Error("create failed", logger.Error(err))
		return 0, err
	}
	d.log.Info("bookmark created", logger.Int64("id", id), logger.String("name", draft.Name))
	return id, nil
}

// Update validates the patch, normalizes its tags and applies it to an
// existing record.
func (d *Directory) Update(id int64, patch model.Patch) error {
	if err := d.validator.Patch(patch); err != nil {
		return err
	}
	patch.Tags = d.normalizeTags(patch.Tags)

	if err := d.store.Update(id, patch); err != nil {
		d.log.Error("update failed", logger.Int64("id", id), logger.Error(err))
		return err
	}
	d.log.Info("bookmark updated", logger.Int64("id", id))
	return nil
}

// Delete removes a record. Deleting a nonexistent id is an error.
func (d *Directory) Delete(id int64) error {
	if err := d.store.Delete(id); err != nil {
		d.log.Error("delete failed", logger.Int64("id", id), logger.Error(err))
		return err
	}
	d.log.Info("bookmark deleted", logger.Int64("id", id))
	return nil
}

// Get returns a single record by id.
func (d *Directory) Get(id int64) (model.BookmarkRecord, error) {
	return d.store.Get(id)
}

// Snapshot returns the full record set in store order. Presentation code
// uses it to re-slice pages without re-querying storage on every
// navigation step.
func (d *Directory) Snapshot() ([]model.BookmarkRecord, error) {
	return d.store.GetAll()
}

// List derives the filtered, sorted page for the given keyword and page
// number. Callers are expected to reset page to 1 when the keyword changes.
func (d *Directory) List(keyword string, page int) (query.Result, error) {
	records, err := d.store.GetAll()
	if err != nil {
		return query.Result{}, err
	}
	return query.List(records, keyword, page, d.pageSize), nil
}

// ExportAll returns the tabular projection of the full record set, header
// row first, sorted newest-first.
func (d *Directory) ExportAll() ([][]string, error) {
	records, err := d.store.GetAll()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, exporter.Header())
	rows = append(rows, exporter.Rows(records)...)
	return rows, nil
}

// Import persists parsed entries, skipping ones whose URL is already in the
// store (case-insensitive) and ones that fail validation. Entries carrying a
// source timestamp keep it via the createdAt override path.
func (d *Directory) Import(entries []importer.Entry) (added, skipped int, err error) {
	records, err := d.store.GetAll()
	if err != nil {
		return 0, 0, err
	}
	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[normalizeURL(r.URL)] = true
	}

	for _, entry := range entries {
		if known[normalizeURL(entry.URL)] {
			skipped++
			continue
		}

		draft := model.Draft{Name: entry.Name, URL: entry.URL, Tags: entry.Tags}
		id, err := d.Create(draft)
		if err != nil {
			if errs.Is(err, errs.ErrValidation) {
				d.log.Warn("skipping invalid import entry",
					logger.String("url", entry.URL), logger.Error(err))
				skipped++
				continue
			}
			return added, skipped, err
		}

		if !entry.CreatedAt.IsZero() {
			patch := model.Patch{
				Name:      entry.Name,
				URL:       entry.URL,
				Tags:      entry.Tags,
				CreatedAt: model.FormatTime(entry.CreatedAt),
			}
			if err := d.Update(id, patch); err != nil {
				return added, skipped, err
			}
		}

		known[normalizeURL(entry.URL)] = true
		added++
	}
	return added, skipped, nil
}

// Close releases the underlying store.
func (d *Directory) Close() error {
	return d.store.Close()
}

func (d *Directory) normalizeTags(raw []string) []string {
	// Joining and re-normalizing dedupes slices that arrive pre-split
	return tags.Cap(tags.Normalize(tags.Join(raw)), d.maxTags)
}

func normalizeURL(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
