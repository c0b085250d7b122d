package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"

	"github.com/backendren/Web-Directory/internal/config"
	"github.com/backendren/Web-Directory/internal/directory"
	"github.com/backendren/Web-Directory/internal/logger"
	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/storage"
)

func testApp(t *testing.T, seed int) App {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "bookmarks.json"), logger.NewNop())
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	dir := directory.New(store, &cfg, logger.NewNop())

	for i := 0; i < seed; i++ {
		_, err := dir.Create(model.Draft{
			Name: fmt.Sprintf("Bookmark %02d", i),
			URL:  fmt.Sprintf("https://example.com/%d", i),
		})
		assert.NilError(t, err)
	}

	return NewApp(AppParams{Directory: dir})
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	next, _ := a.Update(msg)
	app, ok := next.(App)
	assert.Assert(t, ok)
	return app
}

func TestCursorMovement(t *testing.T) {
	a := testApp(t, 3)
	assert.Equal(t, a.Cursor(), 0)

	a = update(t, a, keyPress('j'))
	a = update(t, a, keyPress('j'))
	assert.Equal(t, a.Cursor(), 2)

	// already at the bottom of the page
	a = update(t, a, keyPress('j'))
	assert.Equal(t, a.Cursor(), 2)

	a = update(t, a, keyPress('k'))
	assert.Equal(t, a.Cursor(), 1)

	a = update(t, a, keyPress('g'))
	assert.Equal(t, a.Cursor(), 0)

	a = update(t, a, keyPress('G'))
	assert.Equal(t, a.Cursor(), 2)
}

func TestPageNavigationReslicesSnapshot(t *testing.T) {
	a := testApp(t, 13) // page size 12 leaves one record on page 2

	assert.Equal(t, a.Result().CurrentPage, 1)
	assert.Equal(t, a.Result().TotalPages, 2)
	assert.Equal(t, len(a.Result().Items), 12)

	a = update(t, a, keyPress('l'))
	assert.Equal(t, a.Result().CurrentPage, 2)
	assert.Equal(t, len(a.Result().Items), 1)
	assert.Equal(t, a.Cursor(), 0)

	// no page 3 to go to
	a = update(t, a, keyPress('l'))
	assert.Equal(t, a.Result().CurrentPage, 2)

	a = update(t, a, keyPress('h'))
	assert.Equal(t, a.Result().CurrentPage, 1)

	a = update(t, a, keyPress('h'))
	assert.Equal(t, a.Result().CurrentPage, 1)
}

func TestFilterAppliesLiveAndResetsPage(t *testing.T) {
	a := testApp(t, 13)
	a = update(t, a, keyPress('l'))
	assert.Equal(t, a.Result().CurrentPage, 2)

	a = update(t, a, keyPress('/'))
	assert.Equal(t, a.mode, modeFilter)

	for _, r := range "bookmark 05" {
		a = update(t, a, keyPress(r))
	}
	assert.Equal(t, a.Result().CurrentPage, 1)
	assert.Equal(t, a.Result().TotalFiltered, 1)
	assert.Equal(t, a.Result().Items[0].Name, "Bookmark 05")

	// enter keeps the filter active
	a = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, a.mode, modeBrowse)
	assert.Equal(t, a.keyword, "bookmark 05")

	// esc from the filter prompt clears it
	a = update(t, a, keyPress('/'))
	a = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, a.keyword, "")
	assert.Equal(t, a.Result().TotalFiltered, 13)
}

func TestAddFormSubmits(t *testing.T) {
	a := testApp(t, 0)

	a = update(t, a, keyPress('a'))
	assert.Equal(t, a.mode, modeAdd)

	for _, r := range "Charm" {
		a = update(t, a, keyPress(r))
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "https://charm.sh" {
		a = update(t, a, keyPress(r))
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "tui, go" {
		a = update(t, a, keyPress(r))
	}

	a = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, a.mode, modeBrowse)
	assert.Equal(t, a.Result().TotalUnfiltered, 1)
	assert.Equal(t, a.Result().Items[0].Name, "Charm")
	assert.DeepEqual(t, a.Result().Items[0].Tags, []string{"tui", "go"})
}

func TestAddFormRejectsBadURL(t *testing.T) {
	a := testApp(t, 0)

	a = update(t, a, keyPress('a'))
	for _, r := range "Broken" {
		a = update(t, a, keyPress(r))
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "not a url" {
		a = update(t, a, keyPress(r))
	}

	a = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	// form stays open with the validation message, nothing persisted
	assert.Equal(t, a.mode, modeAdd)
	assert.Assert(t, a.statusErr)
	assert.Assert(t, a.status != "")
	assert.Equal(t, a.Result().TotalUnfiltered, 0)
}

func TestEditFormPrefillsRecord(t *testing.T) {
	a := testApp(t, 1)

	a = update(t, a, keyPress('e'))
	assert.Equal(t, a.mode, modeEdit)
	assert.Equal(t, a.form.inputs[0].Value(), "Bookmark 00")
	assert.Equal(t, a.form.inputs[1].Value(), "https://example.com/0")
	assert.Assert(t, a.form.inputs[3].Value() != "") // created prefilled

	a = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, a.mode, modeBrowse)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	a := testApp(t, 2)

	a = update(t, a, keyPress('d'))
	assert.Equal(t, a.mode, modeConfirmDelete)

	// declining keeps the record
	a = update(t, a, keyPress('n'))
	assert.Equal(t, a.mode, modeBrowse)
	assert.Equal(t, a.Result().TotalUnfiltered, 2)

	a = update(t, a, keyPress('d'))
	a = update(t, a, keyPress('y'))
	assert.Equal(t, a.mode, modeBrowse)
	assert.Equal(t, a.Result().TotalUnfiltered, 1)
}

func TestViewRendersList(t *testing.T) {
	a := testApp(t, 2)
	view := a.View()

	assert.Assert(t, len(view) > 0)
	for _, want := range []string{"Bookmark 00", "Bookmark 01", "page 1/1"} {
		assert.Assert(t, strings.Contains(view, want), "view missing %q", want)
	}
}
