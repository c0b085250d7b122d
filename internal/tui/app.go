package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/backendren/Web-Directory/internal/browser"
	"github.com/backendren/Web-Directory/internal/directory"
	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/query"
)

// mode is the current interaction mode of the app.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeAdd
	modeEdit
	modeConfirmDelete
)

// App is the main bubbletea model for the bookmark directory.
//
// The app owns all view state the core deliberately doesn't: the active
// keyword, the current page and the cursor. It keeps a snapshot of the
// record set and re-slices pages from it; storage is only re-read after a
// mutation.
type App struct {
	dir    *directory.Directory
	keys   KeyMap
	styles Styles

	mode    mode
	records []model.BookmarkRecord // snapshot, re-read after mutations
	keyword string
	page    int
	result  query.Result
	cursor  int // selected item index within the page

	filterInput textinput.Model
	form        formState

	status    string
	statusErr bool
	loadErr   error

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Directory *directory.Directory
	Keys      *KeyMap // optional, uses default if nil
	Styles    *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter..."
	filterInput.CharLimit = 64
	filterInput.Width = 30

	app := App{
		dir:         params.Directory,
		keys:        keys,
		styles:      styles,
		mode:        modeBrowse,
		page:        1,
		filterInput: filterInput,
		width:       80,
		height:      24,
	}

	app.reload()
	return app
}

// reload re-reads the snapshot from storage and re-derives the view.
func (a *App) reload() {
	records, err := a.dir.Snapshot()
	if err != nil {
		a.loadErr = err
		return
	}
	a.loadErr = nil
	a.records = records
	a.derive()
}

// derive re-slices the current page from the in-memory snapshot.
func (a *App) derive() {
	a.result = query.List(a.records, a.keyword, a.page, a.dir.PageSize())
	a.page = a.result.CurrentPage
	if a.cursor >= len(a.result.Items) {
		a.cursor = len(a.result.Items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selected returns the record under the cursor, or nil.
func (a *App) selected() *model.BookmarkRecord {
	if len(a.result.Items) == 0 || a.cursor >= len(a.result.Items) {
		return nil
	}
	return &a.result.Items[a.cursor]
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.statusErr = true
}

// Result returns the current query result.
func (a App) Result() query.Result {
	return a.result
}

// Cursor returns the current cursor position within the page.
func (a App) Cursor() int {
	return a.cursor
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case modeFilter:
			return a.updateFilter(msg)
		case modeAdd, modeEdit:
			return a.updateForm(msg)
		case modeConfirmDelete:
			return a.updateConfirmDelete(msg)
		default:
			return a.updateBrowse(msg)
		}
	}

	return a, nil
}

// updateBrowse handles keys in the normal list mode.
func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.result.Items) > 0 && a.cursor < len(a.result.Items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Top):
		a.cursor = 0

	case key.Matches(msg, a.keys.Bottom):
		if len(a.result.Items) > 0 {
			a.cursor = len(a.result.Items) - 1
		}

	case key.Matches(msg, a.keys.NextPage):
		if a.page < a.result.TotalPages {
			a.page++
			a.cursor = 0
			a.derive()
		}

	case key.Matches(msg, a.keys.PrevPage):
		if a.page > 1 {
			a.page--
			a.cursor = 0
			a.derive()
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = modeFilter
		a.filterInput.SetValue(a.keyword)
		a.filterInput.Focus()

	case key.Matches(msg, a.keys.Add):
		a.mode = modeAdd
		a.form = newFormState(false)

	case key.Matches(msg, a.keys.Edit):
		if record := a.selected(); record != nil {
			a.mode = modeEdit
			a.form = newFormState(true)
			a.form.fill(*record)
		}

	case key.Matches(msg, a.keys.Delete):
		if a.selected() != nil {
			a.mode = modeConfirmDelete
		}

	case key.Matches(msg, a.keys.YankURL):
		if record := a.selected(); record != nil {
			if err := clipboard.WriteAll(record.URL); err != nil {
				a.setError(err)
			} else {
				a.setStatus("yanked %s", record.URL)
			}
		}

	case key.Matches(msg, a.keys.Open):
		if record := a.selected(); record != nil {
			browser.Open(record.URL)
			a.setStatus("opening %s", record.Name)
		}
	}

	return a, nil
}

// updateFilter handles keys while the filter input is focused. The keyword
// applies live and every change resets the page cursor to 1.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Drop the filter entirely
		a.keyword = ""
		a.page = 1
		a.filterInput.Reset()
		a.filterInput.Blur()
		a.mode = modeBrowse
		a.derive()
		return a, nil

	case tea.KeyEnter:
		// Keep the filter and go back to the list
		a.filterInput.Blur()
		a.mode = modeBrowse
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)

	if value := a.filterInput.Value(); value != a.keyword {
		a.keyword = value
		a.page = 1
		a.cursor = 0
		a.derive()
	}
	return a, cmd
}

// updateConfirmDelete handles the delete confirmation prompt.
func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if record := a.selected(); record != nil {
			if err := a.dir.Delete(record.ID); err != nil {
				a.setError(err)
			} else {
				a.setStatus("deleted %s", record.Name)
				a.reload()
			}
		}
		a.mode = modeBrowse
	case "n", "esc", "q":
		a.mode = modeBrowse
	}
	return a, nil
}
