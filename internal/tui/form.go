package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/tags"
)

// formState holds the add/edit form inputs. The created input only exists in
// edit mode, where a non-empty value overrides the record's timestamp.
type formState struct {
	inputs  []textinput.Model
	labels  []string
	focus   int
	editing bool
	editID  int64
}

func newFormState(editing bool) formState {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 128
	name.Width = 40
	name.Focus()

	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = 512
	url.Width = 40

	tagsInput := textinput.New()
	tagsInput.Placeholder = "comma, separated, tags"
	tagsInput.CharLimit = 256
	tagsInput.Width = 40

	form := formState{
		inputs:  []textinput.Model{name, url, tagsInput},
		labels:  []string{"name", "url", "tags"},
		editing: editing,
	}

	if editing {
		created := textinput.New()
		created.Placeholder = model.TimeLayout
		created.CharLimit = 16
		created.Width = 40
		form.inputs = append(form.inputs, created)
		form.labels = append(form.labels, "created")
	}

	return form
}

// fill pre-populates the form from an existing record.
func (f *formState) fill(record model.BookmarkRecord) {
	f.editID = record.ID
	f.inputs[0].SetValue(record.Name)
	f.inputs[1].SetValue(record.URL)
	f.inputs[2].SetValue(tags.Join(record.Tags))
	if f.editing {
		f.inputs[3].SetValue(model.FormatTime(record.CreatedAt))
	}
}

func (f *formState) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formState) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *formState) draft() model.Draft {
	return model.Draft{
		Name: f.inputs[0].Value(),
		URL:  f.inputs[1].Value(),
		Tags: tags.Normalize(f.inputs[2].Value()),
	}
}

func (f *formState) patch() model.Patch {
	return model.Patch{
		Name:      f.inputs[0].Value(),
		URL:       f.inputs[1].Value(),
		Tags:      tags.Normalize(f.inputs[2].Value()),
		CreatedAt: f.inputs[3].Value(),
	}
}

// updateForm handles keys while the add or edit form is open. Enter submits
// from any field; validation failures keep the form open with the error in
// the status line.
func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = modeBrowse
		a.status = ""
		return a, nil

	case tea.KeyTab, tea.KeyDown:
		a.form.next()
		return a, nil

	case tea.KeyShiftTab, tea.KeyUp:
		a.form.prev()
		return a, nil

	case tea.KeyEnter:
		return a.submitForm()
	}

	var cmd tea.Cmd
	a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(msg)
	return a, cmd
}

func (a App) submitForm() (tea.Model, tea.Cmd) {
	if a.mode == modeEdit {
		if err := a.dir.Update(a.form.editID, a.form.patch()); err != nil {
			a.setError(err)
			return a, nil
		}
		a.setStatus("updated %s", a.form.inputs[0].Value())
	} else {
		draft := a.form.draft()
		if _, err := a.dir.Create(draft); err != nil {
			a.setError(err)
			return a, nil
		}
		a.setStatus("added %s", draft.Name)
	}

	a.mode = modeBrowse
	a.reload()
	return a, nil
}
