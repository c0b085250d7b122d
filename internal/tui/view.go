package tui

import (
	"fmt"
	"strings"

	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/tags"
)

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("webdir"))
	b.WriteString("\n\n")

	switch a.mode {
	case modeAdd, modeEdit:
		b.WriteString(a.viewForm())
	case modeConfirmDelete:
		b.WriteString(a.viewList())
		b.WriteString("\n")
		if record := a.selected(); record != nil {
			prompt := fmt.Sprintf("delete %q? (y/n)", record.Name)
			b.WriteString(a.styles.StatusError.Render(prompt))
		}
	default:
		b.WriteString(a.viewList())
	}

	b.WriteString("\n")
	b.WriteString(a.viewFooter())

	return a.styles.App.Render(b.String())
}

func (a App) viewList() string {
	if a.loadErr != nil {
		return a.styles.StatusError.Render("load failed: " + a.loadErr.Error())
	}

	var b strings.Builder

	if a.mode == modeFilter {
		b.WriteString(a.styles.Keyword.Render("/"))
		b.WriteString(a.filterInput.View())
		b.WriteString("\n\n")
	} else if a.keyword != "" {
		b.WriteString(a.styles.Keyword.Render("filter: " + a.keyword))
		b.WriteString("\n\n")
	}

	if len(a.result.Items) == 0 {
		if a.keyword != "" {
			b.WriteString(a.styles.Empty.Render("no bookmarks match"))
		} else {
			b.WriteString(a.styles.Empty.Render("no bookmarks yet, press 'a' to add one"))
		}
		return b.String()
	}

	for i, record := range a.result.Items {
		line := a.renderItem(record)
		if i == a.cursor && a.mode != modeFilter {
			b.WriteString(a.styles.ItemSelected.Render(line))
		} else {
			b.WriteString(a.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Pagination.Render(fmt.Sprintf(
		"page %d/%d · %d of %d bookmarks",
		a.result.CurrentPage, a.result.TotalPages,
		a.result.TotalFiltered, a.result.TotalUnfiltered,
	)))

	return b.String()
}

func (a App) renderItem(record model.BookmarkRecord) string {
	var b strings.Builder
	b.WriteString(record.Name)
	b.WriteString("  ")
	b.WriteString(a.styles.URL.Render(record.URL))
	if len(record.Tags) > 0 {
		b.WriteString("  ")
		b.WriteString(a.styles.Tag.Render("[" + tags.Join(record.Tags) + "]"))
	}
	b.WriteString("  ")
	b.WriteString(a.styles.Date.Render(model.FormatTime(record.CreatedAt)))
	return b.String()
}

func (a App) viewForm() string {
	var b strings.Builder

	title := "add bookmark"
	if a.mode == modeEdit {
		title = fmt.Sprintf("edit bookmark #%d", a.form.editID)
	}
	b.WriteString(a.styles.FormTitle.Render(title))
	b.WriteString("\n\n")

	for i, input := range a.form.inputs {
		b.WriteString(a.styles.FormLabel.Render(fmt.Sprintf("%-8s", a.form.labels[i])))
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("tab: next field · enter: save · esc: cancel"))

	return b.String()
}

func (a App) viewFooter() string {
	var b strings.Builder

	if a.status != "" {
		style := a.styles.Status
		if a.statusErr {
			style = a.styles.StatusError
		}
		b.WriteString(style.Render(a.status))
		b.WriteString("\n")
	}

	if a.mode == modeBrowse {
		b.WriteString(a.styles.Help.Render(
			"j/k: move · h/l: page · /: filter · a: add · e: edit · d: delete · Y: yank · o: open · q: quit",
		))
	}

	return b.String()
}
