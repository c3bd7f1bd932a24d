package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/viewer"
)

// ReposView lists the user's repositories in API order
type ReposView struct {
	table    *tview.Table
	columns  []string
	repos    []github.Repository
	onSelect func(github.Repository)
}

// NewReposView creates a new repository list; onSelect fires on Enter
func NewReposView(onSelect func(github.Repository)) *ReposView {
	v := &ReposView{
		columns:  []string{"", "Repository", "Language", "★", "Forks", "Updated"},
		onSelect: onSelect,
	}
	v.setup()
	return v
}

func (v *ReposView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')
	v.table.SetBorder(true).SetTitle(" Repositories ")

	v.table.SetSelectedFunc(func(row, column int) {
		idx := row - 1
		if idx >= 0 && idx < len(v.repos) && v.onSelect != nil {
			v.onSelect(v.repos[idx])
		}
	})

	v.renderHeader()
}

func (v *ReposView) renderHeader() {
	for col, name := range v.columns {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh updates the list from the screen state
func (v *ReposView) Refresh(s viewer.Screen) {
	v.table.Clear()
	v.renderHeader()

	switch {
	case s.ReposLoading:
		v.repos = nil
		v.table.SetTitle(" Repositories ")
		v.setMessage("Loading repositories...", tcell.ColorYellow)
		return
	case s.ReposErr != nil:
		v.repos = nil
		v.table.SetTitle(" Repositories ")
		v.setMessage(s.ReposErr.Error(), tcell.ColorRed)
		return
	}

	v.repos = s.Repos
	v.table.SetTitle(fmt.Sprintf(" Repositories (%d) ", len(s.Repos)))

	if len(s.Repos) == 0 {
		v.setMessage("No repositories found.", tcell.ColorGray)
		return
	}

	for i, repo := range s.Repos {
		row := i + 1
		marker, nameColor := " ", tcell.ColorWhite
		if s.IsSelected(repo) {
			marker, nameColor = "▶", tcell.ColorDarkCyan
		}

		name := repo.Name
		if repo.Fork {
			name += " (fork)"
		}

		v.table.SetCell(row, 0, tview.NewTableCell(marker).
			SetTextColor(tcell.ColorDarkCyan))

		v.table.SetCell(row, 1, tview.NewTableCell(tview.Escape(name)).
			SetTextColor(nameColor).
			SetExpansion(1))

		v.table.SetCell(row, 2, tview.NewTableCell(tview.Escape(repo.Language)).
			SetTextColor(tcell.ColorBlue))

		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", repo.Stars)).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", repo.Forks)).
			SetAlign(tview.AlignRight))

		updated := ""
		if !repo.UpdatedAt.IsZero() {
			updated = repo.UpdatedAt.Format("2006-01-02")
		}
		v.table.SetCell(row, 5, tview.NewTableCell(updated).
			SetTextColor(tcell.ColorDarkGray))
	}
}

func (v *ReposView) setMessage(msg string, color tcell.Color) {
	v.table.SetCell(1, 1, tview.NewTableCell(tview.Escape(msg)).
		SetTextColor(color).
		SetSelectable(false).
		SetExpansion(1))
}

// Root returns the root primitive
func (v *ReposView) Root() tview.Primitive {
	return v.table
}

// GetFocusable returns the focusable component
func (v *ReposView) GetFocusable() tview.Primitive {
	return v.table
}
