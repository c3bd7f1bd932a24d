package ui

import (
	"github.com/rivo/tview"

	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/ui/views"
	"github.com/audi70r/ghprofile/internal/viewer"
)

// MainView composes the loaded-user screen: profile and repositories on the
// left, the commit panel on the right
type MainView struct {
	root        *tview.Flex
	profileView *views.ProfileView
	reposView   *views.ReposView
	commitsView *views.CommitsView
}

// NewMainView creates the loaded-user layout
func NewMainView(debug bool, onSelect func(github.Repository)) *MainView {
	m := &MainView{
		profileView: views.NewProfileView(),
		reposView:   views.NewReposView(onSelect),
		commitsView: views.NewCommitsView(debug),
	}

	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.profileView.Root(), 8, 0, false).
		AddItem(m.reposView.Root(), 0, 1, true)

	m.root = tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(m.commitsView.Root(), 0, 1, false)

	return m
}

// Refresh redraws every section from s
func (m *MainView) Refresh(s viewer.Screen) {
	m.profileView.Refresh(s.User)
	m.reposView.Refresh(s)
	m.commitsView.Refresh(s)
}

// Root returns the root primitive
func (m *MainView) Root() tview.Primitive {
	return m.root
}

// GetFocusable returns the repository table
func (m *MainView) GetFocusable() tview.Primitive {
	return m.reposView.GetFocusable()
}
