package views

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SearchView is the username input
type SearchView struct {
	root     *tview.Flex
	input    *tview.InputField
	hint     *tview.TextView
	onSubmit func(username string)
}

// NewSearchView creates a new search view; onSubmit receives trimmed, non-empty names
func NewSearchView(onSubmit func(string)) *SearchView {
	s := &SearchView{onSubmit: onSubmit}
	s.setup()
	return s
}

func (s *SearchView) setup() {
	s.input = tview.NewInputField().
		SetLabel(" Username: ").
		SetPlaceholder("Enter GitHub username").
		SetFieldWidth(40)

	s.input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			s.submit()
		}
	})

	s.hint = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)

	s.root = tview.NewFlex().
		AddItem(s.input, 0, 2, true).
		AddItem(s.hint, 0, 1, false)
	s.root.SetBorder(true).SetTitle(" Search ")

	s.SetLoading(false)
}

func (s *SearchView) submit() {
	username := strings.TrimSpace(s.input.GetText())
	if username == "" {
		return
	}
	s.onSubmit(username)
}

// SetLoading switches the hint between the search affordance and the in-flight marker
func (s *SearchView) SetLoading(loading bool) {
	if loading {
		s.hint.SetText("[yellow]Loading...[-] ")
		return
	}
	s.hint.SetText("[gray]Enter[-] Search ")
}

// SetText replaces the input contents
func (s *SearchView) SetText(text string) {
	s.input.SetText(text)
}

// Root returns the root primitive
func (s *SearchView) Root() tview.Primitive {
	return s.root
}

// GetFocusable returns the focusable component
func (s *SearchView) GetFocusable() tview.Primitive {
	return s.input
}
