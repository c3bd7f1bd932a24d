package views

import (
	"github.com/rivo/tview"
)

// MessageView displays the centered full-screen states: prompt, loading and errors
type MessageView struct {
	root   *tview.Flex
	title  *tview.TextView
	detail *tview.TextView
}

// NewMessageView creates a new message view
func NewMessageView() *MessageView {
	m := &MessageView{}
	m.setup()
	return m
}

func (m *MessageView) setup() {
	m.title = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	m.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetTextAlign(tview.AlignCenter)

	content := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(m.title, 2, 0, false).
		AddItem(m.detail, 3, 0, false).
		AddItem(nil, 0, 1, false)

	// Center the message area
	m.root = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(content, 70, 0, false).
		AddItem(nil, 0, 1, false)
	m.root.SetBorder(true)

	m.ShowPrompt()
}

// ShowPrompt shows the no-input state
func (m *MessageView) ShowPrompt() {
	m.title.SetText("[::b]Enter a GitHub username to begin[-:-:-]")
	m.detail.SetText("[gray]View user profiles, repositories, and analyze commit data with visual charts.[-]")
}

// ShowLoading shows a pending request
func (m *MessageView) ShowLoading(status string) {
	m.title.SetText("[yellow]⠿ " + tview.Escape(status) + "[-]")
	m.detail.SetText("")
}

// ShowError shows a failed request with a hint on how to recover
func (m *MessageView) ShowError(msg, hint string) {
	m.title.SetText("[red::b]✗ " + tview.Escape(msg) + "[-:-:-]")
	m.detail.SetText("[gray]" + tview.Escape(hint) + "[-]")
}

// GetFocusable returns the component that receives keys on the message page
func (m *MessageView) GetFocusable() tview.Primitive {
	return m.root
}

// Root returns the root primitive
func (m *MessageView) Root() tview.Primitive {
	return m.root
}
