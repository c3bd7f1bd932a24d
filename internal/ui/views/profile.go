package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/audi70r/ghprofile/internal/github"
)

// ProfileView displays the profile card
type ProfileView struct {
	text *tview.TextView
}

// NewProfileView creates a new profile view
func NewProfileView() *ProfileView {
	v := &ProfileView{}
	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	v.text.SetBorder(true).SetTitle(" Profile ")
	return v
}

// Refresh updates the card with user
func (v *ProfileView) Refresh(user *github.User) {
	if user == nil {
		v.text.SetText("")
		return
	}
	v.text.SetText(FormatProfile(user))
}

// FormatProfile renders the profile card text
func FormatProfile(user *github.User) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(" [::b]%s[-:-:-]  [cyan]@%s[-]\n",
		tview.Escape(user.DisplayName()), tview.Escape(user.Login)))
	sb.WriteString(fmt.Sprintf(" [gray]%s[-]\n", user.HTMLURL))

	if user.Bio != "" {
		sb.WriteString(" " + tview.Escape(strings.TrimSpace(user.Bio)) + "\n")
	}

	sb.WriteString(fmt.Sprintf("\n [yellow]%d[-] Repositories   [yellow]%d[-] Followers   [yellow]%d[-] Following",
		user.PublicRepos, user.Followers, user.Following))

	if !user.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("   [gray]joined %s[-]", user.CreatedAt.Format("2006-01-02")))
	}
	return sb.String()
}

// Root returns the root primitive
func (v *ProfileView) Root() tview.Primitive {
	return v.text
}
