package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/audi70r/ghprofile/internal/config"
	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/ui/components"
	"github.com/audi70r/ghprofile/internal/viewer"
)

const (
	chartWidth     = 40
	sparklineWidth = 60
	separator      = "[yellow]━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━[-]"
)

// CommitsView displays the chart and recent commits of the selected repository
type CommitsView struct {
	text  *tview.TextView
	debug bool
}

// NewCommitsView creates a new commit panel; debug appends the lookup status block
func NewCommitsView(debug bool) *CommitsView {
	v := &CommitsView{debug: debug}
	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	v.text.SetBorder(true).SetTitle(" Commits ")
	return v
}

// Refresh updates the panel from the screen state
func (v *CommitsView) Refresh(s viewer.Screen) {
	if s.Selected == nil {
		v.text.SetTitle(" Commits ")
	} else {
		v.text.SetTitle(" " + tview.Escape(s.Selected.Name) + " ")
	}
	v.text.SetText(FormatCommitPanel(s, v.debug))
	v.text.ScrollToBeginning()
}

// FormatCommitPanel renders the nested commit state of s
func FormatCommitPanel(s viewer.Screen, debug bool) string {
	var sb strings.Builder
	panel := s.Commits

	switch panel.Phase {
	case viewer.CommitsNoSelection:
		sb.WriteString("\n  [gray]Select a repository to view commit data[-]\n")

	case viewer.CommitsLoading:
		sb.WriteString("\n  [yellow]⠿ Loading commit data...[-]\n")

	case viewer.CommitsError:
		sb.WriteString(fmt.Sprintf("\n  [red]Error loading commits: %s[-]\n", tview.Escape(panel.Err.Error())))
		sb.WriteString("\n  [yellow]r[-] Retry\n")

	case viewer.CommitsEmpty:
		sb.WriteString("\n  [orange]No commits found for this repository.[-]\n")
		sb.WriteString("  [gray]This repository might be empty or recently created.[-]\n")

	case viewer.CommitsChart:
		writeChart(&sb, panel)
		if len(panel.Recent) > 0 {
			sb.WriteString("\n" + separator + "\n\n")
			writeRecent(&sb, panel.Recent)
		}
	}

	if debug {
		sb.WriteString("\n" + separator + "\n\n")
		writeDebug(&sb, s)
	}
	return sb.String()
}

func writeChart(sb *strings.Builder, panel viewer.CommitPanel) {
	title := "Daily Commits"
	if panel.Mode == config.CommitModeActivity {
		title = "Weekly Commits"
	}
	sb.WriteString(fmt.Sprintf("  [::b]%s[-:-:-]\n\n", title))

	for _, line := range strings.Split(strings.TrimRight(components.RenderBarChart(panel.Series, chartWidth), "\n"), "\n") {
		sb.WriteString("  " + line + "\n")
	}

	sb.WriteString("\n  " + components.RenderSparklineColored(panel.Series.Values(), sparklineWidth, "green") + "\n\n")

	peak, _ := panel.Series.Peak()
	sb.WriteString(fmt.Sprintf("  Total: [cyan]%d[-]   Average: [cyan]%.2f[-]   Peak: [green]%d[-] on [green]%s[-]\n",
		panel.Series.Total(), panel.Series.Average(), peak.Count, peak.Label))
}

func writeRecent(sb *strings.Builder, commits []github.Commit) {
	sb.WriteString("  [::b]Recent Commits[-:-:-]\n\n")
	for _, c := range commits {
		sb.WriteString(fmt.Sprintf("  [blue]│[-] [yellow]%s[-] %s\n", c.ShortSHA(), tview.Escape(c.Subject())))
		sb.WriteString(fmt.Sprintf("  [blue]│[-]         [gray]%s • %s[-]\n",
			tview.Escape(c.Author.Name), c.Author.Date.Local().Format("2006-01-02")))
	}
}

func writeDebug(sb *strings.Builder, s viewer.Screen) {
	status := "Loaded"
	if s.Commits.Phase == viewer.CommitsLoading {
		status = "Loading..."
	}
	repo := "None selected"
	if s.Selected != nil {
		repo = s.Selected.Name
	}
	errText := "None"
	if s.Commits.Err != nil {
		errText = s.Commits.Err.Error()
	}

	sb.WriteString("  [::b]Commit Debug[-:-:-]\n\n")
	sb.WriteString(fmt.Sprintf("  Status:      %s\n", status))
	sb.WriteString(fmt.Sprintf("  Phase:       %s\n", s.Commits.Phase))
	sb.WriteString(fmt.Sprintf("  Data Count:  %d %s\n", s.Commits.Items, s.Commits.Mode))
	sb.WriteString(fmt.Sprintf("  Repository:  %s\n", tview.Escape(repo)))
	sb.WriteString(fmt.Sprintf("  Request:     #%d\n", s.Commits.Request))
	sb.WriteString(fmt.Sprintf("  Error:       [red]%s[-]\n", tview.Escape(errText)))
}

// Root returns the root primitive
func (v *CommitsView) Root() tview.Primitive {
	return v.text
}
