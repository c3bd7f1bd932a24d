package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/audi70r/ghprofile/internal/config"
	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/ui/views"
	"github.com/audi70r/ghprofile/internal/viewer"
)

// App represents the main application
type App struct {
	tview  *tview.Application
	pages  *tview.Pages
	config *config.Config
	viewer *viewer.Viewer
	log    logrus.FieldLogger

	// UI components
	header      *tview.TextView
	statusBar   *tview.TextView
	searchView  *views.SearchView
	messageView *views.MessageView
	mainView    *MainView

	screen viewer.Screen
}

// NewApp creates a new application instance reading from src
func NewApp(cfg *config.Config, src viewer.Source, log logrus.FieldLogger) *App {
	app := &App{
		tview:  tview.NewApplication(),
		pages:  tview.NewPages(),
		config: cfg,
		log:    log,
	}

	app.viewer = viewer.New(src, viewer.Options{
		Mode:          cfg.CommitMode,
		RecentWeeks:   cfg.RecentWeeks,
		RecentCommits: cfg.RecentCommits,
		Timeout:       cfg.RequestTimeout,
		// completions are applied on the event loop, like any other UI mutation
		Dispatch: func(fn func()) { app.tview.QueueUpdateDraw(fn) },
		OnChange: app.render,
		Logger:   log,
	})

	app.setupViews()
	app.render()

	if cfg.Username != "" {
		app.searchView.SetText(cfg.Username)
		app.viewer.Submit(cfg.Username)
	}
	return app
}

func (a *App) setupViews() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]GitHub Profile Analyzer[-:-:-] - profiles, repositories and commit histories")
	a.header.SetBackgroundColor(tcell.ColorDarkBlue)

	a.searchView = views.NewSearchView(a.onSubmit)
	a.messageView = views.NewMessageView()
	a.mainView = NewMainView(a.config.Debug, a.onSelectRepo)

	a.pages.AddPage("message", a.messageView.Root(), true, true)
	a.pages.AddPage("main", a.mainView.Root(), true, false)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.statusBar.SetBackgroundColor(tcell.ColorDarkBlue)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.searchView.Root(), 3, 0, true).
		AddItem(a.pages, 0, 1, false).
		AddItem(a.statusBar, 1, 0, false)

	root.SetInputCapture(a.handleInput)
	a.tview.SetRoot(root, true)
	a.tview.SetFocus(a.searchView.GetFocusable())
}

func (a *App) onSubmit(username string) {
	a.viewer.Submit(username)
}

func (a *App) onSelectRepo(repo github.Repository) {
	a.viewer.Select(repo)
}

func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	inSearch := a.tview.GetFocus() == a.searchView.GetFocusable()

	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		a.toggleFocus()
		return nil
	case tcell.KeyEsc:
		if inSearch && a.focusTarget() != nil {
			a.tview.SetFocus(a.focusTarget())
			return nil
		}
	case tcell.KeyCtrlC:
		a.tview.Stop()
		return nil
	}

	if inSearch {
		return event
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.tview.Stop()
		return nil
	case '/':
		a.tview.SetFocus(a.searchView.GetFocusable())
		return nil
	case 'r':
		a.retry()
		return nil
	}

	return event
}

// retry re-issues whichever request failed: commits first, then
// repositories, then the profile. A loaded selection is refetched otherwise.
func (a *App) retry() {
	s := a.screen
	switch {
	case s.Phase == viewer.PhaseUserLoaded && s.Commits.Phase == viewer.CommitsError:
		a.viewer.RetryCommits()
	case s.Phase == viewer.PhaseUserLoaded && s.ReposErr != nil:
		a.viewer.RetryRepos()
	case s.Phase == viewer.PhaseUserLoaded && s.Selected != nil:
		a.viewer.RetryCommits()
	case s.Phase == viewer.PhaseUserError && !s.NotFound():
		a.viewer.RetryUser()
	}
}

// focusTarget returns the page primitive that takes focus outside the search
// field, or nil when the page has nothing to act on
func (a *App) focusTarget() tview.Primitive {
	switch {
	case a.screen.Phase == viewer.PhaseUserLoaded:
		return a.mainView.GetFocusable()
	case a.screen.Phase == viewer.PhaseUserError && !a.screen.NotFound():
		return a.messageView.GetFocusable()
	}
	return nil
}

func (a *App) toggleFocus() {
	target := a.focusTarget()
	if a.tview.GetFocus() == a.searchView.GetFocusable() && target != nil {
		a.tview.SetFocus(target)
		return
	}
	a.tview.SetFocus(a.searchView.GetFocusable())
}

// render draws the current screen state; it runs on the event loop
func (a *App) render() {
	s := a.viewer.Snapshot()
	a.screen = s

	a.searchView.SetLoading(s.Phase == viewer.PhaseLoadingUser)

	switch s.Phase {
	case viewer.PhaseNoInput:
		a.messageView.ShowPrompt()
		a.pages.SwitchToPage("message")
	case viewer.PhaseLoadingUser:
		a.messageView.ShowLoading("Searching for GitHub profile...")
		a.pages.SwitchToPage("message")
	case viewer.PhaseUserError:
		if s.NotFound() {
			a.messageView.ShowError("User not found. Please check the username and try again.", "")
		} else {
			a.messageView.ShowError(s.UserErr.Error(), "press Tab then r to retry")
		}
		a.pages.SwitchToPage("message")
	case viewer.PhaseUserLoaded:
		a.mainView.Refresh(s)
		a.pages.SwitchToPage("main")
	}

	// the focused page may have been replaced
	if focus := a.tview.GetFocus(); focus != a.searchView.GetFocusable() && focus != a.focusTarget() {
		a.tview.SetFocus(a.searchView.GetFocusable())
	}

	a.updateStatusBar()
}

// updateStatusBar shows context-sensitive controls
func (a *App) updateStatusBar() {
	baseControls := "[yellow]Tab[-] Focus  [yellow]/[-] Search  [yellow]q[-] Quit"

	var viewControls string
	switch {
	case a.screen.Phase == viewer.PhaseUserLoaded &&
		(a.screen.Commits.Phase == viewer.CommitsError || a.screen.ReposErr != nil):
		viewControls = "[yellow]↑↓[-] Navigate  [yellow]Enter[-] View commits  [yellow]r[-] Retry  "
	case a.screen.Phase == viewer.PhaseUserLoaded:
		viewControls = "[yellow]↑↓[-] Navigate  [yellow]Enter[-] View commits  "
	case a.screen.Phase == viewer.PhaseUserError && !a.screen.NotFound():
		viewControls = "[yellow]r[-] Retry  "
	}

	a.statusBar.SetText(viewControls + baseControls)
}

// Run starts the application
func (a *App) Run() error {
	if err := a.tview.Run(); err != nil {
		a.log.WithError(err).Error("ui stopped")
		return err
	}
	a.log.Info("quit")
	return nil
}
