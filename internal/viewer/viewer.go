// Package viewer composes the profile, repository and commit lookups into
// the screen state of the profile viewer.
package viewer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/audi70r/ghprofile/internal/config"
	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/lookup"
	"github.com/audi70r/ghprofile/internal/stats"
)

// Source is the read side of the GitHub API used by the viewer
type Source interface {
	User(ctx context.Context, login string) (*github.User, error)
	Repos(ctx context.Context, login string) ([]github.Repository, error)
	Commits(ctx context.Context, owner, repo string) ([]github.Commit, error)
	CommitActivity(ctx context.Context, owner, repo string) ([]github.WeeklyActivity, error)
}

// RepoKey identifies the repository whose commits are shown
type RepoKey struct {
	Owner string
	Name  string
}

func (k RepoKey) String() string {
	return k.Owner + "/" + k.Name
}

func (k RepoKey) empty() bool {
	return k.Owner == "" || k.Name == ""
}

// Options configures a Viewer
type Options struct {
	Mode          config.CommitMode
	RecentWeeks   int
	RecentCommits int
	Timeout       time.Duration

	// Dispatch runs request completions, see lookup.Options
	Dispatch func(func())
	// OnChange is called after any lookup changes state
	OnChange func()
	Logger   logrus.FieldLogger
}

// Viewer owns the three lookups and the repository selection
type Viewer struct {
	mode          config.CommitMode
	recentWeeks   int
	recentCommits int
	log           logrus.FieldLogger

	user     *lookup.Lookup[string, *github.User]
	repos    *lookup.Lookup[string, []github.Repository]
	commits  *lookup.Lookup[RepoKey, []github.Commit]
	activity *lookup.Lookup[RepoKey, []github.WeeklyActivity]

	mu       sync.Mutex
	username string
	selected *github.Repository
}

// New creates a viewer reading from src
func New(src Source, opts Options) *Viewer {
	v := &Viewer{
		mode:          opts.Mode,
		recentWeeks:   opts.RecentWeeks,
		recentCommits: opts.RecentCommits,
		log:           opts.Logger,
	}
	if v.mode == "" {
		v.mode = config.CommitModeList
	}
	if v.log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		v.log = logger
	}

	base := lookup.Options[string]{
		Dispatch: opts.Dispatch,
		OnChange: opts.OnChange,
		Timeout:  opts.Timeout,
		Logger:   v.log,
	}
	repoOpts := lookup.Options[RepoKey]{
		Skip:     RepoKey.empty,
		Dispatch: opts.Dispatch,
		OnChange: opts.OnChange,
		Timeout:  opts.Timeout,
		Logger:   v.log,
	}

	v.user = lookup.New[string, *github.User]("user", src.User, base)
	v.repos = lookup.New[string, []github.Repository]("repos", src.Repos, base)
	v.commits = lookup.New[RepoKey, []github.Commit]("commits", func(ctx context.Context, k RepoKey) ([]github.Commit, error) {
		return src.Commits(ctx, k.Owner, k.Name)
	}, repoOpts)
	v.activity = lookup.New[RepoKey, []github.WeeklyActivity]("activity", func(ctx context.Context, k RepoKey) ([]github.WeeklyActivity, error) {
		return src.CommitActivity(ctx, k.Owner, k.Name)
	}, repoOpts)

	return v
}

// Mode returns the commit data shape this viewer charts
func (v *Viewer) Mode() config.CommitMode {
	return v.mode
}

// Submit searches for username. Surrounding whitespace is ignored; an empty
// name clears the screen without issuing requests. The selection is cleared.
func (v *Viewer) Submit(username string) {
	username = strings.TrimSpace(username)

	v.mu.Lock()
	v.username = username
	v.selected = nil
	v.mu.Unlock()

	v.log.WithField("user", username).Info("search submitted")

	v.commitLookupReset()
	v.user.Set(username)
	v.repos.Set(username)
}

// Select shows the commits of repo, discarding any previous commit data.
// Selecting the current repository again re-issues the request.
func (v *Viewer) Select(repo github.Repository) {
	v.mu.Lock()
	if v.username == "" {
		v.mu.Unlock()
		return
	}
	v.selected = &repo
	key := RepoKey{Owner: v.username, Name: repo.Name}
	v.mu.Unlock()

	v.log.WithField("repo", key).Info("repository selected")

	if v.mode == config.CommitModeActivity {
		v.activity.Set(key)
	} else {
		v.commits.Set(key)
	}
}

// RetryCommits re-issues the commit request of the selected repository
func (v *Viewer) RetryCommits() {
	v.mu.Lock()
	selected := v.selected
	v.mu.Unlock()

	if selected != nil {
		v.Select(*selected)
	}
}

// RetryRepos re-issues the repository request, keeping the profile and selection
func (v *Viewer) RetryRepos() {
	v.repos.Retry()
}

// RetryUser re-submits the current username
func (v *Viewer) RetryUser() {
	v.mu.Lock()
	username := v.username
	v.mu.Unlock()

	v.Submit(username)
}

func (v *Viewer) commitLookupReset() {
	if v.mode == config.CommitModeActivity {
		v.activity.Reset()
	} else {
		v.commits.Reset()
	}
}

// Snapshot derives the current screen state
func (v *Viewer) Snapshot() Screen {
	v.mu.Lock()
	screen := Screen{Username: v.username}
	if v.selected != nil {
		selected := *v.selected
		screen.Selected = &selected
	}
	v.mu.Unlock()

	us := v.user.State()
	switch {
	case us.Loading:
		screen.Phase = PhaseLoadingUser
	case us.Err != nil:
		screen.Phase = PhaseUserError
		screen.UserErr = us.Err
	case us.Data != nil:
		screen.Phase = PhaseUserLoaded
		screen.User = us.Data
	default:
		screen.Phase = PhaseNoInput
	}

	rs := v.repos.State()
	screen.Repos = rs.Data
	screen.ReposLoading = rs.Loading
	screen.ReposErr = rs.Err

	screen.Commits = v.commitPanel(screen.Username, screen.Selected)
	return screen
}

func (v *Viewer) commitPanel(username string, selected *github.Repository) CommitPanel {
	panel := CommitPanel{Mode: v.mode}
	if selected == nil {
		panel.Phase = CommitsNoSelection
		return panel
	}
	want := RepoKey{Owner: username, Name: selected.Name}

	var (
		key     RepoKey
		loading bool
		err     error
	)
	if v.mode == config.CommitModeActivity {
		var state lookup.State[[]github.WeeklyActivity]
		key, state = v.activity.Current()
		panel.Request = v.activity.Generation()
		loading, err = state.Loading, state.Err
		panel.Items = len(state.Data)
		panel.Series = stats.RecentWeeks(state.Data, v.recentWeeks)
	} else {
		var state lookup.State[[]github.Commit]
		key, state = v.commits.Current()
		panel.Request = v.commits.Generation()
		loading, err = state.Loading, state.Err
		panel.Items = len(state.Data)
		panel.Series = stats.DailyCommits(state.Data)
		panel.Recent = stats.RecentCommits(state.Data, v.recentCommits)
	}

	switch {
	case key != want || loading:
		// never show data that belongs to another repository
		panel = CommitPanel{Phase: CommitsLoading, Mode: v.mode, Request: panel.Request}
	case err != nil:
		panel = CommitPanel{Phase: CommitsError, Mode: v.mode, Err: err, Request: panel.Request}
	case panel.Series.Total() == 0:
		panel.Phase = CommitsEmpty
	default:
		panel.Phase = CommitsChart
	}
	return panel
}
