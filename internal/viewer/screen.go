package viewer

import (
	"github.com/pkg/errors"

	"github.com/audi70r/ghprofile/internal/config"
	"github.com/audi70r/ghprofile/internal/github"
	"github.com/audi70r/ghprofile/internal/stats"
)

// Phase is the top-level state of the screen
type Phase int

const (
	PhaseNoInput Phase = iota
	PhaseLoadingUser
	PhaseUserError
	PhaseUserLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseNoInput:
		return "no-input"
	case PhaseLoadingUser:
		return "loading-user"
	case PhaseUserError:
		return "user-error"
	case PhaseUserLoaded:
		return "user-loaded"
	}
	return "unknown"
}

// CommitPhase is the state of the commit panel inside PhaseUserLoaded
type CommitPhase int

const (
	CommitsNoSelection CommitPhase = iota
	CommitsLoading
	CommitsError
	CommitsEmpty
	CommitsChart
)

func (p CommitPhase) String() string {
	switch p {
	case CommitsNoSelection:
		return "no-selection"
	case CommitsLoading:
		return "loading-commits"
	case CommitsError:
		return "commit-error"
	case CommitsEmpty:
		return "commits-empty"
	case CommitsChart:
		return "commits-chart"
	}
	return "unknown"
}

// Screen is an immutable snapshot of everything the UI renders
type Screen struct {
	Username string
	Phase    Phase
	User     *github.User
	UserErr  error

	Repos        []github.Repository
	ReposLoading bool
	ReposErr     error

	Selected *github.Repository
	Commits  CommitPanel
}

// CommitPanel is the derived state of the selected repository
type CommitPanel struct {
	Phase  CommitPhase
	Mode   config.CommitMode
	Err    error
	Series stats.Series
	Recent []github.Commit // empty in activity mode
	Items  int             // commits or weeks received

	// Request counts the commit requests issued or abandoned this session
	Request uint64
}

// NotFound reports whether the profile lookup failed with 404
func (s Screen) NotFound() bool {
	return errors.Is(s.UserErr, github.ErrUserNotFound)
}

// IsSelected reports whether repo is the selected repository
func (s Screen) IsSelected(repo github.Repository) bool {
	return s.Selected != nil && s.Selected.ID == repo.ID
}
