package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v63/github"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	// MaxPageSize is the largest page the REST API serves
	MaxPageSize = 100

	defaultUserAgent = "ghprofile/0.1"
)

var (
	// ErrUserNotFound is returned when the profile lookup answers 404
	ErrUserNotFound = errors.New("User not found")
	// ErrStatsPending is returned while GitHub is still computing repository statistics
	ErrStatsPending = errors.New("commit statistics are still being computed, retry shortly")
)

// StatusError is a non-2xx answer from the API
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API error: %d %s", e.Code, http.StatusText(e.Code))
}

// Options configures a Client
type Options struct {
	BaseURL        string // defaults to https://api.github.com/
	Token          string // optional; requests are unauthenticated when empty
	UserAgent      string
	RepoPageSize   int
	CommitPageSize int
	HTTPClient     *http.Client
}

// Client reads profiles, repositories and commits from the GitHub REST API
type Client struct {
	api            *gogithub.Client
	log            logrus.FieldLogger
	repoPageSize   int
	commitPageSize int
}

// NewClient creates a new API client
func NewClient(opts Options, log logrus.FieldLogger) (*Client, error) {
	httpClient := opts.HTTPClient
	if opts.Token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		))
	}

	api := gogithub.NewClient(httpClient)
	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid API base URL %q", opts.BaseURL)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		api.BaseURL = base
	}

	api.UserAgent = defaultUserAgent
	if opts.UserAgent != "" {
		api.UserAgent = opts.UserAgent
	}

	return &Client{
		api:            api,
		log:            log,
		repoPageSize:   pageSize(opts.RepoPageSize),
		commitPageSize: pageSize(opts.CommitPageSize),
	}, nil
}

func pageSize(n int) int {
	if n <= 0 || n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// User fetches the profile of login
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	c.log.WithField("user", login).Debug("fetching profile")

	u, resp, err := c.api.Users.Get(ctx, login)
	if err != nil {
		if statusCode(resp) == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, c.classify(resp, err, "fetch user")
	}

	return convertUser(u), nil
}

// Repos fetches one page of login's repositories, most recently updated first
func (c *Client) Repos(ctx context.Context, login string) ([]Repository, error) {
	c.log.WithField("user", login).Debug("fetching repositories")

	opts := &gogithub.RepositoryListByUserOptions{
		Sort: "updated",
		ListOptions: gogithub.ListOptions{
			PerPage: c.repoPageSize,
		},
	}

	repos, resp, err := c.api.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		return nil, c.classify(resp, err, "list repositories")
	}

	if len(repos) > c.repoPageSize {
		repos = repos[:c.repoPageSize]
	}

	result := make([]Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, convertRepository(r))
	}
	return result, nil
}

// Commits fetches the most recent commits of owner/repo, newest first
func (c *Client) Commits(ctx context.Context, owner, repo string) ([]Commit, error) {
	logger := c.log.WithField("repo", owner+"/"+repo)
	logger.Debug("fetching commits")

	opts := &gogithub.CommitsListOptions{
		ListOptions: gogithub.ListOptions{
			PerPage: c.commitPageSize,
		},
	}

	commits, resp, err := c.api.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, c.classify(resp, err, "list commits")
	}

	if len(commits) > c.commitPageSize {
		commits = commits[:c.commitPageSize]
	}

	result := make([]Commit, 0, len(commits))
	for _, rc := range commits {
		result = append(result, convertCommit(rc))
	}

	logger.WithField("count", len(result)).Debug("received commits")
	return result, nil
}

// CommitActivity fetches the last year of weekly commit totals of owner/repo, oldest first
func (c *Client) CommitActivity(ctx context.Context, owner, repo string) ([]WeeklyActivity, error) {
	c.log.WithField("repo", owner+"/"+repo).Debug("fetching commit activity")

	weeks, resp, err := c.api.Repositories.ListCommitActivity(ctx, owner, repo)
	if err != nil {
		return nil, c.classify(resp, err, "list commit activity")
	}

	result := make([]WeeklyActivity, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, convertWeek(w))
	}
	return result, nil
}

// classify maps a go-github failure onto the error taxonomy of this package
func (c *Client) classify(resp *gogithub.Response, err error, op string) error {
	var accepted *gogithub.AcceptedError
	if errors.As(err, &accepted) {
		return ErrStatsPending
	}

	if code := statusCode(resp); code != 0 && (code < 200 || code > 299) {
		c.log.WithFields(logrus.Fields{"op": op, "status": code}).Warn("API request rejected")
		return &StatusError{Code: code}
	}

	c.log.WithField("op", op).WithError(err).Warn("API request failed")
	return errors.Wrap(err, op)
}

func statusCode(resp *gogithub.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

func convertUser(u *gogithub.User) *User {
	return &User{
		ID:          u.GetID(),
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Bio:         u.GetBio(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

func convertRepository(r *gogithub.Repository) Repository {
	return Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		HTMLURL:     r.GetHTMLURL(),
		Description: r.GetDescription(),
		Fork:        r.GetFork(),
		Stars:       r.GetStargazersCount(),
		Watchers:    r.GetWatchersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.GetLanguage(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}

func convertCommit(rc *gogithub.RepositoryCommit) Commit {
	inner := rc.GetCommit()
	c := Commit{
		SHA:     rc.GetSHA(),
		Message: inner.GetMessage(),
		HTMLURL: rc.GetHTMLURL(),
		Author: Identity{
			Name:  inner.GetAuthor().GetName(),
			Email: inner.GetAuthor().GetEmail(),
			Date:  inner.GetAuthor().GetDate().Time,
		},
		Committer: Identity{
			Name:  inner.GetCommitter().GetName(),
			Email: inner.GetCommitter().GetEmail(),
			Date:  inner.GetCommitter().GetDate().Time,
		},
	}

	if rc.Author != nil {
		c.Account = &Account{
			Login:     rc.Author.GetLogin(),
			AvatarURL: rc.Author.GetAvatarURL(),
		}
	}
	return c
}

func convertWeek(w *gogithub.WeeklyCommitActivity) WeeklyActivity {
	week := WeeklyActivity{
		Week:  w.GetWeek().Time,
		Total: w.GetTotal(),
	}
	copy(week.Days[:], w.Days)
	return week
}
