package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux, opts Options) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	logger, _ := test.NewNullLogger()
	opts.BaseURL = srv.URL
	client, err := NewClient(opts, logger)
	require.NoError(t, err)
	return client
}

func TestClient_User(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{
			"login": "octocat",
			"id": 583231,
			"avatar_url": "https://avatars.githubusercontent.com/u/583231",
			"html_url": "https://github.com/octocat",
			"name": null,
			"bio": null,
			"public_repos": 8,
			"followers": 100,
			"following": 9,
			"created_at": "2011-01-25T18:44:36Z"
		}`)
	})

	client := newTestClient(t, mux, Options{})
	user, err := client.User(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, int64(583231), user.ID)
	assert.Equal(t, 8, user.PublicRepos)
	assert.Equal(t, "octocat", user.DisplayName())
	assert.Empty(t, user.Bio)
	assert.Equal(t, time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC), user.CreatedAt.UTC())
}

func TestClient_UserNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost-of-nobody", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	client := newTestClient(t, mux, Options{})
	user, err := client.User(context.Background(), "ghost-of-nobody")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_UserServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "boom"}`)
	})

	client := newTestClient(t, mux, Options{})
	_, err := client.User(context.Background(), "octocat")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_TokenIsSent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"login": "octocat"}`)
	})

	client := newTestClient(t, mux, Options{Token: "s3cret"})
	_, err := client.User(context.Background(), "octocat")
	require.NoError(t, err)
}

func TestClient_ReposPreservesOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"id": 3, "name": "Spoon-Knife", "full_name": "octocat/Spoon-Knife", "stargazers_count": 12, "language": "HTML", "updated_at": "2024-03-01T00:00:00Z"},
			{"id": 1, "name": "Hello-World", "full_name": "octocat/Hello-World", "fork": false, "forks_count": 4, "updated_at": "2024-02-01T00:00:00Z"},
			{"id": 2, "name": "linguist", "full_name": "octocat/linguist", "fork": true, "description": "Language savant", "updated_at": "2024-01-01T00:00:00Z"}
		]`)
	})

	client := newTestClient(t, mux, Options{})
	repos, err := client.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 3)

	assert.Equal(t, []string{"Spoon-Knife", "Hello-World", "linguist"},
		[]string{repos[0].Name, repos[1].Name, repos[2].Name})
	assert.Equal(t, 12, repos[0].Stars)
	assert.Equal(t, "HTML", repos[0].Language)
	assert.Equal(t, 4, repos[1].Forks)
	assert.True(t, repos[2].Fork)
	assert.Equal(t, "Language savant", repos[2].Description)
}

func TestClient_ReposNeverExceedPageSize(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/prolific/repos", func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, 0, 120)
		for i := 0; i < 120; i++ {
			items = append(items, fmt.Sprintf(`{"id": %d, "name": "repo-%d"}`, i+1, i))
		}
		fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
	})

	client := newTestClient(t, mux, Options{})
	repos, err := client.Repos(context.Background(), "prolific")
	require.NoError(t, err)
	assert.Len(t, repos, MaxPageSize)
	assert.Equal(t, "repo-0", repos[0].Name)
}

func TestClient_ReposFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	client := newTestClient(t, mux, Options{})
	repos, err := client.Repos(context.Background(), "octocat")
	assert.Nil(t, repos)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
}

func TestClient_Commits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{
				"sha": "7fd1a60b01f91b314f59955a4e4d4e80d8edf11d",
				"html_url": "https://github.com/octocat/Hello-World/commit/7fd1a60",
				"commit": {
					"author": {"name": "The Octocat", "email": "octocat@nowhere.com", "date": "2012-03-06T23:06:50Z"},
					"committer": {"name": "The Octocat", "email": "octocat@nowhere.com", "date": "2012-03-06T23:06:50Z"},
					"message": "Merge pull request #6 from Spaceghost/patch-1\n\nNew line at end of file."
				},
				"author": {"login": "octocat", "avatar_url": "https://avatars.githubusercontent.com/u/583231"}
			},
			{
				"sha": "553c2077f0edc3d5dc5d17262f6aa498e69d6f8e",
				"commit": {
					"author": {"name": "cameronmcefee", "email": "cameron@github.com", "date": "2011-01-26T19:06:08Z"},
					"committer": {"name": "cameronmcefee", "email": "cameron@github.com", "date": "2011-01-26T19:06:08Z"},
					"message": "first commit"
				},
				"author": null
			}
		]`)
	})

	client := newTestClient(t, mux, Options{})
	commits, err := client.Commits(context.Background(), "octocat", "Hello-World")
	require.NoError(t, err)
	require.Len(t, commits, 2)

	first := commits[0]
	assert.Equal(t, "7fd1a60", first.ShortSHA())
	assert.Equal(t, "Merge pull request #6 from Spaceghost/patch-1", first.Subject())
	assert.Equal(t, "The Octocat", first.Author.Name)
	assert.Equal(t, "2012-03-06", first.Author.Date.UTC().Format("2006-01-02"))
	require.NotNil(t, first.Account)
	assert.Equal(t, "octocat", first.Account.Login)

	assert.Nil(t, commits[1].Account)
	assert.Equal(t, "first commit", commits[1].Subject())
}

func TestClient_CommitsFailureCarriesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/empty/commits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message": "Git Repository is empty."}`)
	})

	client := newTestClient(t, mux, Options{})
	commits, err := client.Commits(context.Background(), "octocat", "empty")
	assert.Nil(t, commits)
	require.Error(t, err)
	assert.Equal(t, "GitHub API error: 409 Conflict", err.Error())
}

func TestClient_CommitActivity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/stats/commit_activity", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"days": [0, 3, 26, 20, 39, 1, 0], "total": 89, "week": 1336280400},
			{"days": [1, 0, 0, 0, 0, 0, 2], "total": 3, "week": 1336885200}
		]`)
	})

	client := newTestClient(t, mux, Options{})
	weeks, err := client.CommitActivity(context.Background(), "octocat", "Hello-World")
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	assert.Equal(t, 89, weeks[0].Total)
	assert.Equal(t, [7]int{0, 3, 26, 20, 39, 1, 0}, weeks[0].Days)
	assert.Equal(t, int64(1336280400), weeks[0].Week.Unix())
	assert.Equal(t, 3, weeks[1].Total)
}

func TestClient_CommitActivityPending(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/stats/commit_activity", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{}`)
	})

	client := newTestClient(t, mux, Options{})
	weeks, err := client.CommitActivity(context.Background(), "octocat", "Hello-World")
	assert.Nil(t, weeks)
	assert.ErrorIs(t, err, ErrStatsPending)
}

func TestClient_TransportFailureIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	logger, hook := test.NewNullLogger()
	client, err := NewClient(Options{BaseURL: srv.URL}, logger)
	require.NoError(t, err)

	_, err = client.Repos(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list repositories")

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewClient(Options{BaseURL: "://bad"}, logger)
	assert.Error(t, err)
}
