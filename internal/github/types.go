package github

import (
	"strings"
	"time"
)

// User is a snapshot of a public GitHub profile
type User struct {
	ID          int64
	Login       string
	Name        string // empty when the profile has no display name
	AvatarURL   string
	HTMLURL     string
	Bio         string
	PublicRepos int
	Followers   int
	Following   int
	CreatedAt   time.Time
}

// DisplayName returns the profile name, or the login when no name is set
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Repository is one entry of a user's repository list
type Repository struct {
	ID          int64
	Name        string
	FullName    string
	HTMLURL     string
	Description string
	Fork        bool
	Stars       int
	Watchers    int
	Forks       int
	Language    string
	UpdatedAt   time.Time
}

// Identity is the git-level author or committer of a commit
type Identity struct {
	Name  string
	Email string
	Date  time.Time
}

// Account is the GitHub account linked to a commit author
type Account struct {
	Login     string
	AvatarURL string
}

// Commit represents a single commit as listed by the API
type Commit struct {
	SHA       string
	Author    Identity
	Committer Identity
	Message   string
	HTMLURL   string
	Account   *Account // nil when the author email is not linked to an account
}

// ShortSHA returns the abbreviated commit hash
func (c *Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Subject returns the first line of the commit message
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// WeeklyActivity is one week of the commit activity summary
type WeeklyActivity struct {
	Week  time.Time // start of the week (Sunday)
	Total int
	Days  [7]int // Sunday first
}
