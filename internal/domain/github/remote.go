package github

import "time"

// RemoteUser is the provider's view of a GitHub user.
type RemoteUser struct {
	Login       string
	Name        string
	PublicRepos int
}

// RemoteRepo is one repository as reported by the provider, normalized at the
// client boundary: nullable strings become empty strings, never sentinels.
type RemoteRepo struct {
	Name            string
	FullName        string
	HTMLURL         string
	Description     string
	Language        string
	StargazersCount int
	ForksCount      int
	OpenIssuesCount int
	WatchersCount   int
	Fork            bool
	Private         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PushedAt        *time.Time
}
