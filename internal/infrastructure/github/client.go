// Package github implements the client for GitHub's read API and the OAuth
// token exchange used to obtain per-account credentials.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domain "github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const (
	acceptJSON = "application/vnd.github.v3+json"
	// Topics and commit search still require their preview media types on
	// API v3.
	acceptTopics       = "application/vnd.github.mercy-preview+json"
	acceptCommitSearch = "application/vnd.github.cloak-preview+json"

	reposPerPage = 100
)

// Client talks to the GitHub read API. All methods classify failures as
// transport errors (returned as plain wrapped errors) or RemoteError for any
// non-success status.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(baseURL string, logger logger.Interface) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type userResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
}

type repoResponse struct {
	Name            string     `json:"name"`
	FullName        string     `json:"full_name"`
	HTMLURL         string     `json:"html_url"`
	Description     *string    `json:"description"`
	Language        *string    `json:"language"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	OpenIssuesCount int        `json:"open_issues_count"`
	WatchersCount   int        `json:"watchers_count"`
	Fork            bool       `json:"fork"`
	Private         bool       `json:"private"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PushedAt        *time.Time `json:"pushed_at"`
}

type topicsResponse struct {
	Names []string `json:"names"`
}

type commitSearchResponse struct {
	TotalCount int `json:"total_count"`
}

// GetUser fetches a user's public profile. An empty token issues the request
// unauthenticated, subject to the provider's anonymous rate limit.
func (c *Client) GetUser(ctx context.Context, username, token string) (*domain.RemoteUser, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username)), token, acceptJSON)
	if err != nil {
		return nil, err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &domain.RemoteUser{
		Login:       resp.Login,
		Name:        resp.Name,
		PublicRepos: resp.PublicRepos,
	}, nil
}

// ListRepositories fetches the user's repositories, up to one page of 100.
func (c *Client) ListRepositories(ctx context.Context, username, token string) ([]domain.RemoteRepo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d", c.baseURL, url.PathEscape(username), reposPerPage)
	body, err := c.get(ctx, endpoint, token, acceptJSON)
	if err != nil {
		return nil, err
	}

	var resp []repoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal repositories: %w", err)
	}

	repos := make([]domain.RemoteRepo, 0, len(resp))
	for _, r := range resp {
		repos = append(repos, domain.RemoteRepo{
			Name:            r.Name,
			FullName:        r.FullName,
			HTMLURL:         r.HTMLURL,
			Description:     derefString(r.Description),
			Language:        derefString(r.Language),
			StargazersCount: r.StargazersCount,
			ForksCount:      r.ForksCount,
			OpenIssuesCount: r.OpenIssuesCount,
			WatchersCount:   r.WatchersCount,
			Fork:            r.Fork,
			Private:         r.Private,
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
			PushedAt:        r.PushedAt,
		})
	}

	return repos, nil
}

// ListLanguages fetches the byte counts per language for one repository.
func (c *Client) ListLanguages(ctx context.Context, fullName, token string) (map[string]int64, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/languages", c.baseURL, fullName), token, acceptJSON)
	if err != nil {
		return nil, err
	}

	languages := map[string]int64{}
	if err := json.Unmarshal(body, &languages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal languages: %w", err)
	}

	return languages, nil
}

// ListTopics fetches the topic tags for one repository.
func (c *Client) ListTopics(ctx context.Context, fullName, token string) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/topics", c.baseURL, fullName), token, acceptTopics)
	if err != nil {
		return nil, err
	}

	var resp topicsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topics: %w", err)
	}

	if resp.Names == nil {
		return []string{}, nil
	}
	return resp.Names, nil
}

// SearchCommitCount returns the provider's approximate total commit count
// authored by the user.
func (c *Client) SearchCommitCount(ctx context.Context, username, token string) (int, error) {
	endpoint := fmt.Sprintf("%s/search/commits?q=author:%s", c.baseURL, url.QueryEscape(username))
	body, err := c.get(ctx, endpoint, token, acceptCommitSearch)
	if err != nil {
		return 0, err
	}

	var resp commitSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to unmarshal commit search result: %w", err)
	}

	return resp.TotalCount, nil
}

// GetAuthenticatedUser resolves the login of the user owning the given
// access token.
func (c *Client) GetAuthenticatedUser(ctx context.Context, token string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/user", token, acceptJSON)
	if err != nil {
		return "", err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal authenticated user: %w", err)
	}

	return resp.Login, nil
}

func (c *Client) get(ctx context.Context, endpoint, token, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", accept)
	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to GitHub failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("GitHub API returned non-success status",
			"status", resp.StatusCode, "endpoint", endpoint)
		return nil, errors.NewRemoteError(resp.StatusCode, string(body))
	}

	return body, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
