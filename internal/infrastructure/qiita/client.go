// Package qiita implements the client for Qiita's item API.
package qiita

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domain "github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const itemsPerPage = 100

// Client talks to the Qiita v2 API. Non-success statuses come back as
// RemoteError, anything else as a transport error.
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

type itemResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Tags  []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Body          string    `json:"body"`
	RenderedBody  string    `json:"rendered_body"`
	LikesCount    int       `json:"likes_count"`
	StocksCount   int       `json:"stocks_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListItems fetches the user's articles, up to one page of 100. The token is
// optional; without it private articles and page view counts are unavailable.
func (c *Client) ListItems(ctx context.Context, username, token string) ([]domain.RemoteArticle, error) {
	endpoint := fmt.Sprintf("%s/users/%s/items?page=1&per_page=%d",
		c.baseURL, url.PathEscape(username), itemsPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to Qiita failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("Qiita API returned non-success status",
			"status", resp.StatusCode, "username", username)
		return nil, errors.NewRemoteError(resp.StatusCode, string(body))
	}

	var items []itemResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}

	articles := make([]domain.RemoteArticle, 0, len(items))
	for _, item := range items {
		tags := make([]string, 0, len(item.Tags))
		for _, tag := range item.Tags {
			tags = append(tags, tag.Name)
		}

		articles = append(articles, domain.RemoteArticle{
			ID:            item.ID,
			Title:         item.Title,
			URL:           item.URL,
			Tags:          tags,
			Body:          item.Body,
			RenderedBody:  item.RenderedBody,
			LikesCount:    item.LikesCount,
			StocksCount:   item.StocksCount,
			CommentsCount: item.CommentsCount,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		})
	}

	return articles, nil
}
