package ghost

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ghost-archiver/internal/model"
)

// maxPageSize is the largest page the Ghost Content API serves per call.
const maxPageSize = 100

// Client is a minimal Ghost Content API client.
// Docs: https://ghost.org/docs/content-api/
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a client for the blog at baseURL (e.g. "https://blog.example.com").
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Source returns the base URL the client was built with, used as the
// source label in dump metadata and sync bookkeeping.
func (c *Client) Source() string {
	return c.baseURL
}

type postsResponse struct {
	Posts []model.Post `json:"posts"`
}

// AllPosts pages through the posts endpoint and returns up to limit posts
// in API order (limit <= 0 fetches everything). Pagination is strictly
// sequential: it stops on an empty page, a short page, or when limit is
// reached, and any transport error or non-2xx status aborts the whole fetch.
func (c *Client) AllPosts(ctx context.Context, limit int) ([]model.Post, error) {
	perPage := maxPageSize
	if limit > 0 && limit < perPage {
		perPage = limit
	}

	var all []model.Post
	for page := 1; ; page++ {
		size := perPage
		if limit > 0 {
			if remaining := limit - len(all); remaining < size {
				size = remaining
			}
		}
		posts, err := c.postsPage(ctx, page, size)
		if err != nil {
			return nil, err
		}
		if len(posts) == 0 {
			slog.Info("ghost: no more posts", "page", page)
			break
		}
		all = append(all, posts...)
		slog.Info("ghost: fetched page", "page", page, "count", len(posts), "total", len(all))
		if len(posts) < size {
			slog.Info("ghost: last page reached", "page", page)
			break
		}
		if limit > 0 && len(all) >= limit {
			slog.Info("ghost: limit reached", "limit", limit)
			break
		}
	}
	slog.Info("ghost: fetch complete", "total", len(all))
	return all, nil
}

// postsPage fetches one page of posts.
// API: GET /ghost/api/content/posts/?key=...&page=N&limit=M&include=tags,authors&formats=html
func (c *Client) postsPage(ctx context.Context, page, limit int) ([]model.Post, error) {
	endpoint := c.baseURL + "/ghost/api/content/posts/"
	q := url.Values{
		"key":     {c.apiKey},
		"page":    {strconv.Itoa(page)},
		"limit":   {strconv.Itoa(limit)},
		"include": {"tags,authors"},
		"formats": {"html"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ghost-archiver/1.0")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ghost: page %d status %d", page, resp.StatusCode)
	}
	var raw postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ghost: decode page %d: %w", page, err)
	}
	return raw.Posts, nil
}
