package ghost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"ghost-archiver/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPostsServer serves a fixed dataset the way the Ghost Content API pages
// it: page N with limit M returns records (N-1)*M .. N*M.
func newPostsServer(t *testing.T, total int, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	posts := make([]model.Post, total)
	for i := range posts {
		posts[i] = model.Post{
			ID:    fmt.Sprintf("id-%d", i+1),
			Slug:  fmt.Sprintf("post-%d", i+1),
			Title: fmt.Sprintf("Post %d", i+1),
		}
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		assert.GreaterOrEqual(t, page, 1)
		assert.GreaterOrEqual(t, limit, 1)
		start := (page - 1) * limit
		end := start + limit
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": posts[start:end]})
	}))
}

func TestAllPostsExactLimit(t *testing.T) {
	srv := newPostsServer(t, 12, nil)
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	assert.Equal(t, "id-1", posts[0].ID)
	assert.Equal(t, "id-5", posts[4].ID)
}

func TestAllPostsLimitBeyondAvailable(t *testing.T) {
	srv := newPostsServer(t, 7, nil)
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, posts, 7)
}

func TestAllPostsShortPageTerminates(t *testing.T) {
	var requests atomic.Int32
	srv := newPostsServer(t, 250, &requests)
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, posts, 250)
	// Pages of 100: two full pages plus one short page ends the loop.
	assert.Equal(t, int32(3), requests.Load())
}

func TestAllPostsMultiPageLimit(t *testing.T) {
	srv := newPostsServer(t, 400, nil)
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 150)
	require.NoError(t, err)
	assert.Len(t, posts, 150)
}

func TestAllPostsEmpty(t *testing.T) {
	var requests atomic.Int32
	srv := newPostsServer(t, 0, &requests)
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int32(1), requests.Load())
}

func TestAllPostsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": []model.Post{}})
	}))
	defer srv.Close()

	cli := NewClient(srv.URL+"/", "secret-key", 5*time.Second)
	_, err := cli.AllPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"secret-key"}, gotQuery["key"])
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"100"}, gotQuery["limit"])
	assert.Equal(t, []string{"tags,authors"}, gotQuery["include"])
	assert.Equal(t, []string{"html"}, gotQuery["formats"])
}

func TestAllPostsHTTPErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, posts)
	assert.Contains(t, err.Error(), "status 500")
}

func TestAllPostsErrorMidPagination(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) > 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		posts := make([]model.Post, 100)
		for i := range posts {
			posts[i] = model.Post{ID: fmt.Sprintf("id-%d", i+1)}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"posts": posts})
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, "k", 5*time.Second)
	posts, err := cli.AllPosts(context.Background(), 0)
	require.Error(t, err)
	// No partial result on failure.
	assert.Nil(t, posts)
}
