package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ghost-archiver/internal/ai"
	"ghost-archiver/internal/digest"
	"ghost-archiver/internal/storage"
)

// DigestBuilder renders a Markdown digest of the most recently archived
// posts from the Redis recent set. In serve mode it runs on an interval;
// the digest command calls RunOnce directly.
type DigestBuilder struct {
	Store      *storage.RedisStore
	Summarizer ai.Summarizer // optional
	Source     string
	TopN       int
	OutputDir  string
	Title      string
	Preface    string
	Language   string
	Interval   time.Duration
}

func (w *DigestBuilder) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 24 * time.Hour
	}
	if err := w.RunOnce(ctx); err != nil {
		slog.Error("digest: build failed", "err", err)
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := w.RunOnce(ctx); err != nil {
				slog.Error("digest: build failed", "err", err)
			}
		}
	}
}

// RunOnce builds and writes one digest file, overwriting today's if present.
// Returns the error from storage, rendering, or the final write.
func (w *DigestBuilder) RunOnce(ctx context.Context) error {
	topN := w.TopN
	if topN <= 0 {
		topN = 10
	}
	entries, err := w.Store.RecentPosts(ctx, w.Source, topN)
	if err != nil {
		return fmt.Errorf("recent posts: %w", err)
	}
	if len(entries) == 0 {
		slog.Warn("digest: nothing archived yet", "source", w.Source)
		return nil
	}

	now := time.Now()
	dateName := now.UTC().Format("20060102")
	slug := "digest-" + dateName
	title := strings.TrimSpace(digest.ExpandVars(w.Title, now))
	if title == "" {
		title = fmt.Sprintf("Archive digest %s", now.UTC().Format("2006-01-02"))
	}
	data := digest.Data{
		Title:    title,
		Slug:     slug,
		Datetime: now.UTC().Format("2006-01-02 15:04"),
		Preface:  digest.ExpandVars(w.Preface, now),
		Items:    make([]digest.Item, 0, len(entries)),
	}
	for _, e := range entries {
		var summary string
		if w.Summarizer != nil {
			if s, err := w.Summarizer.SummarizePost(ctx, e.Title, e.Excerpt, w.Language); err == nil && s != "" {
				summary = s
			} else if err != nil {
				slog.Warn("digest: post summary failed", "id", e.ID, "err", err)
			}
		}
		data.Items = append(data.Items, digest.Item{
			Title:     e.Title,
			URL:       e.URL,
			Excerpt:   e.Excerpt,
			Summary:   summary,
			Published: e.PublishedAt,
			Tags:      e.Tags,
		})
	}
	if w.Summarizer != nil {
		if s, err := w.Summarizer.SummarizeDigest(ctx, entries, w.Language); err == nil {
			data.Summary = strings.TrimSpace(s)
		} else {
			slog.Warn("digest: overview summary failed", "err", err)
		}
	}

	content, err := digest.Render(data)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}
	dir := filepath.Join(w.OutputDir, "digests")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}
	path := filepath.Join(dir, slug+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	slog.Info("digest: written", "path", path, "items", len(data.Items))
	return nil
}
