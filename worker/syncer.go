package worker

import (
	"context"
	"log/slog"
	"time"

	"ghost-archiver/internal/archive"
	"ghost-archiver/internal/ghost"
	"ghost-archiver/internal/imageutil"
	"ghost-archiver/internal/model"
	"ghost-archiver/internal/storage"
)

// seenTTL bounds how long per-post projections live in Redis.
const seenTTL = 90 * 24 * time.Hour

// ArchiveSyncer periodically pulls all posts from the Ghost API and persists
// them. Each run is a full fetch-then-persist pass; Redis, when configured,
// only records what was new so runs can report deltas.
type ArchiveSyncer struct {
	Client   *ghost.Client
	Writer   *archive.Writer
	Images   *imageutil.Archiver // optional
	Store    *storage.RedisStore // optional
	Source   string
	Limit    int
	Interval time.Duration
}

func (w *ArchiveSyncer) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sync pass. Fetch failures abort the pass with
// nothing written; persist failures leave the output directory partially
// populated, matching the one-shot pull command.
func (w *ArchiveSyncer) RunOnce(ctx context.Context) {
	start := time.Now()
	posts, err := w.Client.AllPosts(ctx, w.Limit)
	if err != nil {
		slog.Error("syncer: fetch failed", "source", w.Source, "err", err)
		return
	}
	if len(posts) == 0 {
		slog.Warn("syncer: no posts returned", "source", w.Source)
		return
	}
	if err := w.Writer.WriteAll(posts); err != nil {
		slog.Error("syncer: persist failed", "source", w.Source, "err", err)
		return
	}
	if w.Images != nil {
		ok := w.Images.ArchivePostImages(ctx, posts)
		slog.Info("syncer: images archived", "source", w.Source, "complete", ok, "posts", len(posts))
	}
	newCount := w.record(ctx, posts)
	slog.Info("syncer: sync complete",
		"source", w.Source,
		"posts", len(posts),
		"new", newCount,
		"duration", time.Since(start),
	)
}

func (w *ArchiveSyncer) record(ctx context.Context, posts []model.Post) int {
	if w.Store == nil {
		return 0
	}
	newCount := 0
	for _, p := range posts {
		isNew, err := w.Store.MarkSeen(ctx, w.Source, p, seenTTL)
		if err != nil {
			slog.Error("syncer: mark seen failed", "id", p.ID, "err", err)
			continue
		}
		if isNew {
			newCount++
		}
	}
	if err := w.Store.SetLastSync(ctx, w.Source, time.Now()); err != nil {
		slog.Error("syncer: set last sync failed", "err", err)
	}
	return newCount
}
