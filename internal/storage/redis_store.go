// Package storage keeps sync bookkeeping in Redis: which posts a source has
// already archived, a recency-ordered projection of them, and the last sync
// time. It is observability state only; every fetch is still a full fetch.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ghost-archiver/internal/model"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func seenKey(source, id string) string {
	return fmt.Sprintf("archive:seen:%s:%s", source, id)
}

func recentKey(source string) string {
	return fmt.Sprintf("archive:recent:%s", source)
}

func lastSyncKey(source string) string {
	return fmt.Sprintf("archive:lastsync:%s", source)
}

// MarkSeen records that a post was archived for source and returns true when
// the post was not seen before. The slim projection is stored so digests can
// be built without touching the filesystem.
func (s *RedisStore) MarkSeen(ctx context.Context, source string, p model.Post, ttl time.Duration) (bool, error) {
	b, err := json.Marshal(model.IndexOf(p))
	if err != nil {
		return false, err
	}
	isNew, err := s.rdb.SetNX(ctx, seenKey(source, p.ID), b, ttl).Result()
	if err != nil {
		return false, err
	}
	// Refresh the stored projection even for known posts; titles get edited.
	if !isNew {
		if err := s.rdb.Set(ctx, seenKey(source, p.ID), b, ttl).Err(); err != nil {
			return false, err
		}
	}
	z := redis.Z{Score: publishedScore(p), Member: p.ID}
	if err := s.rdb.ZAdd(ctx, recentKey(source), z).Err(); err != nil {
		return false, err
	}
	return isNew, nil
}

// RecentPosts returns up to n archived posts for source, newest first by
// published time. Entries whose projection has expired are skipped.
func (s *RedisStore) RecentPosts(ctx context.Context, source string, n int) ([]model.IndexEntry, error) {
	ids, err := s.rdb.ZRevRange(ctx, recentKey(source), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.IndexEntry, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, seenKey(source, id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var e model.IndexEntry
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SetLastSync records when source was last synced.
func (s *RedisStore) SetLastSync(ctx context.Context, source string, t time.Time) error {
	return s.rdb.Set(ctx, lastSyncKey(source), t.UTC().Format(time.RFC3339), 0).Err()
}

// LastSync returns the recorded last sync time, or the zero time when the
// source has never synced.
func (s *RedisStore) LastSync(ctx context.Context, source string) (time.Time, error) {
	res, err := s.rdb.Get(ctx, lastSyncKey(source)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, res)
}

// ArchivedCount returns how many posts are tracked for source.
func (s *RedisStore) ArchivedCount(ctx context.Context, source string) (int64, error) {
	return s.rdb.ZCard(ctx, recentKey(source)).Result()
}

func publishedScore(p model.Post) float64 {
	t, err := time.Parse(time.RFC3339, p.PublishedAt)
	if err != nil {
		return 0
	}
	return float64(t.Unix())
}
