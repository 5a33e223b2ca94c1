// Package imageutil archives post images: the feature image normalized to
// WebP and inline images stored as fetched. Everything here is best-effort;
// a failed download is logged and skipped, never fatal.
package imageutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"ghost-archiver/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/chai2010/webp"
)

// Archiver downloads and stores post images under a root directory.
type Archiver struct {
	dir     string
	quality int
	client  *http.Client
}

// NewArchiver creates an archiver writing into dir. quality is the WebP
// encode quality (1-100).
func NewArchiver(dir string, quality int, timeout time.Duration) *Archiver {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Archiver{
		dir:     dir,
		quality: quality,
		client:  &http.Client{Timeout: timeout},
	}
}

// ArchivePostImages downloads images for all posts with bounded concurrency.
// It returns the number of posts whose images were fully archived.
func (a *Archiver) ArchivePostImages(ctx context.Context, posts []model.Post) int {
	const maxWorkers = 8
	sem := make(chan struct{}, maxWorkers)
	done := make(chan bool, len(posts))
	for _, p := range posts {
		p := p
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			ictx, cancel := context.WithTimeout(ctx, 60*time.Second)
			defer cancel()
			done <- a.archiveOne(ictx, p)
		}()
	}
	ok := 0
	for range posts {
		if <-done {
			ok++
		}
	}
	return ok
}

func (a *Archiver) archiveOne(ctx context.Context, p model.Post) bool {
	slug := p.Slug
	if slug == "" {
		slug = "post-" + p.ID
	}
	ok := true
	if strings.TrimSpace(p.FeatureImage) != "" {
		out := filepath.Join(a.dir, slug+".webp")
		if err := a.saveFeature(ctx, p.FeatureImage, out); err != nil {
			slog.Warn("images: feature image failed", "slug", slug, "url", p.FeatureImage, "err", err)
			ok = false
		}
	}
	urls, err := InlineImageURLs(p.HTML)
	if err != nil {
		slog.Warn("images: inline scan failed", "slug", slug, "err", err)
		return false
	}
	for i, u := range urls {
		out := filepath.Join(a.dir, slug, fmt.Sprintf("%d%s", i+1, extOf(u)))
		if err := a.saveRaw(ctx, u, out); err != nil {
			slog.Warn("images: inline image failed", "slug", slug, "url", u, "err", err)
			ok = false
		}
	}
	return ok
}

// InlineImageURLs extracts absolute img src URLs from post HTML.
func InlineImageURLs(html string) ([]string, error) {
	if strings.TrimSpace(html) == "" {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	var urls []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		if u, err := url.Parse(src); err != nil || !u.IsAbs() {
			return
		}
		urls = append(urls, src)
	})
	return urls, nil
}

// saveFeature downloads an image and re-encodes it as WebP at outPath.
func (a *Archiver) saveFeature(ctx context.Context, srcURL, outPath string) error {
	raw, err := a.fetch(ctx, srcURL)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()
	if err := webp.Encode(f, img, &webp.Options{Quality: float32(a.quality)}); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// saveRaw downloads an image and stores the bytes as fetched.
func (a *Archiver) saveRaw(ctx context.Context, srcURL, outPath string) error {
	raw, err := a.fetch(ctx, srcURL)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	return os.WriteFile(outPath, raw, 0o644)
}

func (a *Archiver) fetch(ctx context.Context, srcURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("images: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func extOf(srcURL string) string {
	u, err := url.Parse(srcURL)
	if err != nil {
		return ".img"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif":
		return ext
	default:
		return ".img"
	}
}
