// Package archive persists a fetched post collection to disk: a timestamped
// full JSON dump, per-post plain-text files, a slim index.json, and optional
// per-post Markdown exports.
package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ghost-archiver/internal/htmltext"
	"ghost-archiver/internal/markdown"
	"ghost-archiver/internal/model"
)

// Options selects which artifacts a Writer produces. Each artifact is
// independently enabled.
type Options struct {
	Dir      string
	JSON     bool
	Text     bool
	Index    bool
	Markdown bool
	Source   string // recorded in dump metadata
}

// Writer writes archive artifacts. Directory creation is idempotent and no
// file is ever deleted; index.json is the only artifact that is overwritten.
type Writer struct {
	opts Options
}

func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// WriteAll writes every enabled artifact for posts, in order: dump, index,
// text, markdown. With zero posts nothing is written and no error is
// returned. A write failure aborts immediately; the output directory may be
// left partially populated.
func (w *Writer) WriteAll(posts []model.Post) error {
	if len(posts) == 0 {
		slog.Warn("archive: no posts to write")
		return nil
	}
	if err := os.MkdirAll(w.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if w.opts.JSON {
		path, err := w.WriteDump(posts)
		if err != nil {
			return err
		}
		slog.Info("archive: json dump written", "path", path)
	}
	if w.opts.Index {
		if err := w.WriteIndex(posts); err != nil {
			return err
		}
		slog.Info("archive: index written", "path", filepath.Join(w.opts.Dir, "index.json"), "entries", len(posts))
	}
	if w.opts.Text {
		if err := w.WriteTexts(posts); err != nil {
			return err
		}
		slog.Info("archive: text files written", "count", len(posts))
	}
	if w.opts.Markdown {
		if err := w.WriteMarkdowns(posts); err != nil {
			return err
		}
		slog.Info("archive: markdown files written", "count", len(posts))
	}
	return nil
}

// WriteDump writes the full JSON dump with metadata envelope and returns its
// path. The filename embeds a fresh timestamp, so dumps never overwrite.
func (w *Writer) WriteDump(posts []model.Post) (string, error) {
	now := time.Now()
	doc := model.Archive{
		Metadata: model.Metadata{
			FetchedAt:  now.Format(time.RFC3339),
			TotalPosts: len(posts),
			Source:     w.opts.Source,
		},
		Posts: posts,
	}
	path := filepath.Join(w.opts.Dir, fmt.Sprintf("ghost_posts_%s.json", now.Format("20060102_150405")))
	if err := writeJSON(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// WriteIndex writes the slim index.json, always overwriting.
func (w *Writer) WriteIndex(posts []model.Post) error {
	entries := make([]model.IndexEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, model.IndexOf(p))
	}
	return writeJSON(filepath.Join(w.opts.Dir, "index.json"), entries)
}

// WriteTexts writes one plain-text file per post under <dir>/txt.
func (w *Writer) WriteTexts(posts []model.Post) error {
	dir := filepath.Join(w.opts.Dir, "txt")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create txt dir: %w", err)
	}
	for _, p := range posts {
		path := filepath.Join(dir, FileStem(p)+".txt")
		if err := os.WriteFile(path, []byte(RenderText(p)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Debug("archive: text written", "path", path)
	}
	return nil
}

// WriteMarkdowns writes one Markdown file with YAML frontmatter per post
// under <dir>/md.
func (w *Writer) WriteMarkdowns(posts []model.Post) error {
	dir := filepath.Join(w.opts.Dir, "md")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create md dir: %w", err)
	}
	for _, p := range posts {
		doc := markdown.Document{
			Frontmatter: map[string]any{
				"title":    p.Title,
				"slug":     p.Slug,
				"datetime": p.PublishedAt,
				"tags":     p.TagNames(),
				"authors":  p.AuthorNames(),
				"url":      p.URL,
			},
			Body: htmltext.Strip(p.HTML) + "\n",
		}
		content, err := markdown.Render(doc)
		if err != nil {
			return fmt.Errorf("render markdown for %s: %w", p.ID, err)
		}
		path := filepath.Join(dir, FileStem(p)+".md")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Debug("archive: markdown written", "path", path)
	}
	return nil
}

var illegalRe = regexp.MustCompile(`[<>:"/\\|?*]`)

// FileStem builds the per-post filename stem: slug (or post-<id> when the
// slug is missing) plus the sanitized title truncated to 50 characters.
func FileStem(p model.Post) string {
	slug := p.Slug
	if slug == "" {
		id := p.ID
		if id == "" {
			id = "unknown"
		}
		slug = "post-" + id
	}
	title := p.Title
	if title == "" {
		title = "untitled"
	}
	safe := illegalRe.ReplaceAllString(title, "_")
	if r := []rune(safe); len(r) > 50 {
		safe = string(r[:50])
	}
	return slug + "_" + safe
}

var banner = strings.Repeat("=", 80)

// RenderText produces the fixed banner layout for a post's txt file.
func RenderText(p model.Post) string {
	title := p.Title
	if title == "" {
		title = "untitled"
	}
	excerpt := p.Excerpt
	if excerpt == "" {
		excerpt = "no excerpt"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", banner, title, banner)
	fmt.Fprintf(&b, "Excerpt: %s\n\n", excerpt)
	fmt.Fprintf(&b, "Published: %s\n\n", p.PublishedAt)
	fmt.Fprintf(&b, "Reading time: %d min\n\n", p.ReadingTime)
	fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(p.TagNames(), ", "))
	fmt.Fprintf(&b, "Authors: %s\n\n", strings.Join(p.AuthorNames(), ", "))
	fmt.Fprintf(&b, "%s\nBody\n%s\n\n", banner, banner)
	b.WriteString(htmltext.Strip(p.HTML))
	b.WriteString("\n")
	return b.String()
}

// ReadDump loads a previously written JSON dump.
func ReadDump(path string) (model.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Archive{}, err
	}
	var doc model.Archive
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Archive{}, fmt.Errorf("parse dump %s: %w", path, err)
	}
	return doc, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
