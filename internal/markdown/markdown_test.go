package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWithFrontmatter(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "post.md")
	content := "" +
		"---\n" +
		"title: \"First Post\"\n" +
		"slug: first-post\n" +
		"datetime: 2024-03-01T10:00:00Z\n" +
		"tags:\n" +
		"  - go\n" +
		"---\n\n" +
		"Body paragraph here.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(doc.Frontmatter) == 0 {
		t.Fatalf("expected frontmatter, got empty")
	}
	for _, key := range []string{"title", "slug", "datetime", "tags"} {
		if _, ok := doc.Frontmatter[key]; !ok {
			t.Errorf("missing %s in frontmatter", key)
		}
	}
	if !strings.Contains(doc.Body, "Body paragraph here.") {
		t.Errorf("body missing expected text; got: %q", doc.Body)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "no_fm.md")
	body := "# Hello\n\nNo frontmatter here.\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(doc.Frontmatter) != 0 {
		t.Fatalf("expected empty frontmatter, got: %+v", doc.Frontmatter)
	}
	if doc.Body != body {
		t.Errorf("body mismatch.\nwant: %q\n got: %q", body, doc.Body)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	doc := Document{
		Frontmatter: map[string]any{
			"title": "A & B",
			"slug":  "a-and-b",
		},
		Body: "Some body.\n",
	}
	content, err := Render(doc)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rt.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if got, _ := parsed.Frontmatter["title"].(string); got != "A & B" {
		t.Errorf("title = %q, want %q", got, "A & B")
	}
	if got, _ := parsed.Frontmatter["slug"].(string); got != "a-and-b" {
		t.Errorf("slug = %q, want %q", got, "a-and-b")
	}
	if parsed.Body != doc.Body {
		t.Errorf("body = %q, want %q", parsed.Body, doc.Body)
	}
}

func TestRenderEmptyFrontmatter(t *testing.T) {
	content, err := Render(Document{Body: "just a body\n"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if content != "just a body\n" {
		t.Errorf("got %q", content)
	}
}
