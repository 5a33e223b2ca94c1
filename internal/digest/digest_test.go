package digest

import (
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	d := Data{
		Title:    "Archive digest 2024-03-01",
		Slug:     "digest-20240301",
		Datetime: "2024-03-01 08:00",
		Preface:  "What landed this week.",
		Summary:  "A summary\nacross lines.",
		Items: []Item{
			{
				Title:     "First Post",
				URL:       "https://blog.example.com/first-post/",
				Summary:   "One-liner about the post.",
				Published: "2024-03-01T10:00:00Z",
				Tags:      []string{"go", "blog"},
			},
			{
				Title:     "Second Post",
				URL:       "https://blog.example.com/second-post/",
				Excerpt:   "Falls back to the excerpt.",
				Published: "2024-02-01T10:00:00Z",
			},
		},
	}
	out, err := Render(d)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for _, want := range []string{
		`title: "Archive digest 2024-03-01"`,
		"slug: digest-20240301",
		"summary: A summary across lines.",
		"What landed this week.",
		"## [First Post](https://blog.example.com/first-post/)",
		"One-liner about the post.",
		"Tags: go, blog",
		"## [Second Post](https://blog.example.com/second-post/)",
		"Falls back to the excerpt.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n---\n%s", want, out)
		}
	}
	if strings.Contains(out, "summary: A summary\nacross") {
		t.Errorf("frontmatter summary not flattened")
	}
}

func TestRenderNoSummaryLine(t *testing.T) {
	out, err := Render(Data{Title: "T", Slug: "s", Datetime: "2024-03-01 08:00"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if strings.Contains(out, "summary:") {
		t.Errorf("empty summary should be omitted from frontmatter:\n%s", out)
	}
}

func TestExpandVars(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	got := ExpandVars("Digest {.CurrentDate}", now)
	if got != "Digest 2024-03-01" {
		t.Errorf("got %q", got)
	}
	if got := ExpandVars("", now); got != "" {
		t.Errorf("empty input changed: %q", got)
	}
}
