package htmltext

import (
	"strings"
	"testing"
)

func TestStripRemovesScriptWithContents(t *testing.T) {
	got := Strip(`<p>Hello<script>bad()</script> World</p>`)
	if !strings.Contains(got, "Hello") || !strings.Contains(got, "World") {
		t.Fatalf("expected Hello and World in output, got: %q", got)
	}
	if strings.Contains(got, "bad()") {
		t.Errorf("script contents leaked into output: %q", got)
	}
	if strings.ContainsAny(got, "<>") {
		t.Errorf("tag delimiters remain in output: %q", got)
	}
}

func TestStripRemovesStyleWithContents(t *testing.T) {
	got := Strip(`<style type="text/css">p { color: red }</style><p>text</p>`)
	if strings.Contains(got, "color") {
		t.Errorf("style contents leaked into output: %q", got)
	}
	if got != "text" {
		t.Errorf("got %q, want %q", got, "text")
	}
}

func TestStripReplacesTagsWithNewlines(t *testing.T) {
	got := Strip(`<h1>Title</h1><p>First</p><p>Second</p>`)
	want := "Title\nFirst\nSecond"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripCollapsesBlankRuns(t *testing.T) {
	got := Strip("<div>a</div>\n\n\n<div>b</div>")
	if strings.Contains(got, "\n\n") {
		t.Errorf("blank run not collapsed: %q", got)
	}
}

func TestStripKeepsEntitiesEncoded(t *testing.T) {
	// Entity decoding is intentionally not performed.
	got := Strip(`<p>Fish &amp; Chips</p>`)
	if got != "Fish &amp; Chips" {
		t.Errorf("got %q, want entities preserved", got)
	}
}

func TestStripEmpty(t *testing.T) {
	if got := Strip(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
