package imageutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"ghost-archiver/internal/model"
)

func TestInlineImageURLs(t *testing.T) {
	html := `
<p>Intro</p>
<img src="https://cdn.example.com/a.png" alt="a">
<img src="/relative/b.png">
<img src="data:image/png;base64,xyz">
<img src=" https://cdn.example.com/c.jpg ">
<img alt="no src">
`
	got, err := InlineImageURLs(html)
	if err != nil {
		t.Fatalf("InlineImageURLs error: %v", err)
	}
	want := []string{"https://cdn.example.com/a.png", "https://cdn.example.com/c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInlineImageURLsEmpty(t *testing.T) {
	got, err := InlineImageURLs("")
	if err != nil {
		t.Fatalf("InlineImageURLs error: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestArchivePostImagesInline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-really-a-png"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	a := NewArchiver(dir, 85, 5*time.Second)
	posts := []model.Post{{
		ID:   "1",
		Slug: "with-image",
		HTML: `<p>x</p><img src="` + srv.URL + `/img.png">`,
	}}
	ok := a.ArchivePostImages(context.Background(), posts)
	if ok != 1 {
		t.Fatalf("archived %d posts, want 1", ok)
	}
	data, err := os.ReadFile(filepath.Join(dir, "with-image", "1.png"))
	if err != nil {
		t.Fatalf("read inline image: %v", err)
	}
	if string(data) != "not-really-a-png" {
		t.Errorf("inline image bytes altered")
	}
}

func TestArchivePostImagesFailureIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	a := NewArchiver(t.TempDir(), 85, 5*time.Second)
	posts := []model.Post{{
		ID:           "1",
		Slug:         "broken",
		FeatureImage: srv.URL + "/missing.jpg",
	}}
	if ok := a.ArchivePostImages(context.Background(), posts); ok != 0 {
		t.Errorf("archived %d posts, want 0", ok)
	}
}
