// Package markdown reads and writes Markdown files with YAML frontmatter,
// the format used for per-post exports and digests.
package markdown

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document represents a Markdown file with YAML frontmatter.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// Render produces the file content for a document: frontmatter between two
// "---" lines followed by a blank line and the body. An empty frontmatter
// renders the body alone.
func Render(d Document) (string, error) {
	if len(d.Frontmatter) == 0 {
		return d.Body, nil
	}
	out, err := yaml.Marshal(d.Frontmatter)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	b.WriteString(d.Body)
	return b.String(), nil
}

// ParseFile reads a Markdown file and extracts YAML frontmatter and body.
// Frontmatter is expected at the top of the file between two lines containing only "---".
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	hasFM := string(peek) == "---"

	var fmBuf strings.Builder
	var bodyBuf strings.Builder

	if hasFM {
		// Consume the opening '---' line fully.
		if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, err
		}
		// Read until the closing '---' line.
		for {
			l, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return Document{}, err
			}
			if strings.TrimSpace(l) == "---" {
				break
			}
			fmBuf.WriteString(l)
			if errors.Is(err, io.EOF) {
				break
			}
		}
	}
	// The rest is body.
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, err
		}
	}

	d := Document{
		Frontmatter: map[string]any{},
		Body:        strings.TrimLeft(bodyBuf.String(), "\n"),
	}
	if hasFM {
		m := map[string]any{}
		if err := yaml.Unmarshal([]byte(fmBuf.String()), &m); err != nil {
			return Document{}, err
		}
		d.Frontmatter = m
	}
	return d, nil
}
