// Package digest renders a Markdown digest of recently archived posts.
package digest

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

type Item struct {
	Title     string
	URL       string
	Excerpt   string
	Summary   string
	Published string
	Tags      []string
}

type Data struct {
	Title    string
	Slug     string
	Datetime string
	Preface  string
	Summary  string
	Items    []Item
}

//go:embed digest.tmpl
var digestTpl string

var compiled = template.Must(template.New("digest").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(digestTpl))

func Render(d Data) (string, error) {
	// Frontmatter values must stay single-line.
	d.Summary = flatten(d.Summary)
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
