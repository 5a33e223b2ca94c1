// Package htmltext reduces post HTML to plain text for the txt and markdown
// artifacts. The conversion is deliberately lossy: entities stay encoded and
// malformed markup is handled no better than simple tag removal, so existing
// archives remain byte-compatible.
package htmltext

import (
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?s)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?s)<style[^>]*>.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	blankRe  = regexp.MustCompile(`\n+`)
)

// Strip removes script and style blocks including their contents, replaces
// every remaining tag with a newline, and collapses newline runs.
func Strip(html string) string {
	if html == "" {
		return ""
	}
	s := scriptRe.ReplaceAllString(html, "")
	s = styleRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "\n")
	s = blankRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
