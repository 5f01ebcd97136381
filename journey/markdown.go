package journey

import (
	"regexp"
	"strings"
)

var markdownPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},           // bold
	{regexp.MustCompile(`#{1,6}\s*`), ""},                 // headers
	{regexp.MustCompile(`\[(.*?)\]\(.*?\)`), "$1"},        // links
	{regexp.MustCompile(`[*_]{1,2}(.*?)[*_]{1,2}`), "$1"}, // emphasis
	{regexp.MustCompile("`{1,3}.*?`{1,3}"), ""},           // inline code / fences
	{regexp.MustCompile(`\n{3,}`), "\n\n"},                // collapse blank runs
}

// CleanMarkdown strips markdown styling from model output so summaries are
// stored as plain text.
func CleanMarkdown(text string) string {
	cleaned := text
	for _, p := range markdownPatterns {
		cleaned = p.re.ReplaceAllString(cleaned, p.repl)
	}
	return strings.TrimSpace(cleaned)
}
