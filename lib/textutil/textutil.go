package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Clean collapses all runs of whitespace (including newlines inside
// scraped markup) into single spaces and trims the result.
func Clean(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

// JoinParagraphs joins non-empty paragraphs with a blank line between them.
func JoinParagraphs(paragraphs []string) string {
	var kept []string
	for _, p := range paragraphs {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
