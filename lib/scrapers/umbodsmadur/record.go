package umbodsmadur

import (
	"strings"
)

// Paragraph is one indexed body paragraph of a case. Indices are
// contiguous and zero-based in document order.
type Paragraph struct {
	Index         int    `json:"index"`
	ParagraphText string `json:"paragraphText"`
}

// Record is the normalized representation of one case page. It is built
// once by Extract and never mutated afterwards.
type Record struct {
	Title       string      `json:"title"`
	OriginalUrl string      `json:"originalUrl"`
	Type        string      `json:"type"`
	CaseNumber  string      `json:"caseNumber"`
	Year        *int        `json:"year"`
	Abstract    string      `json:"abstract"`
	Content     []Paragraph `json:"content"`
	FullText    string      `json:"fullText"`
}

func fullText(r Record) string {
	parts := []string{r.Title}
	if r.Abstract != "" {
		parts = append(parts, r.Abstract)
	}
	if len(r.Content) > 0 {
		paragraphs := make([]string, len(r.Content))
		for i, p := range r.Content {
			paragraphs[i] = p.ParagraphText
		}
		parts = append(parts, strings.Join(paragraphs, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
