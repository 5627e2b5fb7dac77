package umbodsmadur

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"umbodsmadur-scraper/lib/htmlutil"
	"umbodsmadur-scraper/lib/textutil"
)

var (
	// the case heading reads like "(Mál nr. F143/2023)"
	malNrRegex = regexp.MustCompile(`Mál nr\. (.+?)\)`)
	// fallback for headings missing the standard phrase
	idYearRegex = regexp.MustCompile(`[\p{L}\p{N}]+/\d{4}`)
)

// Extract builds a Record from the markup of one case page. Every field
// degrades independently: a missing element yields "Unknown" or an empty
// value, never an error. The only error is unreadable markup.
func Extract(markup []byte, originalUrl string) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return Record{}, err
	}

	caseType := htmlutil.Text(doc.Find(".page-header h1").First())
	if caseType == "" {
		caseType = "Unknown"
	}

	idYear := extractIdYear(htmlutil.Text(doc.Find("section.case h4").First()))
	caseNumber, year := splitIdYear(idYear)

	var abstractParagraphs []string
	doc.Find(".reifun p").Each(func(_ int, p *goquery.Selection) {
		abstractParagraphs = append(abstractParagraphs, htmlutil.Text(p))
	})

	content := []Paragraph{}
	doc.Find(".alit p").Each(func(_ int, p *goquery.Selection) {
		text := htmlutil.Text(p)
		if text == "" {
			return
		}
		content = append(content, Paragraph{
			Index:         len(content),
			ParagraphText: text,
		})
	})

	record := Record{
		Title:       fmt.Sprintf("%s UA %s", caseType, idYear),
		OriginalUrl: originalUrl,
		Type:        caseType,
		CaseNumber:  caseNumber,
		Year:        year,
		Abstract:    textutil.JoinParagraphs(abstractParagraphs),
		Content:     content,
	}
	record.FullText = fullText(record)
	return record, nil
}

// extractIdYear pulls "F143/2023" out of a heading like
// "(Mál nr. F143/2023)".
func extractIdYear(heading string) string {
	if m := malNrRegex.FindStringSubmatch(heading); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	if m := idYearRegex.FindString(heading); m != "" {
		return m
	}
	return "Unknown"
}

// splitIdYear splits on the last slash, the suffix is only a year when it
// is exactly 4 digits.
func splitIdYear(idYear string) (string, *int) {
	slash := strings.LastIndex(idYear, "/")
	if slash < 0 {
		return idYear, nil
	}

	number := idYear[:slash]
	suffix := idYear[slash+1:]
	if len(suffix) == 4 {
		if year, err := strconv.Atoi(suffix); err == nil {
			return number, &year
		}
	}
	return number, nil
}
