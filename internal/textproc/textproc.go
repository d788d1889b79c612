// Package textproc normalizes inbound email bodies before analysis and
// derives size statistics used for logging and token budgeting.
package textproc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	prose "github.com/jdkato/prose/v2"
)

var (
	htmlHint   = regexp.MustCompile(`(?i)<\s*(html|body|div|p|br|table|span)\b`)
	whitespace = regexp.MustCompile(`[ \t]+`)
)

// CleanEmail strips HTML markup from an email body when present and
// collapses runs of whitespace. Plain-text bodies pass through trimmed.
func CleanEmail(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if htmlHint.MatchString(text) {
		if stripped := stripHTML(text); stripped != "" {
			text = stripped
		}
	}

	text = whitespace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, head").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	return strings.TrimSpace(text)
}

type EmailStats struct {
	Words         int
	Sentences     int
	TokenEstimate float64
}

// Stats tokenizes the email to report word and sentence counts plus a
// rough token estimate (words x 1.3). When tokenization fails the word
// count falls back to whitespace splitting.
func Stats(text string) EmailStats {
	if strings.TrimSpace(text) == "" {
		return EmailStats{}
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
	)
	if err != nil {
		words := len(strings.Fields(text))
		return EmailStats{
			Words:         words,
			Sentences:     1,
			TokenEstimate: float64(words) * 1.3,
		}
	}

	words := len(doc.Tokens())
	sentences := len(doc.Sentences())
	if sentences == 0 {
		sentences = 1
	}

	return EmailStats{
		Words:         words,
		Sentences:     sentences,
		TokenEstimate: float64(words) * 1.3,
	}
}

// Truncate shortens text to at most n runes, appending an ellipsis
// marker when anything was cut. Used for trace excerpts.
func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
