package page

import (
	"html/template"
	"strings"
	"time"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/webui/palette"
)

var templateFuncs = template.FuncMap{
	"formatDate":     formatDate,
	"summaryOf":      summaryOf,
	"categoryHex":    palette.Hex,
	"badgeClass":     palette.BadgeClass,
	"sentimentClass": sentimentClass,
	"splitLines":     splitLines,
	"add":            func(a, b int) int { return a + b },
	"pageRange":      pageRange,
}

// formatDate renders a publication timestamp for display. Articles without
// one show a placeholder instead of a zero time.
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Unknown date"
	}
	return t.Format("Jan 2, 2006")
}

// summaryOf prefers the AI summary and falls back to a placeholder when the
// pipeline has not produced one yet.
func summaryOf(a entity.SummarizedArticle) string {
	if s := strings.TrimSpace(a.Summary); s != "" {
		return s
	}
	return "No summary available"
}

func sentimentClass(s entity.Sentiment) string {
	switch s {
	case entity.SentimentPositive:
		return "sentiment-positive"
	case entity.SentimentNegative:
		return "sentiment-negative"
	case entity.SentimentNeutral:
		return "sentiment-neutral"
	default:
		return "sentiment-unknown"
	}
}

// splitLines breaks a multi-line text block into non-empty trimmed lines so
// templates can render it as a list.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// pageRange returns the page numbers to offer in the pager, at most seven
// centered on the current page.
func pageRange(current, total int) []int {
	const width = 7
	start := current - width/2
	if start < 1 {
		start = 1
	}
	end := start + width - 1
	if end > total {
		end = total
		if start = end - width + 1; start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
