package extractor

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// PageContent is the rendered page handed to the extraction engine:
// the visible text and the raw HTML. The parsed document is built
// lazily, once, on first use by a DOM strategy.
type PageContent struct {
	Text string
	HTML string

	docOnce sync.Once
	doc     *goquery.Document
	docErr  error
}

// NewPageContent wraps rendered page output.
func NewPageContent(text, html string) *PageContent {
	return &PageContent{Text: text, HTML: html}
}

// Doc parses the HTML into a goquery document.
func (p *PageContent) Doc() (*goquery.Document, error) {
	p.docOnce.Do(func() {
		p.doc, p.docErr = goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
	})
	return p.doc, p.docErr
}

// Lines splits the visible text into trimmed lines, dropping blanks.
func (p *PageContent) Lines() []string {
	raw := strings.Split(p.Text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
