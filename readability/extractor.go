// Package readability implements draftpipe.MainContentExtractor using the
// go-readability port of the browser reader-mode algorithm.
package readability

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/pkorzen/draftpipe"
)

// Ensure Extractor implements draftpipe.MainContentExtractor at compile time.
var _ draftpipe.MainContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to isolate the article body from a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMain runs reader-mode content scoring against the HTML. A nil
// result with nil error means the algorithm found no usable text; callers
// are expected to fall back to heuristic extraction.
func (e *Extractor) ExtractMain(rawHTML string, pageURL string) (*draftpipe.MainContent, error) {
	if rawHTML == "" {
		return nil, draftpipe.Errorf(draftpipe.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		// Readability failing on a real-world page is an expected
		// outcome, not a stage failure. Signal "nothing usable".
		return nil, nil
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, nil
	}

	return &draftpipe.MainContent{
		Title:       article.Title,
		ContentHTML: article.Content,
		TextContent: text,
	}, nil
}
