// Package trafilatura implements draftpipe.MainContentExtractor using
// go-trafilatura, an alternative main-content engine with its own fallback
// cascade. Selectable from the CLI via --engine=trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/pkorzen/draftpipe"
	"golang.org/x/net/html"
)

// Ensure Extractor implements draftpipe.MainContentExtractor at compile time.
var _ draftpipe.MainContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to isolate the article body from a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMain extracts the main content from the HTML. A nil result with
// nil error means the engine found no usable text.
func (e *Extractor) ExtractMain(rawHTML string, pageURL string) (*draftpipe.MainContent, error) {
	if rawHTML == "" {
		return nil, draftpipe.Errorf(draftpipe.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, nil
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return nil, nil
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &draftpipe.MainContent{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		TextContent: text,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
