package draftpipe

import "context"

// MinGenerationSource is the minimum extracted content length required
// before generation is attempted. Stricter than MinContentLength because
// writing a new article needs more material than mere extraction success.
const MinGenerationSource = 100

// Generator writes a brand-new SEO article from an extracted document.
// Returns EUNPROCESSABLE when the source content is below
// MinGenerationSource, and EUNAVAILABLE or EINTERNAL when the generative
// backend fails after the stage's retries are exhausted.
type Generator interface {
	Generate(ctx context.Context, doc *ExtractedDocument) (*GeneratedArticle, error)
}
