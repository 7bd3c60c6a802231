package draftpipe

// Converter converts HTML to Markdown. Used to render generated article
// bodies as terminal-friendly previews.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
