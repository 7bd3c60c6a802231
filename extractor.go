package draftpipe

// MainContent is the output of a main-content engine: the article body with
// boilerplate removed, in both HTML and plain-text form.
type MainContent struct {
	// Title is the page title as determined by the engine.
	Title string

	// ContentHTML is the main content subtree rendered as HTML.
	ContentHTML string

	// TextContent is the plain text of the main content.
	TextContent string
}

// MainContentExtractor isolates the article body from a full page, the way
// browser reader mode does. Implementations wrap a concrete scoring
// algorithm; a nil result (with nil error) means the engine found nothing
// usable and the caller should fall back to heuristics.
type MainContentExtractor interface {
	ExtractMain(html string, pageURL string) (*MainContent, error)
}

// Extractor turns fetched HTML into an ExtractedDocument: main content,
// headings and field-by-field metadata. Returns EUNPROCESSABLE when no
// usable text can be recovered.
type Extractor interface {
	Extract(html string, pageURL string) (*ExtractedDocument, error)
}

// LanguageDetector guesses the language of a text when the markup does not
// declare one. Returns an empty string when no confident guess exists.
type LanguageDetector interface {
	DetectLanguage(text string) string
}
