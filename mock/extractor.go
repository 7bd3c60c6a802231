package mock

import "github.com/pkorzen/draftpipe"

var _ draftpipe.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of draftpipe.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*draftpipe.ExtractedDocument, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*draftpipe.ExtractedDocument, error) {
	return e.ExtractFn(html, pageURL)
}

var _ draftpipe.MainContentExtractor = (*MainContentExtractor)(nil)

// MainContentExtractor is a mock implementation of
// draftpipe.MainContentExtractor.
type MainContentExtractor struct {
	ExtractMainFn func(html string, pageURL string) (*draftpipe.MainContent, error)
}

func (e *MainContentExtractor) ExtractMain(html string, pageURL string) (*draftpipe.MainContent, error) {
	return e.ExtractMainFn(html, pageURL)
}

var _ draftpipe.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of draftpipe.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}
