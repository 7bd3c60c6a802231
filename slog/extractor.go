package slog

import (
	"log/slog"
	"time"

	"github.com/pkorzen/draftpipe"
)

// Ensure LoggingExtractor implements draftpipe.Extractor.
var _ draftpipe.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with timing and result logging.
type LoggingExtractor struct {
	next   draftpipe.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next draftpipe.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, pageURL string) (*draftpipe.ExtractedDocument, error) {
	begin := time.Now()
	doc, err := e.next.Extract(html, pageURL)
	if err != nil {
		e.logger.Error("extract", "url", pageURL, "duration", time.Since(begin), "err", err.Error())
		return nil, err
	}
	e.logger.Info("extract",
		"url", pageURL,
		"title", doc.Title,
		"contentLength", len(doc.Content),
		"headings", len(doc.Headings),
		"duration", time.Since(begin),
	)
	return doc, nil
}
