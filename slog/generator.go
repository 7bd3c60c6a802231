package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkorzen/draftpipe"
)

// Ensure LoggingGenerator implements draftpipe.Generator.
var _ draftpipe.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with timing logging and surfaces
// soft-quality warnings, which must be visible but never block the
// pipeline.
type LoggingGenerator struct {
	next   draftpipe.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next draftpipe.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the outcome.
func (g *LoggingGenerator) Generate(ctx context.Context, doc *draftpipe.ExtractedDocument) (*draftpipe.GeneratedArticle, error) {
	begin := time.Now()
	article, err := g.next.Generate(ctx, doc)
	if err != nil {
		g.logger.Error("generate", "title", doc.Title, "duration", time.Since(begin), "err", err.Error())
		return nil, err
	}
	for _, warning := range article.Warnings {
		g.logger.Warn("generate quality check", "slug", article.Slug, "warning", warning)
	}
	g.logger.Info("generate",
		"slug", article.Slug,
		"htmlLength", len(article.HTML),
		"duration", time.Since(begin),
	)
	return article, nil
}
