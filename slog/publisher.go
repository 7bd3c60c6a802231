package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkorzen/draftpipe"
)

// Ensure LoggingPublisher implements draftpipe.Publisher.
var _ draftpipe.Publisher = (*LoggingPublisher)(nil)

// LoggingPublisher wraps a Publisher with timing logging.
type LoggingPublisher struct {
	next   draftpipe.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next draftpipe.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// Publish delegates to the wrapped publisher and logs the outcome.
func (p *LoggingPublisher) Publish(ctx context.Context, article *draftpipe.GeneratedArticle) (*draftpipe.PublishResult, error) {
	begin := time.Now()
	result, err := p.next.Publish(ctx, article)
	if err != nil {
		p.logger.Error("publish", "slug", article.Slug, "duration", time.Since(begin), "err", err.Error())
		return nil, err
	}
	p.logger.Info("publish",
		"slug", article.Slug,
		"postId", result.PostID,
		"postUrl", result.PostURL,
		"duration", time.Since(begin),
	)
	return result, nil
}
