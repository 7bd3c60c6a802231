package mock

import (
	"context"

	"github.com/pkorzen/draftpipe"
)

var _ draftpipe.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of draftpipe.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, article *draftpipe.GeneratedArticle) (*draftpipe.PublishResult, error)

	// PublishCalls counts invocations of Publish.
	PublishCalls int
}

func (p *Publisher) Publish(ctx context.Context, article *draftpipe.GeneratedArticle) (*draftpipe.PublishResult, error) {
	p.PublishCalls++
	return p.PublishFn(ctx, article)
}
