package mock

import (
	"context"

	"github.com/pkorzen/draftpipe"
)

var _ draftpipe.Generator = (*Generator)(nil)

// Generator is a mock implementation of draftpipe.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, doc *draftpipe.ExtractedDocument) (*draftpipe.GeneratedArticle, error)

	// GenerateCalls counts invocations of Generate.
	GenerateCalls int
}

func (g *Generator) Generate(ctx context.Context, doc *draftpipe.ExtractedDocument) (*draftpipe.GeneratedArticle, error) {
	g.GenerateCalls++
	return g.GenerateFn(ctx, doc)
}
