// Package pipeline sequences the content pipeline: validate the URL, fetch
// the page, extract the main content, generate an SEO article and publish
// it as a draft. Each stage either returns a validated value or a
// classified failure; retries happen inside a stage, never across stage
// boundaries.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkorzen/draftpipe"
)

// Stage identifies one unit of the pipeline.
type Stage string

// Pipeline stages, in execution order. A job moves linearly through them;
// any failure transitions to StageFailed with the stage name preserved.
const (
	StageReceived  Stage = "received"
	StageValidated Stage = "validated"
	StageFetched   Stage = "fetched"
	StageExtracted Stage = "extracted"
	StageGenerated Stage = "generated"
	StagePublished Stage = "published"
	StageFailed    Stage = "failed"
)

// fetchAttempts recovers the source system's behavior of retrying a failed
// crawl once before giving up.
const fetchAttempts = 2

// Result is the uniform outcome of a pipeline run. On failure, Stage names
// the stage that failed and Err carries the classified error; no partial
// results are populated past the failed stage.
type Result struct {
	JobID    string
	Stage    Stage
	Document *draftpipe.ExtractedDocument
	Article  *draftpipe.GeneratedArticle
	Publish  *draftpipe.PublishResult
	Duration time.Duration
	Err      error
}

// OK reports whether the job ran to completion.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Pipeline orchestrates a single job from URL to draft post. A Pipeline is
// safe for concurrent use: each Run owns its job state and the stage
// implementations hold no per-job state.
type Pipeline struct {
	Fetcher   draftpipe.Fetcher
	Extractor draftpipe.Extractor
	Generator draftpipe.Generator
	Publisher draftpipe.Publisher

	// Limiter, if set, is consulted before the fetch so batch runs stay
	// polite per host. Single runs may leave it nil.
	Limiter Limiter

	// RetryDelays are the waits between fetch attempts. Nil means retry
	// immediately, matching the source system.
	RetryDelays []time.Duration

	// Logger receives stage-entry records. Nil disables logging.
	Logger *slog.Logger
}

// Run executes the pipeline for a single URL. The returned Result is always
// non-nil; Result.Err is also returned as the error for convenience.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Result, error) {
	start := time.Now()
	res := &Result{
		JobID: uuid.NewString(),
		Stage: StageReceived,
	}

	fail := func(stage Stage, err error) (*Result, error) {
		if errors.Is(err, context.Canceled) {
			err = draftpipe.Errorf(draftpipe.EINTERNAL, "cancelled")
		}
		res.Err = err
		res.Duration = time.Since(start)
		p.log(ctx, res.JobID, StageFailed, "stage", string(stage), "error", draftpipe.ErrorMessage(err))
		res.Stage = stage
		return res, err
	}

	// Validate
	p.log(ctx, res.JobID, StageReceived, "url", rawURL)
	if err := draftpipe.ValidateTargetURL(rawURL); err != nil {
		return fail(StageValidated, err)
	}
	res.Stage = StageValidated

	// Fetch, with the stage's own retry policy.
	if p.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := p.Limiter.Wait(ctx, u.Hostname()); err != nil {
				return fail(StageFetched, err)
			}
		}
	}
	p.log(ctx, res.JobID, StageValidated)
	var html string
	err := draftpipe.Retry(ctx, fetchAttempts, p.RetryDelays, nil, func(ctx context.Context) error {
		var ferr error
		html, ferr = p.Fetcher.Fetch(ctx, rawURL)
		return ferr
	})
	if err != nil {
		return fail(StageFetched, err)
	}
	res.Stage = StageFetched

	// Extract. No retry: the input is already in hand and extraction is
	// deterministic.
	p.log(ctx, res.JobID, StageFetched, "bytes", len(html))
	doc, err := p.Extractor.Extract(html, rawURL)
	if err != nil {
		return fail(StageExtracted, err)
	}
	if err := doc.Validate(); err != nil {
		return fail(StageExtracted, err)
	}
	res.Document = doc
	res.Stage = StageExtracted

	// Generate. The adapter owns its retry budget.
	p.log(ctx, res.JobID, StageExtracted, "title", doc.Title, "contentLength", len(doc.Content))
	article, err := p.Generator.Generate(ctx, doc)
	if err != nil {
		return fail(StageGenerated, err)
	}
	res.Article = article
	res.Stage = StageGenerated

	// Publish. The adapter owns its retry budget and auth short-circuit.
	p.log(ctx, res.JobID, StageGenerated, "slug", article.Slug, "warnings", len(article.Warnings))
	published, err := p.Publisher.Publish(ctx, article)
	if err != nil {
		return fail(StagePublished, err)
	}
	res.Publish = published
	res.Stage = StagePublished
	res.Duration = time.Since(start)

	p.log(ctx, res.JobID, StagePublished, "postId", published.PostID, "duration", res.Duration)
	return res, nil
}

func (p *Pipeline) log(ctx context.Context, jobID string, stage Stage, args ...any) {
	if p.Logger == nil {
		return
	}
	attrs := append([]any{"job", jobID, "stage", string(stage)}, args...)
	p.Logger.InfoContext(ctx, "pipeline", attrs...)
}
