package main

import (
	"fmt"
	"sync"

	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/pipeline"
	"golang.org/x/sync/errgroup"
)

// Run executes the run command: one pipeline job per URL. Jobs share no
// mutable state, so multiple URLs run concurrently up to the configured
// limit; the per-domain rate limiter keeps concurrent jobs polite.
func (c *RunCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	var failed int

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)

	for _, url := range c.URLs {
		g.Go(func() error {
			result, err := deps.Pipeline.Run(ctx, url)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "error: %s [job %s, step %s]: %s\n",
					url, result.JobID, result.Stage, draftpipe.ErrorMessage(err))
				// Keep processing the remaining URLs.
				return nil
			}
			fmt.Fprintf(deps.Stdout, "%s -> draft post %d (%s) [job %s, %.2fs]\n",
				url, result.Publish.PostID, result.Publish.PostURL, result.JobID, result.Duration.Seconds())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(c.URLs))
	}
	return nil
}

// buildPipeline assembles a pipeline from wired dependencies.
func buildPipeline(deps *Dependencies, limiter pipeline.Limiter) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Generator: deps.Generator,
		Publisher: deps.Publisher,
		Limiter:   limiter,
		Logger:    deps.Logger,
	}
}
