package main

import (
	"context"
	"encoding/json"

	"github.com/pkorzen/draftpipe"
)

// Run executes the extract command: guard, fetch and extract a single URL,
// printing the extracted document as JSON.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if err := draftpipe.ValidateTargetURL(c.URL); err != nil {
		return err
	}

	var html string
	err := draftpipe.Retry(deps.Ctx, 2, nil, nil, func(ctx context.Context) error {
		var ferr error
		html, ferr = deps.Fetcher.Fetch(ctx, c.URL)
		return ferr
	})
	if err != nil {
		return err
	}

	doc, err := deps.Extractor.Extract(html, c.URL)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
