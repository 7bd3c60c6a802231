package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkorzen/draftpipe"
)

// Run executes the publish command: read a generated article from a JSON
// file and submit it as a draft post.
func (c *PublishCmd) Run(deps *Dependencies) error {
	data, err := readInput(c.File)
	if err != nil {
		return fmt.Errorf("reading article: %w", err)
	}

	var article draftpipe.GeneratedArticle
	if err := json.Unmarshal(data, &article); err != nil {
		return fmt.Errorf("parsing article JSON: %w", err)
	}
	if err := article.Validate(); err != nil {
		return err
	}

	result, err := deps.Publisher.Publish(deps.Ctx, &article)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created draft post %d: %s\n", result.PostID, result.PostURL)
	return nil
}
