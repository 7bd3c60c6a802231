package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkorzen/draftpipe"
)

// Run executes the generate command: read an extracted document from a
// JSON file and print the generated article.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	data, err := readInput(c.File)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	var doc draftpipe.ExtractedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document JSON: %w", err)
	}

	article, err := deps.Generator.Generate(deps.Ctx, &doc)
	if err != nil {
		return err
	}

	if c.Preview {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", article.Title)
		md, err := deps.Converter.Convert(article.HTML)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(article)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
