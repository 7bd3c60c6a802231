package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config

	Fetcher   draftpipe.Fetcher
	Extractor draftpipe.Extractor
	Generator draftpipe.Generator
	Publisher draftpipe.Publisher
	Converter draftpipe.Converter
	Pipeline  *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" type:"path" default:"~/.draftpipe.yaml" help:"Path to YAML config file" env:"DRAFTPIPE_CONFIG"`

	Run      RunCmd      `cmd:"" help:"Run the full pipeline: fetch, extract, generate, publish as draft"`
	Extract  ExtractCmd  `cmd:"" help:"Extract the main content and metadata from a URL"`
	Generate GenerateCmd `cmd:"" help:"Generate an SEO article from an extracted document file"`
	Publish  PublishCmd  `cmd:"" help:"Publish a generated article file as a draft post"`
	Serve    ServeCmd    `cmd:"" help:"Start the JSON job server"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Source URLs (one job per URL)"`
	Render      bool          `help:"Fetch with a headless browser (JavaScript-rendered pages)"`
	Engine      string        `default:"readability" enum:"readability,trafilatura" help:"Main-content engine"`
	Concurrency int           `default:"4" help:"Concurrent job limit for multiple URLs"`
	Rate        float64       `default:"1" help:"Max fetches per second per domain for multiple URLs"`
	Timeout     time.Duration `default:"10s" help:"Per-fetch timeout"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL     string        `arg:"" help:"Source URL"`
	Render  bool          `help:"Fetch with a headless browser"`
	Engine  string        `default:"readability" enum:"readability,trafilatura" help:"Main-content engine"`
	Timeout time.Duration `default:"10s" help:"Per-fetch timeout"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	File    string `arg:"" help:"Extracted document JSON file ('-' for stdin)"`
	Preview bool   `short:"p" help:"Print the article body as Markdown instead of JSON"`
}

// PublishCmd is the "publish" subcommand.
type PublishCmd struct {
	File string `arg:"" help:"Generated article JSON file ('-' for stdin)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr   string `default:":8080" help:"Listen address"`
	Engine string `default:"readability" enum:"readability,trafilatura" help:"Main-content engine"`
}
