package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/gemini"
	"github.com/pkorzen/draftpipe/goquery"
	"github.com/pkorzen/draftpipe/htmltomarkdown"
	pipehttp "github.com/pkorzen/draftpipe/http"
	"github.com/pkorzen/draftpipe/lingua"
	"github.com/pkorzen/draftpipe/pipeline"
	"github.com/pkorzen/draftpipe/readability"
	"github.com/pkorzen/draftpipe/rod"
	pipeslog "github.com/pkorzen/draftpipe/slog"
	"github.com/pkorzen/draftpipe/trafilatura"
	"github.com/pkorzen/draftpipe/wordpress"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetchers needing cleanup (browser processes).
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources held by wired dependencies.
func (m *Main) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("draftpipe"),
		kong.Description("Turn a web URL into a draft SEO article on your CMS."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'draftpipe --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Config, err = LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cmd := kongCtx.Command()
	if i := strings.Index(cmd, " "); i >= 0 {
		cmd = cmd[:i]
	}

	// Wire command-specific dependencies. Credentials are only required
	// by the commands that reach the backend they belong to.
	switch cmd {
	case "extract":
		if err := m.wireExtraction(deps, cli.Extract.Render, cli.Extract.Engine, cli.Extract.Timeout); err != nil {
			return err
		}
	case "generate":
		if err := m.wireGenerator(ctx, deps, stderr); err != nil {
			return err
		}
		deps.Converter = htmltomarkdown.NewConverter()
	case "publish":
		if err := m.wirePublisher(deps); err != nil {
			return err
		}
	case "run":
		if err := m.wireExtraction(deps, cli.Run.Render, cli.Run.Engine, cli.Run.Timeout); err != nil {
			return err
		}
		if err := m.wireGenerator(ctx, deps, stderr); err != nil {
			return err
		}
		if err := m.wirePublisher(deps); err != nil {
			return err
		}
		deps.Pipeline = buildPipeline(deps, pipeline.NewDomainLimiter(cli.Run.Rate))
	case "serve":
		if err := m.wireExtraction(deps, false, cli.Serve.Engine, 0); err != nil {
			return err
		}
		if err := m.wireGenerator(ctx, deps, stderr); err != nil {
			return err
		}
		if err := m.wirePublisher(deps); err != nil {
			return err
		}
		deps.Pipeline = buildPipeline(deps, nil)
	}

	return kongCtx.Run(deps)
}

// wireExtraction builds the fetcher and extractor stack.
func (m *Main) wireExtraction(deps *Dependencies, render bool, engine string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = pipehttp.DefaultFetchTimeout
	}
	if render {
		fetcher, err := rod.NewFetcher(rod.WithTimeout(timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, fetcher)
		deps.Fetcher = pipeslog.NewLoggingFetcher(fetcher, deps.Logger)
	} else {
		fetcher := pipehttp.NewFetcher(pipehttp.WithTimeout(timeout))
		m.closers = append(m.closers, fetcher)
		deps.Fetcher = pipeslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var main draftpipe.MainContentExtractor
	switch engine {
	case "trafilatura":
		main = trafilatura.NewExtractor()
	default:
		main = readability.NewExtractor()
	}

	extractor := goquery.NewExtractor(main,
		goquery.WithLanguageDetector(lingua.NewDetector()),
	)
	deps.Extractor = pipeslog.NewLoggingExtractor(extractor, deps.Logger)
	return nil
}

// wireGenerator builds the Gemini-backed generator.
func (m *Main) wireGenerator(ctx context.Context, deps *Dependencies, stderr io.Writer) error {
	apiKey := deps.Config.Gemini.APIKey
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var opts []gemini.Option
	if deps.Config.Gemini.Model != "" {
		opts = append(opts, gemini.WithModel(deps.Config.Gemini.Model))
	}
	deps.Generator = pipeslog.NewLoggingGenerator(gemini.NewGenerator(client, opts...), deps.Logger)
	return nil
}

// wirePublisher builds the WordPress-backed publisher.
func (m *Main) wirePublisher(deps *Dependencies) error {
	publisher, err := wordpress.NewPublisher(wordpress.Config{
		BaseURL:     deps.Config.WordPress.BaseURL,
		Username:    deps.Config.WordPress.Username,
		AppPassword: deps.Config.WordPress.AppPassword,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set WP_BASE_URL, WP_USERNAME and WP_APP_PASSWORD")
		return err
	}
	deps.Publisher = pipeslog.NewLoggingPublisher(publisher, deps.Logger)
	return nil
}
