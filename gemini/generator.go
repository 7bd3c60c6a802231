// Package gemini implements draftpipe.Generator using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkorzen/draftpipe"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// attemptTimeout bounds a single generation call. The backend client's own
// default is not finite enough to rely on.
const attemptTimeout = 60 * time.Second

// generateAttempts: one call plus one retry. The model's output is
// non-deterministic, so a parse failure on the first attempt is worth a
// second call before giving up.
const generateAttempts = 2

// Ensure Generator implements draftpipe.Generator at compile time.
var _ draftpipe.Generator = (*Generator)(nil)

// Generator writes SEO articles from extracted documents using Gemini.
type Generator struct {
	client *genai.Client
	model  string

	// delays between retry attempts, injectable for tests.
	delays []time.Duration

	// call performs one model invocation. Overridable in tests.
	call func(ctx context.Context, prompt string) (string, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// WithRetryDelays overrides the waits between attempts.
func WithRetryDelays(delays []time.Duration) Option {
	return func(g *Generator) {
		g.delays = delays
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.call == nil {
		g.call = g.callModel
	}
	return g
}

// Generate writes a brand-new article from the document. It fails with
// EUNPROCESSABLE when the source is below draftpipe.MinGenerationSource,
// and surfaces the last backend error after the retry budget is spent.
func (g *Generator) Generate(ctx context.Context, doc *draftpipe.ExtractedDocument) (*draftpipe.GeneratedArticle, error) {
	if len([]rune(doc.Content)) < draftpipe.MinGenerationSource {
		return nil, draftpipe.Errorf(draftpipe.EUNPROCESSABLE,
			"insufficient source content (< %d chars), aborting generation", draftpipe.MinGenerationSource)
	}

	prompt := BuildPrompt(doc)

	var article *draftpipe.GeneratedArticle
	err := draftpipe.Retry(ctx, generateAttempts, g.delays, nil, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
		defer cancel()

		raw, err := g.call(ctx, prompt)
		if err != nil {
			return draftpipe.Errorf(draftpipe.EUNAVAILABLE, "generation backend: %v", err)
		}

		parsed, err := parseArticle(raw)
		if err != nil {
			return err
		}
		article = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	article.Warnings = qualityWarnings(article)
	return article, nil
}

// callModel performs one Gemini invocation with JSON-constrained output.
func (g *Generator) callModel(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for article generation.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a professional SEO article writer. You output strictly JSON.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPrompt builds the deterministic generation prompt from a document.
// Identical documents always produce identical prompts.
func BuildPrompt(doc *draftpipe.ExtractedDocument) string {
	language := doc.Language
	if language == "" {
		language = "unknown"
	}

	content := doc.Content
	if runes := []rune(content); len(runes) > draftpipe.MaxContentLength {
		content = string(runes[:draftpipe.MaxContentLength])
	}

	var sb strings.Builder
	sb.WriteString(`You are a senior SEO strategist and professional content writer.

This task is NOT summarization. Plan and write a brand-new SEO article
that can realistically rank on search engines. The source content may be
incomplete, promotional, or unstructured; treat it only as topical
signals, not content to rewrite.

SOURCE INFORMATION (REFERENCE ONLY)
`)
	fmt.Fprintf(&sb, "SOURCE TITLE: %s\n", doc.Title)
	fmt.Fprintf(&sb, "SOURCE LANGUAGE: %s\n", language)
	fmt.Fprintf(&sb, "SOURCE CONTENT (cleaned reference):\n%s\n", content)
	sb.WriteString(`
Before writing, internally determine the primary search query, the search
intent, and the target audience, and base the article on that
interpretation rather than the structure of the source.

WRITING REQUIREMENTS
- Minimum 1,200 words; depth over verbosity, no filler.
- 5-7 H2 sections, H3 subsections where helpful. Do NOT use H1 in the
  body; the title serves as the H1.
- Required sections: introduction, core analysis, practical insights,
  FAQ (minimum 3 real search questions), key takeaways box.
- Write in the source language. Natural, conversational but
  authoritative. No AI disclaimers, no "in this article we will".
- Use 1 primary and 3-5 secondary keywords naturally; do not stuff.
- Be informational and opinion-based, not defamatory; avoid absolute
  claims and attacks on individuals.
`)
	fmt.Fprintf(&sb, `
OUTPUT FORMAT (STRICT JSON)
Return ONLY valid JSON:
{
  "title": "... (max %d characters)",
  "slug": "... (URL-safe)",
  "metaDescription": "... (max %d characters)",
  "html": "<article body markup>"
}

HTML rules:
- Use only: h2, h3, p, ul, li, strong, table, figure
- No scripts, no styles
- Do NOT include html/head/body tags
`, draftpipe.TitleTargetLength, draftpipe.MetaDescriptionTargetLength)

	return sb.String()
}

// parseArticle decodes the model response into an article. Any missing
// required key fails the attempt.
func parseArticle(raw string) (*draftpipe.GeneratedArticle, error) {
	raw = strings.TrimSpace(raw)
	// Some models wrap JSON in markdown fences despite instructions.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var article draftpipe.GeneratedArticle
	if err := json.Unmarshal([]byte(raw), &article); err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "generation response is not valid JSON: %v", err)
	}
	if article.Title == "" || article.Slug == "" || article.MetaDescription == "" || article.HTML == "" {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "generation response missing required keys")
	}
	return &article, nil
}

// qualityWarnings runs soft shape checks against the article. They are
// advisory only; over-rejecting a non-deterministic backend wastes the call.
func qualityWarnings(article *draftpipe.GeneratedArticle) []string {
	var warnings []string
	if len(article.HTML) < 2000 {
		warnings = append(warnings, "generated content seems short")
	}
	if !strings.Contains(article.HTML, "<h2") {
		warnings = append(warnings, "generated content missing h2 sections")
	}
	if !strings.Contains(strings.ToLower(article.HTML), "faq") {
		warnings = append(warnings, "generated content missing FAQ section")
	}
	return warnings
}
