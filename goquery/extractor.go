// Package goquery implements draftpipe.Extractor. It strips boilerplate
// from fetched HTML, delegates main-content isolation to a pluggable
// engine, falls back to heuristic extraction when the engine finds nothing,
// and harvests metadata field by field.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/pkorzen/draftpipe"
)

// noiseSelectors match structural and ad/cookie-banner elements that are
// removed before any content analysis.
var noiseSelectors = []string{
	"script", "style", "iframe", "nav", "footer", "aside",
	".header", ".footer", ".cookie-banner", ".newsletter",
	"#sidebar", ".sidebar", ".ad", ".ads", ".advertisement",
	`[role="alert"]`, `[role="banner"]`, `[role="navigation"]`,
}

// Ensure Extractor implements draftpipe.Extractor at compile time.
var _ draftpipe.Extractor = (*Extractor)(nil)

// Extractor turns fetched HTML into an ExtractedDocument.
type Extractor struct {
	main draftpipe.MainContentExtractor
	lang draftpipe.LanguageDetector
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLanguageDetector sets a detector used when the markup does not
// declare a document language.
func WithLanguageDetector(d draftpipe.LanguageDetector) Option {
	return func(e *Extractor) {
		e.lang = d
	}
}

// NewExtractor creates an Extractor around the given main-content engine.
func NewExtractor(main draftpipe.MainContentExtractor, opts ...Option) *Extractor {
	e := &Extractor{main: main}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes fetched HTML scoped to pageURL. It fails with
// EUNPROCESSABLE when fewer than draftpipe.MinContentLength characters of
// text can be recovered; metadata degrades field by field instead.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*draftpipe.ExtractedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINVALID, "failed to parse HTML: %v", err)
	}

	// Remove boilerplate before any content analysis. Meta tags live in
	// head and survive this.
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	cleaned, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "failed to render cleaned HTML: %v", err)
	}

	mc, err := e.main.ExtractMain(cleaned, pageURL)
	if err != nil {
		return nil, err
	}

	title := ""
	content := ""
	contentHTML := ""
	if mc != nil {
		title = mc.Title
		content = strings.TrimSpace(mc.TextContent)
		contentHTML = mc.ContentHTML
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	// Fallback: the engine fails unpredictably on real pages (SPA shells,
	// paywalls, non-article pages). Concatenate the meta description with
	// the heading text so those still produce something usable.
	if content == "" {
		content = fallbackContent(doc)
	}

	runes := []rune(content)
	if len(runes) < draftpipe.MinContentLength {
		return nil, draftpipe.Errorf(draftpipe.EUNPROCESSABLE, "unable to extract meaningful content from page")
	}
	if len(runes) > draftpipe.MaxContentLength {
		content = string(runes[:draftpipe.MaxContentLength])
	}

	out := &draftpipe.ExtractedDocument{
		Title:       title,
		Content:     content,
		Headings:    headings(contentHTML, rawHTML),
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(content)),
		SourceURL:   pageURL,
	}

	e.harvestMetadata(out, doc, pageURL)
	out.Images = contentImages(contentHTML, pageURL)
	if out.ImageURL == "" && len(out.Images) > 0 {
		out.ImageURL = out.Images[0]
	}
	out.Excerpt = excerpt(content)

	return out, nil
}

// fallbackContent builds content from the meta description and H1-H3 text,
// in document order, separated by blank lines.
func fallbackContent(doc *goquery.Document) string {
	metaDesc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	var parts []string
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return strings.TrimSpace(metaDesc + "\n\n" + strings.Join(parts, "\n\n"))
}

// headings collects H1-H3 text in document order, preferring the extracted
// content subtree over the raw document. Empty entries are dropped.
func headings(contentHTML, rawHTML string) []string {
	source := contentHTML
	if source == "" {
		source = rawHTML
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil
	}

	var out []string
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// metaProbe returns the first non-empty attribute value among the probes.
func metaProbe(doc *goquery.Document, probes ...[2]string) string {
	for _, p := range probes {
		if v, ok := doc.Find(p[0]).First().Attr(p[1]); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// harvestMetadata probes an ordered list of known meta-tag locations per
// field, taking the first non-empty match. Fields fail independently.
func (e *Extractor) harvestMetadata(out *draftpipe.ExtractedDocument, doc *goquery.Document, pageURL string) {
	out.MetaDescription = metaProbe(doc,
		[2]string{`meta[name="description"]`, "content"},
		[2]string{`meta[property="og:description"]`, "content"},
	)
	out.Author = metaProbe(doc,
		[2]string{`meta[name="author"]`, "content"},
		[2]string{`meta[property="article:author"]`, "content"},
		[2]string{`[rel="author"]`, "content"},
	)
	out.PublishedDate = metaProbe(doc,
		[2]string{`meta[property="article:published_time"]`, "content"},
		[2]string{`meta[name="publishdate"]`, "content"},
		[2]string{`time[datetime]`, "datetime"},
	)
	out.ImageURL = metaProbe(doc,
		[2]string{`meta[property="og:image"]`, "content"},
		[2]string{`meta[name="twitter:image"]`, "content"},
	)
	out.SiteName = metaProbe(doc, [2]string{`meta[property="og:site_name"]`, "content"})

	out.Language = metaProbe(doc,
		[2]string{"html", "lang"},
		[2]string{`meta[http-equiv="content-language"]`, "content"},
	)
	if out.Language == "" && e.lang != nil {
		out.Language = e.lang.DetectLanguage(out.Content)
	}

	if kw := metaProbe(doc, [2]string{`meta[name="keywords"]`, "content"}); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out.Keywords = append(out.Keywords, k)
			}
		}
	}

	// Canonical is only interesting when it differs from the input URL.
	if canonical := metaProbe(doc, [2]string{`link[rel="canonical"]`, "href"}); canonical != "" && canonical != pageURL {
		out.CanonicalURL = canonical
	}
}

// contentImages collects src/data-src of img elements inside the extracted
// content subtree, resolved to absolute URLs. Unparseable URLs are dropped
// silently.
func contentImages(contentHTML, pageURL string) []string {
	if contentHTML == "" {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return nil
	}

	var out []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			src, _ = sel.Attr("data-src")
		}
		if src == "" {
			return
		}
		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		out = append(out, base.ResolveReference(ref).String())
	})
	return out
}

// excerpt returns the first ExcerptLength characters of content, with an
// ellipsis marker when content was longer.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= draftpipe.ExcerptLength {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(string(runes[:draftpipe.ExcerptLength])) + "..."
}
