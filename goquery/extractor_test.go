package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/goquery"
	"github.com/pkorzen/draftpipe/mock"
	"github.com/pkorzen/draftpipe/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://example.com/articles/test"

// articlePage builds a minimal but realistic article page.
func articlePage() string {
	var paragraphs strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&paragraphs,
			"<p>Paragraph %d discusses the topic at hand in enough detail for reader mode to score it as main content of the page.</p>\n", i)
	}
	return `<!DOCTYPE html>
<html lang="en">
<head>
<title>How to Grow Tomatoes</title>
<meta name="description" content="A practical guide to growing tomatoes at home.">
<meta name="author" content="Jane Gardener">
<meta property="article:published_time" content="2024-03-01T10:00:00Z">
<meta property="og:image" content="https://cdn.example.com/tomatoes.jpg">
<meta property="og:site_name" content="Garden Weekly">
<meta name="keywords" content="tomatoes, gardening , home growing">
<link rel="canonical" href="https://example.com/articles/tomatoes">
</head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<div class="sidebar">Subscribe to our newsletter!</div>
<article>
<h1>How to Grow Tomatoes</h1>
<h2>Choosing a Variety</h2>
` + paragraphs.String() + `
<img src="/images/seedlings.jpg" alt="seedlings">
<h2>Watering Schedule</h2>
` + paragraphs.String() + `
</article>
<footer>Copyright</footer>
</body>
</html>`
}

func newExtractor(opts ...goquery.Option) *goquery.Extractor {
	return goquery.NewExtractor(readability.NewExtractor(), opts...)
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, content and headings from an article page", func(t *testing.T) {
		t.Parallel()

		doc, err := newExtractor().Extract(articlePage(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, "How to Grow Tomatoes", doc.Title)
		assert.GreaterOrEqual(t, len(doc.Content), draftpipe.MinContentLength)
		assert.Contains(t, doc.Content, "Paragraph 3")
		assert.Contains(t, doc.Headings, "Choosing a Variety")
		assert.Contains(t, doc.Headings, "Watering Schedule")
		assert.Equal(t, pageURL, doc.SourceURL)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		e := newExtractor()
		first, err := e.Extract(articlePage(), pageURL)
		require.NoError(t, err)
		second, err := e.Extract(articlePage(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.NotEmpty(t, first.ContentHash)
		assert.Equal(t, first.ContentHash, second.ContentHash)
	})

	t.Run("harvests metadata field by field", func(t *testing.T) {
		t.Parallel()

		doc, err := newExtractor().Extract(articlePage(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, "A practical guide to growing tomatoes at home.", doc.MetaDescription)
		assert.Equal(t, "Jane Gardener", doc.Author)
		assert.Equal(t, "2024-03-01T10:00:00Z", doc.PublishedDate)
		assert.Equal(t, "en", doc.Language)
		assert.Equal(t, []string{"tomatoes", "gardening", "home growing"}, doc.Keywords)
		assert.Equal(t, "https://example.com/articles/tomatoes", doc.CanonicalURL)
		assert.Equal(t, "Garden Weekly", doc.SiteName)
	})

	t.Run("prefers og:image and resolves content images", func(t *testing.T) {
		t.Parallel()

		doc, err := newExtractor().Extract(articlePage(), pageURL)
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/tomatoes.jpg", doc.ImageURL)
		assert.Contains(t, doc.Images, "https://example.com/images/seedlings.jpg")
	})

	t.Run("uses the first content image when og:image is absent", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(articlePage(),
			`<meta property="og:image" content="https://cdn.example.com/tomatoes.jpg">`, "", 1)
		doc, err := newExtractor().Extract(page, pageURL)
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/images/seedlings.jpg", doc.ImageURL)
	})

	t.Run("omits canonical when it equals the page URL", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(articlePage(),
			"https://example.com/articles/tomatoes", pageURL, 1)
		doc, err := newExtractor().Extract(page, pageURL)
		require.NoError(t, err)

		assert.Empty(t, doc.CanonicalURL)
	})

	t.Run("computes an excerpt with an ellipsis marker", func(t *testing.T) {
		t.Parallel()

		doc, err := newExtractor().Extract(articlePage(), pageURL)
		require.NoError(t, err)

		require.Greater(t, len(doc.Content), draftpipe.ExcerptLength)
		assert.True(t, strings.HasSuffix(doc.Excerpt, "..."))
		assert.LessOrEqual(t, len([]rune(doc.Excerpt)), draftpipe.ExcerptLength+3)
	})

	t.Run("caps content at the length ceiling", func(t *testing.T) {
		t.Parallel()

		engine := &mock.MainContentExtractor{
			ExtractMainFn: func(html, url string) (*draftpipe.MainContent, error) {
				return &draftpipe.MainContent{
					Title:       "Long",
					TextContent: strings.Repeat("x", draftpipe.MaxContentLength+5000),
				}, nil
			},
		}
		doc, err := goquery.NewExtractor(engine).Extract("<html><body><p>x</p></body></html>", pageURL)
		require.NoError(t, err)

		assert.Len(t, []rune(doc.Content), draftpipe.MaxContentLength)
	})

	t.Run("fails when no usable text can be recovered", func(t *testing.T) {
		t.Parallel()

		_, err := newExtractor().Extract("<html><body><div>hi</div></body></html>", pageURL)
		require.Error(t, err)
		assert.Equal(t, draftpipe.EUNPROCESSABLE, draftpipe.ErrorCode(err))
	})

	t.Run("falls back to meta description and headings", func(t *testing.T) {
		t.Parallel()

		// No article-like structure at all: reader mode has nothing to
		// score, so the fallback path must assemble the content.
		page := `<html><head>
<meta name="description" content="A roundup of this week's most interesting releases.">
<title>Weekly Roundup</title>
</head><body>
<h2>New Database Engine Ships</h2>
<h2>Browser Update Breaks Extensions</h2>
<h2>Conference Dates Announced</h2>
</body></html>`

		engine := &mock.MainContentExtractor{
			ExtractMainFn: func(html, url string) (*draftpipe.MainContent, error) {
				return nil, nil
			},
		}
		doc, err := goquery.NewExtractor(engine).Extract(page, pageURL)
		require.NoError(t, err)

		assert.NotEmpty(t, doc.Content)
		assert.Contains(t, doc.Content, "A roundup of this week's most interesting releases.")
		assert.Contains(t, doc.Content, "New Database Engine Ships")
		assert.Contains(t, doc.Content, "Browser Update Breaks Extensions")
		assert.Equal(t, "Weekly Roundup", doc.Title)
		assert.Len(t, doc.Headings, 3)
	})

	t.Run("strips noise elements before analysis", func(t *testing.T) {
		t.Parallel()

		engine := &mock.MainContentExtractor{
			ExtractMainFn: func(html, url string) (*draftpipe.MainContent, error) {
				// The engine sees the cleaned HTML; echo it back so the
				// test can assert on what was removed.
				return &draftpipe.MainContent{TextContent: html}, nil
			},
		}

		page := `<html><body>
<script>trackEverything()</script>
<div class="cookie-banner">We use cookies</div>
<div role="navigation">menu</div>
<p>` + strings.Repeat("real content ", 20) + `</p>
</body></html>`

		doc, err := goquery.NewExtractor(engine).Extract(page, pageURL)
		require.NoError(t, err)

		assert.NotContains(t, doc.Content, "trackEverything")
		assert.NotContains(t, doc.Content, "We use cookies")
		assert.Contains(t, doc.Content, "real content")
	})

	t.Run("consults the language detector when markup has no language", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>T</title></head><body><article><h1>T</h1>` +
			strings.Repeat("<p>This is clearly an English sentence about nothing in particular.</p>", 10) +
			`</article></body></html>`

		detector := &mock.LanguageDetector{
			DetectLanguageFn: func(text string) string { return "en" },
		}
		doc, err := goquery.NewExtractor(
			readability.NewExtractor(),
			goquery.WithLanguageDetector(detector),
		).Extract(page, pageURL)
		require.NoError(t, err)

		assert.Equal(t, "en", doc.Language)
	})

	t.Run("drops unparseable image URLs silently", func(t *testing.T) {
		t.Parallel()

		engine := &mock.MainContentExtractor{
			ExtractMainFn: func(html, url string) (*draftpipe.MainContent, error) {
				return &draftpipe.MainContent{
					TextContent: strings.Repeat("text ", 20),
					ContentHTML: `<div><img src="http://%zz-invalid"><img data-src="/ok.png"></div>`,
				}, nil
			},
		}
		doc, err := goquery.NewExtractor(engine).Extract("<html><body>x</body></html>", pageURL)
		require.NoError(t, err)

		assert.Equal(t, []string{"https://example.com/ok.png"}, doc.Images)
	})
}
