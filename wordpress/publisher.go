// Package wordpress implements draftpipe.Publisher against the WordPress
// REST API. Articles are submitted as draft posts pending manual review.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkorzen/draftpipe"
)

// DefaultTimeout bounds a single publish request. The original inherited
// the client's default; we pick an explicit finite value.
const DefaultTimeout = 30 * time.Second

// publishAttempts: one call plus one retry for transient failures.
// Authentication failures abort without consuming the budget.
const publishAttempts = 2

// Config holds the credentials and endpoint for the WordPress backend.
// It is read once at startup and treated as immutable.
type Config struct {
	BaseURL     string
	Username    string
	AppPassword string
}

// Validate returns EINVALID listing any missing required fields.
func (c Config) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "base URL")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.AppPassword == "" {
		missing = append(missing, "application password")
	}
	if len(missing) > 0 {
		return draftpipe.Errorf(draftpipe.EINVALID, "wordpress configuration missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Ensure Publisher implements draftpipe.Publisher at compile time.
var _ draftpipe.Publisher = (*Publisher)(nil)

// Publisher submits draft posts to a WordPress site.
type Publisher struct {
	config Config
	client *http.Client
	delays []time.Duration
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithTimeout sets the timeout for publish requests.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.client.Timeout = d
	}
}

// WithRetryDelays overrides the waits between attempts.
func WithRetryDelays(delays []time.Duration) Option {
	return func(p *Publisher) {
		p.delays = delays
	}
}

// NewPublisher creates a Publisher. Returns EINVALID when required
// configuration is absent; credentials are never discovered lazily.
func NewPublisher(config Config, opts ...Option) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	p := &Publisher{
		config: config,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// postPayload is the draft-post request body.
type postPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
}

// postResponse is the subset of the WordPress response we consume.
type postResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// Publish sanitizes the article body and creates a draft post. HTTP
// 401/403 surface as EUNAUTHORIZED and are not retried; other failures
// consume one retry before surfacing as EUNAVAILABLE.
func (p *Publisher) Publish(ctx context.Context, article *draftpipe.GeneratedArticle) (*draftpipe.PublishResult, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}

	clean, err := SanitizeHTML(article.HTML)
	if err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "sanitizing article HTML: %v", err)
	}

	body, err := json.Marshal(postPayload{
		Title:   article.Title,
		Content: clean,
		Status:  "draft",
		Slug:    article.Slug,
		Excerpt: article.MetaDescription,
	})
	if err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "encoding post payload: %v", err)
	}

	var result *draftpipe.PublishResult
	err = draftpipe.Retry(ctx, publishAttempts, p.delays, nil, func(ctx context.Context) error {
		var aerr error
		result, aerr = p.createDraft(ctx, body)
		return aerr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// createDraft performs one POST against the posts endpoint.
func (p *Publisher) createDraft(ctx context.Context, body []byte) (*draftpipe.PublishResult, error) {
	endpoint := p.config.BaseURL + "/wp-json/wp/v2/posts"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINVALID, "invalid publish endpoint %q: %v", endpoint, err)
	}
	req.SetBasicAuth(p.config.Username, p.config.AppPassword)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, draftpipe.Errorf(draftpipe.EUNAVAILABLE, "wordpress request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, draftpipe.Errorf(draftpipe.EUNAUTHORIZED, "wordpress authentication failed (HTTP %d)", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, draftpipe.Errorf(draftpipe.EUNAVAILABLE, "wordpress API error: %d %s - %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(detail)))
	}

	var post postResponse
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "decoding wordpress response: %v", err)
	}
	if post.ID == 0 {
		return nil, draftpipe.Errorf(draftpipe.EINTERNAL, "wordpress response missing post ID")
	}

	return &draftpipe.PublishResult{PostID: post.ID, PostURL: post.Link}, nil
}
