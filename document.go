package draftpipe

// Content limits applied by the extraction stage.
const (
	// MinContentLength is the floor below which extraction is considered
	// to have failed. Downstream stages cannot do anything useful with
	// less text than this.
	MinContentLength = 50

	// MaxContentLength is the ceiling applied to extracted content.
	// Truncation is silent and by character count.
	MaxContentLength = 15000

	// ExcerptLength is the number of leading characters used for the
	// document excerpt.
	ExcerptLength = 200
)

// ExtractedDocument is the result of extracting the main content and
// metadata from a fetched page. Required fields are Title (possibly empty),
// Content, Headings and SourceURL; everything else degrades field by field.
type ExtractedDocument struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Headings []string `json:"headings"`

	MetaDescription string   `json:"metaDescription,omitempty"`
	Author          string   `json:"author,omitempty"`
	PublishedDate   string   `json:"publishedDate,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Images          []string `json:"images,omitempty"`
	Language        string   `json:"language,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	CanonicalURL    string   `json:"canonicalUrl,omitempty"`
	SiteName        string   `json:"siteName,omitempty"`
	Excerpt         string   `json:"excerpt,omitempty"`

	// ContentHash is the xxhash of Content in hex. Identical input HTML
	// always yields an identical hash.
	ContentHash string `json:"contentHash,omitempty"`

	// SourceURL is the URL the document was extracted from.
	SourceURL string `json:"sourceUrl"`
}

// Validate returns an error if the document contains invalid fields.
func (d *ExtractedDocument) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if len([]rune(d.Content)) < MinContentLength {
		return Errorf(EUNPROCESSABLE, "document content shorter than %d characters", MinContentLength)
	}
	return nil
}
