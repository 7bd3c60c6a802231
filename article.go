package draftpipe

// Soft targets for generated article fields. These are instructions to the
// model, not hard limits; over-length values are accepted.
const (
	TitleTargetLength           = 60
	MetaDescriptionTargetLength = 155
)

// GeneratedArticle is the result of the generation stage: a brand-new
// SEO-oriented article written from an extracted document. HTML is body-only
// markup; the heading hierarchy starts at h2 because the title serves as
// the h1.
type GeneratedArticle struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	MetaDescription string `json:"metaDescription"`
	HTML            string `json:"html"`

	// Warnings lists soft-quality issues found in the generated article
	// (short body, missing h2 sections, missing FAQ). They never block
	// the pipeline.
	Warnings []string `json:"warnings,omitempty"`
}

// Validate returns an error if the article is missing required fields.
func (a *GeneratedArticle) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if a.Slug == "" {
		return Errorf(EINVALID, "article slug required")
	}
	if a.HTML == "" {
		return Errorf(EINVALID, "article html required")
	}
	return nil
}

// PublishResult identifies the draft post created on the
// content-management backend.
type PublishResult struct {
	PostID  int    `json:"postId"`
	PostURL string `json:"postUrl"`
}
