package draftpipe

import "context"

// Publisher submits a generated article to the content-management backend
// as a draft post. Returns EINVALID when required configuration is absent,
// EUNAUTHORIZED when the backend rejects the credentials (never retried),
// and EUNAVAILABLE for other transport or HTTP failures (retryable).
type Publisher interface {
	Publish(ctx context.Context, article *GeneratedArticle) (*PublishResult, error)
}
