// Package draftpipe turns a single web URL into a draft article on a
// content-management backend. It validates the URL, fetches the page,
// extracts the main content with metadata, rewrites it into an
// SEO-oriented article via a generative model, and submits the result
// as a draft post.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, wordpress/).
package draftpipe
