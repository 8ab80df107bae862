package types

import (
	"net/url"
	"strings"
)

// PostRef identifies an existing, non-trashed post in the content store.
type PostRef struct {
	// ID is the store's post id.
	ID int64 `json:"id" yaml:"id"`

	// Title is the post title, exactly as stored.
	Title string `json:"title" yaml:"title"`

	// Slug is the post's URL slug.
	Slug string `json:"slug" yaml:"slug"`
}

// InsertStatus reports the outcome of an insert operation.
type InsertStatus string

const (
	InsertCreated InsertStatus = "created"
	InsertSkipped InsertStatus = "skipped"
)

// InsertResult is the content store's answer to a post insert.
type InsertResult struct {
	// Status is created on success.
	Status InsertStatus `json:"status" yaml:"status"`

	// PostID is the new post's id.
	PostID int64 `json:"post_id" yaml:"post_id"`

	// PostURL is the new post's permalink.
	PostURL string `json:"post_url" yaml:"post_url"`
}

// EffectiveDomain returns the source's domain, deriving it from the URL when
// the backend left the field empty. A leading "www." is stripped.
func (s Source) EffectiveDomain() string {
	domain := strings.ToLower(strings.TrimSpace(s.Domain))
	if domain == "" {
		domain = DomainFromURL(s.URL)
	}
	return strings.TrimPrefix(domain, "www.")
}

// DomainFromURL extracts the lowercased host from a URL, without any
// "www." prefix. Returns "" for unparseable input.
func DomainFromURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}
