// Copyright Electionwire Media, 2026. All rights reserved.

// Package types holds the shared domain and configuration structs for the
// autopost pipeline.
package types

// CandidateProfile identifies the researched candidate. It is produced by the
// generation backend and immutable once generated.
type CandidateProfile struct {
	// CandidateName is the candidate's full display name.
	CandidateName string `json:"candidate_name" yaml:"candidate_name"`

	// ElectionName names the election the candidate contests.
	ElectionName string `json:"election_name" yaml:"election_name"`

	// ElectionDate is the election date in YYYY-MM-DD format.
	ElectionDate string `json:"election_date" yaml:"election_date"`

	// Party is the candidate's party affiliation.
	Party string `json:"party" yaml:"party"`

	// Constituency is the electoral district the candidate runs in.
	Constituency string `json:"constituency" yaml:"constituency"`

	// CurrentPosition is the candidate's current office or role.
	CurrentPosition string `json:"current_position" yaml:"current_position"`

	// ShortBio is a one-paragraph biography.
	ShortBio string `json:"short_bio" yaml:"short_bio"`

	// ProfileSourceURL is the primary source backing the profile. It must
	// appear among the draft's sources.
	ProfileSourceURL string `json:"profile_source_url" yaml:"profile_source_url"`

	// ProfileImageURL is an optional candidate photo URL.
	ProfileImageURL string `json:"profile_image_url" yaml:"profile_image_url"`

	// ProfileImageSourceURL is the page the photo was found on.
	ProfileImageSourceURL string `json:"profile_image_source_url" yaml:"profile_image_source_url"`

	// ProfileImageCredit attributes the photo.
	ProfileImageCredit string `json:"profile_image_credit" yaml:"profile_image_credit"`
}

// Source is one citation backing the draft.
type Source struct {
	// URL is the cited page.
	URL string `json:"url" yaml:"url"`

	// Domain is the registrable host, without a www prefix. Derived from
	// URL when the backend leaves it empty.
	Domain string `json:"domain" yaml:"domain"`

	// Publisher is the site or organization name.
	Publisher string `json:"publisher" yaml:"publisher"`

	// Title is the cited page's title.
	Title string `json:"title" yaml:"title"`
}

// KeyFact is a factual claim with provenance and a confidence score.
type KeyFact struct {
	// Fact is the claim text.
	Fact string `json:"fact" yaml:"fact"`

	// SupportingSourceURLs lists the URLs backing the claim (at least 2).
	SupportingSourceURLs []string `json:"supporting_source_urls" yaml:"supporting_source_urls"`

	// Confidence is the backend's certainty in the claim, 0-100.
	Confidence int `json:"confidence" yaml:"confidence"`
}

// SEO holds search-engine metadata for the post.
type SEO struct {
	// FocusKeyphrase is the primary keyphrase the post targets.
	FocusKeyphrase string `json:"focus_keyphrase" yaml:"focus_keyphrase"`

	// MetaTitle is the search-result title (45-65 characters).
	MetaTitle string `json:"meta_title" yaml:"meta_title"`

	// MetaDescription is the search-result snippet (130-170 characters).
	MetaDescription string `json:"meta_description" yaml:"meta_description"`

	// SlugHint is the backend's suggested slug, kept aligned with the
	// canonical slug during normalization.
	SlugHint string `json:"seo_slug_hint" yaml:"seo_slug_hint"`
}

// PostStatus is the WordPress status for a created post.
type PostStatus string

const (
	StatusPublish PostStatus = "publish"
	StatusDraft   PostStatus = "draft"
	StatusPending PostStatus = "pending"
	StatusFuture  PostStatus = "future"
)

// Valid reports whether s is one of the accepted post statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case StatusPublish, StatusDraft, StatusPending, StatusFuture:
		return true
	}
	return false
}

// PostDraft is a candidate post payload awaiting validation. Created once per
// automation run, validated once, then either persisted or discarded.
type PostDraft struct {
	// Title is the post title.
	Title string `json:"title" yaml:"title"`

	// Slug is the kebab-case URL slug (max 120 characters).
	Slug string `json:"slug" yaml:"slug"`

	// Excerpt is the post summary.
	Excerpt string `json:"excerpt" yaml:"excerpt"`

	// ContentHTML is the full post body as HTML.
	ContentHTML string `json:"content_html" yaml:"content_html"`

	// PostStatus is the target WordPress status.
	PostStatus PostStatus `json:"post_status" yaml:"post_status"`

	// TopicKeywords are topic labels; at most 10 are retained.
	TopicKeywords []string `json:"topic_keywords" yaml:"topic_keywords"`

	// SEO is the post's search metadata.
	SEO SEO `json:"seo" yaml:"seo"`

	// Sources is the ordered citation list.
	Sources []Source `json:"sources" yaml:"sources"`

	// KeyFacts are sourced claims with per-fact confidence.
	KeyFacts []KeyFact `json:"key_facts" yaml:"key_facts"`

	// CategoryName is the target category, resolved or created by name at
	// insert time.
	CategoryName string `json:"category_name" yaml:"category_name"`

	// CandidateProfile embeds the researched candidate.
	CandidateProfile CandidateProfile `json:"candidate_profile" yaml:"candidate_profile"`

	// Confidence is the backend's overall confidence in the draft, 0-100.
	Confidence int `json:"confidence" yaml:"confidence"`
}

// PayloadStatus is the generation backend's verdict on its own output.
type PayloadStatus string

const (
	// PayloadPublish marks a payload the backend considers publishable.
	PayloadPublish PayloadStatus = "publish"

	// PayloadSkip marks a run the backend declined; Reason is required.
	PayloadSkip PayloadStatus = "skip"
)

// GenerationPayload is the fixed schema contract with the generation
// backend: a PostDraft plus the backend's own status and skip reason.
type GenerationPayload struct {
	// Status is publish or skip.
	Status PayloadStatus `json:"status" yaml:"status"`

	// Reason explains a skip status.
	Reason string `json:"reason" yaml:"reason"`

	PostDraft `yaml:",inline"`
}
