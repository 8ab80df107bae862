// Copyright Electionwire Media, 2026. All rights reserved.

// Package gate decides whether a generated candidate profile may become a
// new post. Evaluate is a pure function over a snapshot of the existing
// post index: it never touches the store, so two overlapping runs can both
// pass against a stale snapshot. True exclusivity needs an external lock.
package gate

import (
	"fmt"
	"strings"

	"github.com/electionwire/autopost/pkg/types"
)

// Outcome classifies a gate decision.
type Outcome string

const (
	// OutcomeAccept means the draft may be persisted.
	OutcomeAccept Outcome = "accept"

	// OutcomeSkip means the draft duplicates existing content. Non-fatal.
	OutcomeSkip Outcome = "skip"

	// OutcomeReject means the draft fails input or policy checks.
	OutcomeReject Outcome = "reject"
)

// Machine-readable decision reasons.
const (
	ReasonDuplicateTitle      = "duplicate_title"
	ReasonDuplicateSlug       = "duplicate_slug"
	ReasonDuplicateCandidate  = "duplicate_candidate"
	ReasonNearDuplicateTitle  = "near_duplicate_title"
	ReasonInsufficientSources = "insufficient_sources"
	ReasonLowConfidence       = "low_confidence"
	ReasonUnsupportedStatus   = "unsupported_status"
	ReasonThinContent         = "thin_content"
)

// MissingFieldReason builds the reject reason for an absent required field.
func MissingFieldReason(field string) string {
	return "missing_field:" + field
}

// Decision is the gate's verdict on one draft.
type Decision struct {
	// Outcome is accept, skip, or reject.
	Outcome Outcome

	// Reason is the machine-readable cause for skip and reject outcomes.
	Reason string

	// Detail is an optional human-readable elaboration.
	Detail string

	// ExistingID is the duplicated post's id for duplicate_title and
	// duplicate_slug skips.
	ExistingID int64

	// Draft is the normalized draft, set only on accept.
	Draft *types.PostDraft
}

// Accepted reports whether the decision allows persisting.
func (d Decision) Accepted() bool { return d.Outcome == OutcomeAccept }

func skip(reason string, existingID int64, detail string) Decision {
	return Decision{Outcome: OutcomeSkip, Reason: reason, ExistingID: existingID, Detail: detail}
}

func reject(reason, detail string) Decision {
	return Decision{Outcome: OutcomeReject, Reason: reason, Detail: detail}
}

// Index is a snapshot of the store's existing titles, slugs, and candidate
// names, read fresh at the start of each run.
type Index struct {
	titles     map[string]int64
	slugs      map[string]int64
	titleList  []string
	candidates map[string]bool
}

// NewIndex builds an Index from non-trashed post refs and the distinct
// candidate names already profiled. Title and slug matches are exact;
// candidate names are compared in normalized form.
func NewIndex(posts []types.PostRef, candidates []string) Index {
	idx := Index{
		titles:     make(map[string]int64, len(posts)),
		slugs:      make(map[string]int64, len(posts)),
		candidates: make(map[string]bool, len(candidates)),
	}
	for _, p := range posts {
		if _, seen := idx.titles[p.Title]; !seen && p.Title != "" {
			idx.titles[p.Title] = p.ID
		}
		if _, seen := idx.slugs[p.Slug]; !seen && p.Slug != "" {
			idx.slugs[p.Slug] = p.ID
		}
		idx.titleList = append(idx.titleList, p.Title)
	}
	for _, name := range candidates {
		if norm := normalizeTitle(name); norm != "" {
			idx.candidates[norm] = true
		}
	}
	return idx
}

// Titles returns the indexed titles in store order.
func (x Index) Titles() []string { return x.titleList }

// requiredFields lists the draft fields that must be present, in check order.
// The presence predicate treats zero values as absent.
func requiredFields(d *types.PostDraft) []struct {
	name    string
	present bool
} {
	return []struct {
		name    string
		present bool
	}{
		{"title", d.Title != ""},
		{"slug", d.Slug != ""},
		{"excerpt", d.Excerpt != ""},
		{"content_html", d.ContentHTML != ""},
		{"post_status", d.PostStatus != ""},
		{"topic_keywords", len(d.TopicKeywords) > 0},
		{"candidate_profile", d.CandidateProfile.CandidateName != ""},
		{"seo", d.SEO != (types.SEO{})},
		{"sources", len(d.Sources) > 0},
		{"category_name", d.CategoryName != ""},
	}
}

// Evaluate decides accept, skip, or reject for draft against the index
// snapshot under the given policy. The checks run in fixed order: required
// fields, post status, exact title duplicate, exact slug duplicate,
// candidate duplicate, near-duplicate title, source floor, confidence
// floor, content quality. On accept the returned decision carries a
// normalized copy of the draft; the input draft is never mutated.
func Evaluate(draft *types.PostDraft, index Index, policy types.GateConfig) Decision {
	raw := *draft
	if strings.TrimSpace(raw.CategoryName) == "" {
		raw.CategoryName = strings.TrimSpace(policy.CategoryName)
	}
	// The operator's configured status wins over whatever the backend
	// emitted, so --post-status draft stages content even when the model
	// answers publish.
	if s := types.PostStatus(strings.TrimSpace(string(policy.PostStatus))); s != "" {
		raw.PostStatus = s
	}

	for _, f := range requiredFields(&raw) {
		if !f.present {
			return reject(MissingFieldReason(f.name), "required payload field is empty")
		}
	}

	if !raw.PostStatus.Valid() {
		return reject(ReasonUnsupportedStatus,
			fmt.Sprintf("post_status %q is not one of publish, draft, pending, future", raw.PostStatus))
	}

	normalized := Normalize(&raw, policy)

	if id, ok := index.titles[normalized.Title]; ok {
		return skip(ReasonDuplicateTitle, id, fmt.Sprintf("title matches existing post %d", id))
	}
	if id, ok := index.slugs[normalized.Slug]; ok {
		return skip(ReasonDuplicateSlug, id, fmt.Sprintf("slug matches existing post %d", id))
	}
	if index.candidates[normalizeTitle(normalized.CandidateProfile.CandidateName)] {
		return skip(ReasonDuplicateCandidate, 0,
			fmt.Sprintf("candidate %q already profiled", normalized.CandidateProfile.CandidateName))
	}
	if match, ok := nearDuplicateTitle(normalized.Title, index.titleList); ok {
		return skip(ReasonNearDuplicateTitle, 0, fmt.Sprintf("title is near-identical to %q", match))
	}

	minSources := policy.MinSources
	if len(normalized.Sources) < minSources {
		return reject(ReasonInsufficientSources,
			fmt.Sprintf("need at least %d sources; found %d", minSources, len(normalized.Sources)))
	}
	if domains := distinctDomains(normalized.Sources); len(domains) < minSources {
		return reject(ReasonInsufficientSources,
			fmt.Sprintf("need at least %d distinct source domains; found %d", minSources, len(domains)))
	}

	if normalized.Confidence < policy.MinConfidence {
		return reject(ReasonLowConfidence,
			fmt.Sprintf("confidence %d is below minimum %d", normalized.Confidence, policy.MinConfidence))
	}
	for i, fact := range normalized.KeyFacts {
		if fact.Confidence < policy.MinConfidence {
			return reject(ReasonLowConfidence,
				fmt.Sprintf("key_facts[%d] confidence %d is below minimum %d", i, fact.Confidence, policy.MinConfidence))
		}
	}

	if policy.RequireFAQ {
		if err := checkContent(normalized.ContentHTML); err != nil {
			return reject(ReasonThinContent, err.Error())
		}
	}

	return Decision{Outcome: OutcomeAccept, Draft: normalized}
}

// distinctDomains collects the non-empty effective domains across sources.
func distinctDomains(sources []types.Source) map[string]bool {
	domains := make(map[string]bool, len(sources))
	for _, s := range sources {
		if d := s.EffectiveDomain(); d != "" {
			domains[d] = true
		}
	}
	return domains
}
