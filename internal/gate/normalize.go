// Copyright Electionwire Media, 2026. All rights reserved.

package gate

import (
	"regexp"
	"strings"

	"github.com/electionwire/autopost/pkg/types"
)

const (
	// maxTopicKeywords is the number of topic keywords retained on a draft.
	maxTopicKeywords = 10

	// maxMetaTitleChars and maxMetaDescriptionChars are the SEO-safe upper
	// bounds for search-result metadata.
	maxMetaTitleChars       = 65
	maxMetaDescriptionChars = 170

	// maxSlugChars bounds the kebab-case slug.
	maxSlugChars = 120
)

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Normalize returns a cleaned copy of draft: whitespace collapsed, topic
// keywords capped at 10 (order preserved), SEO metadata clamped to safe
// lengths, the slug reduced to kebab-case, source domains filled in, and the
// category defaulted from policy when the draft names none. The input is
// not modified.
func Normalize(draft *types.PostDraft, policy types.GateConfig) *types.PostDraft {
	d := *draft

	d.Title = normalizeWS(d.Title)
	d.Excerpt = normalizeWS(d.Excerpt)
	d.CategoryName = normalizeWS(d.CategoryName)
	if d.CategoryName == "" {
		d.CategoryName = normalizeWS(policy.CategoryName)
	}

	d.TopicKeywords = normalizeKeywords(d.TopicKeywords)

	d.SEO.FocusKeyphrase = normalizeWS(d.SEO.FocusKeyphrase)
	if d.SEO.FocusKeyphrase == "" {
		d.SEO.FocusKeyphrase = keyphraseFromTitle(d.Title)
	}
	if d.SEO.MetaTitle = normalizeWS(d.SEO.MetaTitle); d.SEO.MetaTitle == "" {
		d.SEO.MetaTitle = d.Title
	}
	d.SEO.MetaTitle = trimToMaxChars(d.SEO.MetaTitle, maxMetaTitleChars)
	if d.SEO.MetaDescription = normalizeWS(d.SEO.MetaDescription); d.SEO.MetaDescription == "" {
		d.SEO.MetaDescription = d.Excerpt
	}
	d.SEO.MetaDescription = trimToMaxChars(d.SEO.MetaDescription, maxMetaDescriptionChars)

	if slug := trimSlug(d.Slug); slug != "" {
		d.Slug = slug
	} else {
		d.Slug = trimSlug(d.SEO.FocusKeyphrase)
	}
	// Keep the schema hint aligned with the final canonical slug.
	d.SEO.SlugHint = d.Slug

	d.Sources = append([]types.Source(nil), d.Sources...)
	for i := range d.Sources {
		d.Sources[i].Domain = d.Sources[i].EffectiveDomain()
	}

	return &d
}

// normalizeKeywords trims and dedups keywords, keeping the first 10 in order.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	var out []string
	for _, kw := range keywords {
		kw = normalizeWS(kw)
		if kw == "" || seen[strings.ToLower(kw)] {
			continue
		}
		seen[strings.ToLower(kw)] = true
		out = append(out, kw)
		if len(out) == maxTopicKeywords {
			break
		}
	}
	return out
}

// keyphraseFromTitle derives a fallback focus keyphrase from the first four
// substantial title words.
func keyphraseFromTitle(title string) string {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(title), -1) {
		if len(w) > 2 {
			words = append(words, w)
		}
		if len(words) == 4 {
			break
		}
	}
	return strings.Join(words, " ")
}

// normalizeWS collapses runs of whitespace to single spaces and trims.
func normalizeWS(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// trimToMaxChars clips text to maxChars on a word boundary, dropping any
// trailing punctuation left by the cut.
func trimToMaxChars(text string, maxChars int) string {
	text = normalizeWS(text)
	if len(text) <= maxChars {
		return text
	}
	clipped := strings.TrimRight(text[:maxChars], " ")
	if i := strings.LastIndex(clipped, " "); i > 0 {
		clipped = clipped[:i]
	}
	return strings.TrimRight(clipped, " ,;:-")
}

// trimSlug reduces text to a kebab-case slug of at most 120 characters.
func trimSlug(text string) string {
	slug := strings.Join(wordPattern.FindAllString(strings.ToLower(normalizeWS(text)), -1), "-")
	if len(slug) > maxSlugChars {
		slug = slug[:maxSlugChars]
		if i := strings.LastIndex(slug, "-"); i > 0 {
			slug = slug[:i]
		}
	}
	return strings.Trim(slug, "-")
}
