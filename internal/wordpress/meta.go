// Copyright Electionwire Media, 2026. All rights reserved.

package wordpress

import (
	"encoding/json"

	"github.com/electionwire/autopost/pkg/types"
)

// SEO plugin meta key conventions. The same values are written under every
// convention so the post renders correctly whichever plugin is installed.
const (
	yoastTitleKey    = "_yoast_wpseo_title"
	yoastDescKey     = "_yoast_wpseo_metadesc"
	yoastFocusKey    = "_yoast_wpseo_focuskw"
	rankMathTitleKey = "rank_math_title"
	rankMathDescKey  = "rank_math_description"
	rankMathFocusKey = "rank_math_focus_keyword"
	aioseoTitleKey   = "_aioseo_title"
	aioseoDescKey    = "_aioseo_description"
)

// PostMeta builds the meta map attached to a created post: the individual
// candidate fields, the full profile and source list as JSON snapshots, the
// topic keywords, and the SEO fields mirrored into each plugin convention.
func PostMeta(draft *types.PostDraft, candidateKey string) map[string]any {
	profile := draft.CandidateProfile

	meta := map[string]any{
		candidateKey:                 profile.CandidateName,
		"candidate_election_name":    profile.ElectionName,
		"candidate_election_date":    profile.ElectionDate,
		"candidate_party":            profile.Party,
		"candidate_constituency":     profile.Constituency,
		"candidate_current_position": profile.CurrentPosition,
		"candidate_profile_json":     asJSON(profile),
		"post_sources_json":          asJSON(draft.Sources),
		"topic_keywords":             draft.TopicKeywords,
		"generation_confidence":      draft.Confidence,
	}

	meta[yoastTitleKey] = draft.SEO.MetaTitle
	meta[yoastDescKey] = draft.SEO.MetaDescription
	meta[yoastFocusKey] = draft.SEO.FocusKeyphrase
	meta[rankMathTitleKey] = draft.SEO.MetaTitle
	meta[rankMathDescKey] = draft.SEO.MetaDescription
	meta[rankMathFocusKey] = draft.SEO.FocusKeyphrase
	meta[aioseoTitleKey] = draft.SEO.MetaTitle
	meta[aioseoDescKey] = draft.SEO.MetaDescription

	return meta
}

func asJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
