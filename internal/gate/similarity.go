// Copyright Electionwire Media, 2026. All rights reserved.

package gate

import "strings"

// nearDuplicateThreshold is the Jaccard similarity above which two titles
// are treated as covering the same topic.
const nearDuplicateThreshold = 0.72

// stopwords are common words excluded from title token sets.
var stopwords = map[string]bool{
	"about": true, "after": true, "again": true, "against": true,
	"also": true, "and": true, "are": true, "been": true,
	"before": true, "being": true, "between": true, "could": true,
	"during": true, "from": true, "have": true, "into": true,
	"more": true, "most": true, "over": true, "that": true,
	"their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "through": true,
	"under": true, "using": true, "what": true, "when": true,
	"where": true, "which": true, "with": true, "your": true,
}

// normalizeTitle lowercases text and collapses every non-alphanumeric run
// to a single space, for order-insensitive exact comparison.
func normalizeTitle(text string) string {
	return strings.Join(wordPattern.FindAllString(strings.ToLower(text), -1), " ")
}

// titleTokens returns the set of substantial, non-stopword tokens in text.
func titleTokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) > 2 && !stopwords[tok] {
			tokens[tok] = true
		}
	}
	return tokens
}

// jaccard computes |left ∩ right| / |left ∪ right| over token sets.
func jaccard(left, right map[string]bool) float64 {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	intersection := 0
	for tok := range left {
		if right[tok] {
			intersection++
		}
	}
	union := len(left) + len(right) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// nearDuplicateTitle reports whether title is a near-duplicate of any
// existing title, either by normalized exact match or by token-set Jaccard
// similarity at or above the threshold. Returns the matched title.
func nearDuplicateTitle(title string, existing []string) (string, bool) {
	normalized := normalizeTitle(title)
	tokens := titleTokens(title)
	for _, other := range existing {
		if normalized != "" && normalized == normalizeTitle(other) {
			return other, true
		}
		if jaccard(tokens, titleTokens(other)) >= nearDuplicateThreshold {
			return other, true
		}
	}
	return "", false
}
