// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// maxPromptEntries caps the existing-title and candidate lists embedded in
// the prompt so it stays within model context limits.
const maxPromptEntries = 350

// promptTmpl instructs the model to research one candidate and answer with
// JSON matching the response schema.
var promptTmpl = template.Must(template.New("research").Parse(`You are an expert political researcher and editor producing one WordPress-ready candidate profile.
Current date: {{.Today}}
Primary topic area: {{.Topic}}
Target election date: {{.ElectionDate}}

Hard rules:
1) Pick one real candidate relevant to the election on {{.ElectionDate}}.
2) The post must be a candidate profile, not generic election news.
3) Do not repeat a candidate already covered in existing candidate profiles.
4) Use live web research and gather information from at least {{.MinSources}} unique websites (distinct domains).
5) Prioritize official party pages, candidate pages, election authority releases, major national/international reporting, and verified interviews.
6) Every factual claim must be supported in key_facts with at least 2 supporting URLs.
7) Do not invent names, affiliations, offices, dates, quotes, endorsements, or incidents.
8) If you cannot satisfy all rules confidently, return status="skip" with a reason. For skip responses, still include all required fields with safe empty values.
9) Avoid topics already covered by existing post titles (exact or near-duplicate topics).
10) content_html must be valid HTML (no markdown fences), 1200-2200 words, with headings and concise paragraphs.
11) Include profile sections: background, political career timeline, key policy positions, public controversies/criticisms (if reliably sourced), and electoral outlook.
12) Include an FAQ section with at least 3 question-and-answer items under h3 question headings.
13) If a reliable candidate image URL is found, set candidate_profile.profile_image_url and candidate_profile.profile_image_source_url; otherwise leave those fields empty strings.
14) SEO requirements: create seo.focus_keyphrase, seo.meta_title, and seo.meta_description. Include the focus keyphrase in title, slug, excerpt, first paragraph, and at least one H2.
15) Keep claims conservative; when uncertain, omit the claim.
16) Set confidence and every key_facts[*].confidence to at least {{.MinConfidence}} for publishable output.

Existing WordPress post titles:
{{range .Titles}}- {{.}}
{{else}}- (none)
{{end}}
Existing candidate profiles already published or drafted:
{{range .Candidates}}- {{.}}
{{else}}- (none)
{{end}}
Return only JSON that matches the provided schema.`))

// promptData feeds promptTmpl.
type promptData struct {
	Today         string
	Topic         string
	ElectionDate  string
	MinSources    int
	MinConfidence int
	Titles        []string
	Candidates    []string
}

// BuildPrompt renders the research prompt against the current index
// snapshot. Existing titles and candidate names are capped at 350 entries
// each, newest first as supplied by the store.
func BuildPrompt(topic, electionDate string, titles, candidates []string, minSources, minConfidence int) (string, error) {
	data := promptData{
		Today:         time.Now().Format("2006-01-02"),
		Topic:         topic,
		ElectionDate:  electionDate,
		MinSources:    minSources,
		MinConfidence: minConfidence,
		Titles:        capEntries(titles),
		Candidates:    capEntries(candidates),
	}

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

func capEntries(entries []string) []string {
	if len(entries) > maxPromptEntries {
		return entries[:maxPromptEntries]
	}
	return entries
}
