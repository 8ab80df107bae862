// Copyright Electionwire Media, 2026. All rights reserved.

package wordpress

import (
	"fmt"
	"html"
	"strings"

	"github.com/electionwire/autopost/pkg/types"
)

// DecorateContent returns the post body with the candidate photo figure
// prepended and the sources section appended, when the draft provides them
// and the body does not already carry its own.
func DecorateContent(draft *types.PostDraft) string {
	content := strings.TrimSpace(draft.ContentHTML)

	if figure := candidateFigure(draft.CandidateProfile); figure != "" && !strings.Contains(content, "<figure") {
		content = figure + "\n\n" + content
	}
	if sources := sourcesSection(draft.Sources); sources != "" && !strings.Contains(content, "<h2>Sources</h2>") {
		content = content + "\n\n" + sources
	}
	return content
}

// sourcesSection renders the citation list as an ordered list under a
// Sources heading. Entries without an http(s) URL are dropped.
func sourcesSection(sources []types.Source) string {
	var items []string
	for _, s := range sources {
		u := strings.TrimSpace(s.URL)
		if !strings.HasPrefix(u, "http") {
			continue
		}
		domain := s.EffectiveDomain()
		publisher := strings.TrimSpace(s.Publisher)
		if publisher == "" {
			publisher = domain
		}
		label := strings.TrimSpace(fmt.Sprintf("%s (%s)", publisher, domain))
		items = append(items, fmt.Sprintf(
			`<li><a href="%s" rel="nofollow noopener" target="_blank">%s</a></li>`,
			html.EscapeString(u), html.EscapeString(label)))
	}
	if len(items) == 0 {
		return ""
	}
	return "<h2>Sources</h2>\n<ol>\n" + strings.Join(items, "\n") + "\n</ol>"
}

// candidateFigure renders the candidate photo with caption and source
// attribution. Returns "" when no usable image URL is present.
func candidateFigure(profile types.CandidateProfile) string {
	imageURL := strings.TrimSpace(profile.ProfileImageURL)
	if !strings.HasPrefix(imageURL, "http") {
		return ""
	}

	var captionParts []string
	if name := strings.TrimSpace(profile.CandidateName); name != "" {
		captionParts = append(captionParts, name)
	}
	if credit := strings.TrimSpace(profile.ProfileImageCredit); credit != "" {
		captionParts = append(captionParts, credit)
	}
	caption := strings.Join(captionParts, " - ")
	if caption == "" {
		caption = "Candidate photo"
	}

	if sourceURL := strings.TrimSpace(profile.ProfileImageSourceURL); strings.HasPrefix(sourceURL, "http") {
		caption = fmt.Sprintf(
			`%s (source: <a href="%s" rel="nofollow noopener" target="_blank">link</a>)`,
			caption, html.EscapeString(sourceURL))
	}

	alt := strings.TrimSpace(profile.CandidateName)
	if alt == "" {
		alt = "Candidate"
	}

	return fmt.Sprintf(
		"<figure>\n  <img src=\"%s\" alt=\"%s\" loading=\"lazy\">\n  <figcaption>%s</figcaption>\n</figure>",
		html.EscapeString(imageURL), html.EscapeString(alt), caption)
}
