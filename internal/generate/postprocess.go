// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var htmlTagPattern = regexp.MustCompile(`<\s*(h[1-6]|p|ul|ol|li|figure|section|article|div|blockquote)\b`)

// NormalizeContent cleans the generated post body. Code fences are
// stripped, and when the body carries no block-level HTML at all it is
// treated as markdown and rendered to HTML. Models occasionally ignore the
// "valid HTML" instruction and answer in markdown; rendering it beats
// publishing raw asterisks.
func NormalizeContent(content string) string {
	content = stripFences(content)
	if content == "" {
		return ""
	}

	if htmlTagPattern.MatchString(content) {
		return content
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return strings.TrimSpace(buf.String())
}
