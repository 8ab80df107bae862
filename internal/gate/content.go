// Copyright Electionwire Media, 2026. All rights reserved.

package gate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minFAQQuestions is the number of question headings an FAQ section needs.
const minFAQQuestions = 3

// checkContent verifies the structural quality of the post body: it must
// parse as HTML, carry at least one h2 section heading, and include an FAQ
// section with at least three question h3s.
func checkContent(contentHTML string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return fmt.Errorf("content_html does not parse: %w", err)
	}

	if doc.Find("h2").Length() == 0 {
		return fmt.Errorf("content_html has no h2 section headings")
	}

	hasFAQ := false
	doc.Find("h2,h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), "faq") ||
			strings.Contains(strings.ToLower(s.Text()), "frequently asked") {
			hasFAQ = true
			return false
		}
		return true
	})
	if !hasFAQ {
		return fmt.Errorf("content_html is missing an FAQ section")
	}

	questions := 0
	doc.Find("h3").Each(func(_ int, s *goquery.Selection) {
		if strings.HasSuffix(strings.TrimSpace(s.Text()), "?") {
			questions++
		}
	})
	if questions < minFAQQuestions {
		return fmt.Errorf("FAQ section has %d question headings; need at least %d", questions, minFAQQuestions)
	}

	return nil
}
