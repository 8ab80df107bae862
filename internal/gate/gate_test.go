package gate

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/electionwire/autopost/pkg/types"
)

func testPolicy() types.GateConfig {
	return types.GateConfig{
		MinSources:    8,
		MinConfidence: 85,
		PostStatus:    types.StatusPublish,
		CategoryName:  "Nepal Election 2026",
	}
}

// validDraft returns a draft that passes every check against an empty index.
func validDraft() *types.PostDraft {
	sources := make([]types.Source, 0, 12)
	for i := 0; i < 12; i++ {
		sources = append(sources, types.Source{
			URL:       fmt.Sprintf("https://news%d.example.com/profile", i),
			Publisher: fmt.Sprintf("Publisher %d", i),
		})
	}
	return &types.PostDraft{
		Title:         "Maya Gurung Profile: Nepal Election 2026 Candidate",
		Slug:          "maya-gurung-profile-nepal-election-2026",
		Excerpt:       "A profile of Maya Gurung, candidate in Nepal's 2026 general election.",
		ContentHTML:   "<h2>Background</h2><p>Maya Gurung grew up in Pokhara.</p>",
		PostStatus:    types.StatusPublish,
		TopicKeywords: []string{"nepal election", "maya gurung", "pokhara"},
		SEO: types.SEO{
			FocusKeyphrase:  "maya gurung profile",
			MetaTitle:       "Maya Gurung Profile: Nepal Election 2026 Candidate Guide",
			MetaDescription: "Who is Maya Gurung? Party, constituency, policy positions, and electoral outlook for Nepal's 2026 general election, with sourced key facts.",
		},
		Sources:      sources,
		CategoryName: "Nepal Election 2026",
		CandidateProfile: types.CandidateProfile{
			CandidateName:    "Maya Gurung",
			ElectionName:     "Nepal General Election 2026",
			ElectionDate:     "2026-03-05",
			Party:            "Example Party",
			Constituency:     "Kaski 2",
			CurrentPosition:  "Provincial Assembly Member",
			ShortBio:         "Maya Gurung is a provincial assembly member from Kaski.",
			ProfileSourceURL: "https://news0.example.com/profile",
		},
		Confidence: 90,
	}
}

func TestEvaluate_MissingFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*types.PostDraft)
	}{
		{"title", func(d *types.PostDraft) { d.Title = "" }},
		{"slug", func(d *types.PostDraft) { d.Slug = "" }},
		{"excerpt", func(d *types.PostDraft) { d.Excerpt = "" }},
		{"content_html", func(d *types.PostDraft) { d.ContentHTML = "" }},
		{"post_status", func(d *types.PostDraft) { d.PostStatus = "" }},
		{"topic_keywords", func(d *types.PostDraft) { d.TopicKeywords = nil }},
		{"candidate_profile", func(d *types.PostDraft) { d.CandidateProfile = types.CandidateProfile{} }},
		{"seo", func(d *types.PostDraft) { d.SEO = types.SEO{} }},
		{"sources", func(d *types.PostDraft) { d.Sources = nil }},
		{"category_name", func(d *types.PostDraft) { d.CategoryName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)
			policy := testPolicy()
			switch tt.field {
			case "category_name":
				policy.CategoryName = ""
			case "post_status":
				// An empty policy status must not backfill the draft.
				policy.PostStatus = ""
			}

			dec := Evaluate(draft, NewIndex(nil, nil), policy)
			if dec.Outcome != OutcomeReject {
				t.Fatalf("outcome = %q, want reject", dec.Outcome)
			}
			want := MissingFieldReason(tt.field)
			if dec.Reason != want {
				t.Errorf("reason = %q, want %q", dec.Reason, want)
			}
		})
	}
}

func TestEvaluate_UnsupportedStatus(t *testing.T) {
	t.Run("from draft", func(t *testing.T) {
		draft := validDraft()
		draft.PostStatus = "private"
		policy := testPolicy()
		policy.PostStatus = ""

		dec := Evaluate(draft, NewIndex(nil, nil), policy)
		if dec.Outcome != OutcomeReject || dec.Reason != ReasonUnsupportedStatus {
			t.Fatalf("decision = %q/%q, want reject/unsupported_status", dec.Outcome, dec.Reason)
		}
	})

	t.Run("from policy", func(t *testing.T) {
		policy := testPolicy()
		policy.PostStatus = "private"

		dec := Evaluate(validDraft(), NewIndex(nil, nil), policy)
		if dec.Outcome != OutcomeReject || dec.Reason != ReasonUnsupportedStatus {
			t.Fatalf("decision = %q/%q, want reject/unsupported_status", dec.Outcome, dec.Reason)
		}
	})
}

func TestEvaluate_PolicyStatusOverridesDraft(t *testing.T) {
	draft := validDraft()
	draft.PostStatus = types.StatusPublish
	policy := testPolicy()
	policy.PostStatus = types.StatusDraft

	dec := Evaluate(draft, NewIndex(nil, nil), policy)
	if !dec.Accepted() {
		t.Fatalf("decision = %q/%q, want accept", dec.Outcome, dec.Reason)
	}
	if dec.Draft.PostStatus != types.StatusDraft {
		t.Errorf("post status = %q, want draft", dec.Draft.PostStatus)
	}
	if draft.PostStatus != types.StatusPublish {
		t.Errorf("input draft mutated to %q", draft.PostStatus)
	}
}

func TestEvaluate_PolicyStatusBackfillsOmission(t *testing.T) {
	draft := validDraft()
	draft.PostStatus = ""

	dec := Evaluate(draft, NewIndex(nil, nil), testPolicy())
	if !dec.Accepted() {
		t.Fatalf("decision = %q/%q, want accept", dec.Outcome, dec.Reason)
	}
	if dec.Draft.PostStatus != types.StatusPublish {
		t.Errorf("post status = %q, want publish", dec.Draft.PostStatus)
	}
}

func TestEvaluate_DuplicateTitle(t *testing.T) {
	draft := validDraft()
	draft.Title = "Ram Sharma Profile"
	// Same slug as the indexed post too: the title check must fire first.
	draft.Slug = "ram-sharma-profile"

	index := NewIndex([]types.PostRef{
		{ID: 731, Title: "Ram Sharma Profile", Slug: "ram-sharma-profile"},
	}, nil)

	dec := Evaluate(draft, index, testPolicy())
	if dec.Outcome != OutcomeSkip || dec.Reason != ReasonDuplicateTitle {
		t.Fatalf("decision = %q/%q, want skip/duplicate_title", dec.Outcome, dec.Reason)
	}
	if dec.ExistingID != 731 {
		t.Errorf("existing id = %d, want 731", dec.ExistingID)
	}
}

func TestEvaluate_DuplicateSlug(t *testing.T) {
	draft := validDraft()

	index := NewIndex([]types.PostRef{
		{ID: 88, Title: "A Different Headline Entirely", Slug: draft.Slug},
	}, nil)

	dec := Evaluate(draft, index, testPolicy())
	if dec.Outcome != OutcomeSkip || dec.Reason != ReasonDuplicateSlug {
		t.Fatalf("decision = %q/%q, want skip/duplicate_slug", dec.Outcome, dec.Reason)
	}
	if dec.ExistingID != 88 {
		t.Errorf("existing id = %d, want 88", dec.ExistingID)
	}
}

func TestEvaluate_DuplicateCandidate(t *testing.T) {
	draft := validDraft()

	dec := Evaluate(draft, NewIndex(nil, []string{"Maya  Gurung"}), testPolicy())
	if dec.Outcome != OutcomeSkip || dec.Reason != ReasonDuplicateCandidate {
		t.Fatalf("decision = %q/%q, want skip/duplicate_candidate", dec.Outcome, dec.Reason)
	}
}

func TestEvaluate_NearDuplicateTitle(t *testing.T) {
	draft := validDraft()

	index := NewIndex([]types.PostRef{
		{ID: 12, Title: "Maya Gurung profile — Nepal election 2026 candidate", Slug: "other-slug"},
	}, nil)

	dec := Evaluate(draft, index, testPolicy())
	if dec.Outcome != OutcomeSkip || dec.Reason != ReasonNearDuplicateTitle {
		t.Fatalf("decision = %q/%q, want skip/near_duplicate_title", dec.Outcome, dec.Reason)
	}
}

func TestEvaluate_InsufficientSources(t *testing.T) {
	draft := validDraft()
	draft.Sources = draft.Sources[:5]
	// Low confidence too: the source check must win.
	draft.Confidence = 10

	dec := Evaluate(draft, NewIndex(nil, nil), testPolicy())
	if dec.Outcome != OutcomeReject || dec.Reason != ReasonInsufficientSources {
		t.Fatalf("decision = %q/%q, want reject/insufficient_sources", dec.Outcome, dec.Reason)
	}
}

func TestEvaluate_InsufficientDistinctDomains(t *testing.T) {
	draft := validDraft()
	for i := range draft.Sources {
		draft.Sources[i].URL = fmt.Sprintf("https://samehost.example.com/page-%d", i)
	}

	dec := Evaluate(draft, NewIndex(nil, nil), testPolicy())
	if dec.Outcome != OutcomeReject || dec.Reason != ReasonInsufficientSources {
		t.Fatalf("decision = %q/%q, want reject/insufficient_sources", dec.Outcome, dec.Reason)
	}
}

func TestEvaluate_LowConfidence(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.PostDraft)
	}{
		{"overall", func(d *types.PostDraft) { d.Confidence = 84 }},
		{"key fact", func(d *types.PostDraft) {
			d.KeyFacts = []types.KeyFact{
				{Fact: "won 2022 provincial seat", Confidence: 95,
					SupportingSourceURLs: []string{"https://a.example.com", "https://b.example.com"}},
				{Fact: "endorsed by elders council", Confidence: 60,
					SupportingSourceURLs: []string{"https://c.example.com", "https://d.example.com"}},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)
			dec := Evaluate(draft, NewIndex(nil, nil), testPolicy())
			if dec.Outcome != OutcomeReject || dec.Reason != ReasonLowConfidence {
				t.Fatalf("decision = %q/%q, want reject/low_confidence", dec.Outcome, dec.Reason)
			}
		})
	}
}

func TestEvaluate_RequireFAQ(t *testing.T) {
	policy := testPolicy()
	policy.RequireFAQ = true

	draft := validDraft()
	dec := Evaluate(draft, NewIndex(nil, nil), policy)
	if dec.Outcome != OutcomeReject || dec.Reason != ReasonThinContent {
		t.Fatalf("decision = %q/%q, want reject/thin_content", dec.Outcome, dec.Reason)
	}

	draft.ContentHTML = `<h2>Background</h2><p>Maya Gurung grew up in Pokhara.</p>
<h2>FAQ</h2>
<h3>Which party does Maya Gurung represent?</h3><p>Example Party.</p>
<h3>Which constituency is she contesting?</h3><p>Kaski 2.</p>
<h3>When is the election?</h3><p>2026-03-05.</p>`
	dec = Evaluate(draft, NewIndex(nil, nil), policy)
	if !dec.Accepted() {
		t.Fatalf("outcome = %q (%s), want accept", dec.Outcome, dec.Detail)
	}
}

func TestEvaluate_Accept(t *testing.T) {
	draft := validDraft()
	index := NewIndex([]types.PostRef{
		{ID: 5, Title: "Some Unrelated Headline About Infrastructure", Slug: "unrelated"},
	}, []string{"Hari Prasad"})

	dec := Evaluate(draft, index, testPolicy())
	if !dec.Accepted() {
		t.Fatalf("outcome = %q (%s %s), want accept", dec.Outcome, dec.Reason, dec.Detail)
	}
	if dec.Draft == nil {
		t.Fatal("accepted decision has no normalized draft")
	}
	if dec.Draft.SEO.SlugHint != dec.Draft.Slug {
		t.Errorf("slug hint %q not aligned with slug %q", dec.Draft.SEO.SlugHint, dec.Draft.Slug)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	draft := validDraft()
	index := NewIndex([]types.PostRef{{ID: 1, Title: "Existing", Slug: "existing"}}, nil)

	first := Evaluate(draft, index, testPolicy())
	second := Evaluate(draft, index, testPolicy())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluate is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	draft := validDraft()
	draft.TopicKeywords = []string{
		"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10", "k11", "k12",
	}
	before := *draft
	beforeKeywords := append([]string(nil), draft.TopicKeywords...)

	dec := Evaluate(draft, NewIndex(nil, nil), testPolicy())
	if !dec.Accepted() {
		t.Fatalf("outcome = %q, want accept", dec.Outcome)
	}
	if len(dec.Draft.TopicKeywords) != 10 {
		t.Errorf("normalized keywords = %d, want 10", len(dec.Draft.TopicKeywords))
	}
	if !reflect.DeepEqual(dec.Draft.TopicKeywords, beforeKeywords[:10]) {
		t.Errorf("keyword order changed: %v", dec.Draft.TopicKeywords)
	}
	if draft.Title != before.Title || len(draft.TopicKeywords) != 12 {
		t.Error("Evaluate mutated its input draft")
	}
}
