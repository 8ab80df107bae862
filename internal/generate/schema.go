// Copyright Electionwire Media, 2026. All rights reserved.

package generate

// ResponseSchemaJSON is the JSON Schema the backends are constrained to.
// It mirrors types.GenerationPayload exactly; the boundary parser rejects
// anything that drifts from it.
const ResponseSchemaJSON = `{
  "type": "object",
  "properties": {
    "status": {"type": "string", "enum": ["publish", "skip"]},
    "reason": {"type": "string"},
    "title": {"type": "string"},
    "slug": {"type": "string"},
    "excerpt": {"type": "string"},
    "content_html": {"type": "string"},
    "post_status": {"type": "string", "enum": ["publish", "draft", "pending", "future"]},
    "topic_keywords": {"type": "array", "items": {"type": "string"}},
    "seo": {
      "type": "object",
      "properties": {
        "focus_keyphrase": {"type": "string"},
        "meta_title": {"type": "string"},
        "meta_description": {"type": "string"},
        "seo_slug_hint": {"type": "string"}
      },
      "required": ["focus_keyphrase", "meta_title", "meta_description"]
    },
    "sources": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "url": {"type": "string"},
          "domain": {"type": "string"},
          "publisher": {"type": "string"},
          "title": {"type": "string"}
        },
        "required": ["url"]
      }
    },
    "key_facts": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "fact": {"type": "string"},
          "supporting_source_urls": {"type": "array", "items": {"type": "string"}},
          "confidence": {"type": "integer"}
        },
        "required": ["fact", "supporting_source_urls", "confidence"]
      }
    },
    "category_name": {"type": "string"},
    "candidate_profile": {
      "type": "object",
      "properties": {
        "candidate_name": {"type": "string"},
        "election_name": {"type": "string"},
        "election_date": {"type": "string"},
        "party": {"type": "string"},
        "constituency": {"type": "string"},
        "current_position": {"type": "string"},
        "short_bio": {"type": "string"},
        "profile_source_url": {"type": "string"},
        "profile_image_url": {"type": "string"},
        "profile_image_source_url": {"type": "string"},
        "profile_image_credit": {"type": "string"}
      },
      "required": ["candidate_name", "election_name", "election_date", "party", "constituency", "current_position", "short_bio", "profile_source_url"]
    },
    "confidence": {"type": "integer"}
  },
  "required": ["status", "title", "slug", "excerpt", "content_html", "post_status", "topic_keywords", "seo", "sources", "key_facts", "candidate_profile", "confidence"]
}`
