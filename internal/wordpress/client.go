// Copyright Electionwire Media, 2026. All rights reserved.

// Package wordpress is the content store gateway: read-only queries over
// existing posts plus the single insert that creates a candidate profile
// post with its metadata.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/electionwire/autopost/internal/httputil"
	"github.com/electionwire/autopost/pkg/types"
)

// restPrefix is the WordPress REST namespace appended to the site base URL.
const restPrefix = "/wp-json/wp/v2"

// perPage is the REST pagination size; 100 is the API maximum.
const perPage = 100

// liveStatuses are the non-trashed post statuses the index is built from.
const liveStatuses = "publish,draft,pending,future"

// defaultCandidateMetaKey is the post meta field carrying the profiled
// candidate's name.
const defaultCandidateMetaKey = "candidate_name"

// Client talks to a WordPress site over its REST API using an application
// password. BaseURL is declared without the /wp-json prefix.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	Username   string
	AppPass    string
	UserAgent  string
	MaxRetries int

	// CandidateMetaKey overrides defaultCandidateMetaKey when set.
	CandidateMetaKey string
}

// NewClient builds a Client from store configuration.
func NewClient(cfg types.StoreConfig) *Client {
	return &Client{
		HTTP:             &http.Client{Timeout: cfg.Timeout},
		BaseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		Username:         cfg.Username,
		AppPass:          cfg.AppPassword,
		UserAgent:        cfg.UserAgent,
		CandidateMetaKey: cfg.CandidateMetaKey,
	}
}

func (c *Client) candidateMetaKey() string {
	if c.CandidateMetaKey != "" {
		return c.CandidateMetaKey
	}
	return defaultCandidateMetaKey
}

// get issues an authenticated GET and decodes the JSON body into out.
// Returns the response headers for pagination.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (http.Header, error) {
	reqURL := c.BaseURL + restPrefix + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.decorate(req)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("store request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store returned HTTP %d for %s: %s", resp.StatusCode, path, readError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("parsing store response for %s: %w", path, err)
	}
	return resp.Header, nil
}

// post issues an authenticated POST with a JSON body and decodes the
// 200/201 response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+restPrefix+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return fmt.Errorf("store write %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("store returned HTTP %d for %s: %s", resp.StatusCode, path, readError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing store response for %s: %w", path, err)
	}
	return nil
}

func (c *Client) decorate(req *http.Request) {
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.AppPass)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
}

// readError pulls the message field out of a WordPress error body, falling
// back to the raw body.
func readError(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	var wpErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &wpErr); err == nil && wpErr.Message != "" {
		return wpErr.Message
	}
	return strings.TrimSpace(string(data))
}

// restPost is the subset of the REST post representation the gateway reads.
type restPost struct {
	ID    int64 `json:"id"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Slug string         `json:"slug"`
	Link string         `json:"link"`
	Meta map[string]any `json:"meta"`
}

// ListPosts returns id, title, and slug for every non-trashed post, most
// recent first. Pages through the API at 100 posts per request.
func (c *Client) ListPosts(ctx context.Context) ([]types.PostRef, error) {
	var refs []types.PostRef
	for page := 1; ; page++ {
		posts, totalPages, err := c.postsPage(ctx, page, "id,title,slug")
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			refs = append(refs, types.PostRef{ID: p.ID, Title: p.Title.Rendered, Slug: p.Slug})
		}
		if page >= totalPages {
			return refs, nil
		}
	}
}

// ListCandidateNames returns the distinct non-empty candidate names recorded
// in post meta across non-trashed posts, in ascending order.
func (c *Client) ListCandidateNames(ctx context.Context) ([]string, error) {
	key := c.candidateMetaKey()
	seen := make(map[string]bool)
	for page := 1; ; page++ {
		posts, totalPages, err := c.postsPage(ctx, page, "id,meta")
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			if name, ok := p.Meta[key].(string); ok {
				if name = strings.TrimSpace(name); name != "" {
					seen[name] = true
				}
			}
		}
		if page >= totalPages {
			break
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// postsPage fetches one page of posts with the given _fields selection and
// returns the page plus the total page count from X-WP-TotalPages.
func (c *Client) postsPage(ctx context.Context, page int, fields string) ([]restPost, int, error) {
	params := url.Values{
		"status":   {liveStatuses},
		"per_page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(page)},
		"orderby":  {"date"},
		"order":    {"desc"},
		"_fields":  {fields},
		"context":  {"edit"},
	}

	var posts []restPost
	header, err := c.get(ctx, "/posts", params, &posts)
	if err != nil {
		return nil, 0, err
	}

	totalPages, _ := strconv.Atoi(header.Get("X-WP-TotalPages"))
	if totalPages < 1 {
		totalPages = 1
	}
	return posts, totalPages, nil
}

// restCategory is the subset of the category representation used here.
type restCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EnsureCategory resolves a category id by exact name, creating the
// category when no exact match exists. The search is paginated so an
// exact match beyond the first page is still found rather than
// duplicated.
func (c *Client) EnsureCategory(ctx context.Context, name string) (int64, error) {
	for page, totalPages := 1, 1; page <= totalPages; page++ {
		params := url.Values{
			"search":   {name},
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		var categories []restCategory
		header, err := c.get(ctx, "/categories", params, &categories)
		if err != nil {
			return 0, err
		}
		for _, cat := range categories {
			if strings.EqualFold(cat.Name, name) {
				return cat.ID, nil
			}
		}
		if tp, _ := strconv.Atoi(header.Get("X-WP-TotalPages")); tp > totalPages {
			totalPages = tp
		}
	}

	var created restCategory
	if err := c.post(ctx, "/categories", map[string]string{"name": name}, &created); err != nil {
		return 0, fmt.Errorf("creating category %q: %w", name, err)
	}
	return created.ID, nil
}

// InsertPost persists the normalized draft as one new post with candidate
// and SEO metadata attached. The category is resolved or created by name
// first; the insert itself is a single API call that either succeeds or
// fails whole. A write failure aborts the run: the gate already accepted,
// so this is an I/O failure, not a validation failure.
func (c *Client) InsertPost(ctx context.Context, draft *types.PostDraft) (types.InsertResult, error) {
	categoryID, err := c.EnsureCategory(ctx, draft.CategoryName)
	if err != nil {
		return types.InsertResult{}, err
	}

	body := map[string]any{
		"title":      draft.Title,
		"slug":       draft.Slug,
		"excerpt":    draft.Excerpt,
		"content":    DecorateContent(draft),
		"status":     string(draft.PostStatus),
		"categories": []int64{categoryID},
		"meta":       PostMeta(draft, c.candidateMetaKey()),
	}

	var created restPost
	if err := c.post(ctx, "/posts", body, &created); err != nil {
		return types.InsertResult{}, fmt.Errorf("inserting post %q: %w", draft.Title, err)
	}

	return types.InsertResult{
		Status:  types.InsertCreated,
		PostID:  created.ID,
		PostURL: created.Link,
	}, nil
}
