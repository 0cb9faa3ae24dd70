// Package substack talks to the Substack drafts and image APIs using a
// session-cookie authenticated HTTP client.
package substack

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// browserUserAgent keeps Cloudflare from challenging the API calls.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Client communicates with one publication's Substack API.
type Client struct {
	baseURL    string
	sid        string
	userID     int
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
}

// NewClient creates a client for the publication at baseURL
// (https://<subdomain>.substack.com), authenticated by the substack.sid
// session cookie.
func NewClient(baseURL, sid string, userID int) *Client {
	return &Client{
		baseURL: baseURL,
		sid:     sid,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: Backoff,
	}
}

// DraftRequest carries the fields of a draft create or update.
type DraftRequest struct {
	Title    string
	Subtitle string
	BodyJSON string // stringified ProseMirror document
	Audience string // "everyone" or "paid"
}

// Draft is the API's view of a draft post.
type Draft struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
}

type byline struct {
	ID      int  `json:"id"`
	IsGuest bool `json:"is_guest"`
}

// draftPayload mirrors the wire shape the Substack editor sends.
type draftPayload struct {
	DraftTitle           string   `json:"draft_title"`
	DraftSubtitle        string   `json:"draft_subtitle"`
	DraftPodcastURL      any      `json:"draft_podcast_url"`
	DraftPodcastDuration any      `json:"draft_podcast_duration"`
	DraftBody            string   `json:"draft_body"`
	SectionChosen        bool     `json:"section_chosen"`
	DraftSectionID       any      `json:"draft_section_id"`
	DraftBylines         []byline `json:"draft_bylines"`
	Audience             string   `json:"audience"`
	Type                 string   `json:"type"`
}

func (c *Client) payload(req DraftRequest) draftPayload {
	return draftPayload{
		DraftTitle:    req.Title,
		DraftSubtitle: req.Subtitle,
		DraftBody:     req.BodyJSON,
		DraftBylines:  []byline{{ID: c.userID}},
		Audience:      req.Audience,
		Type:          "newsletter",
	}
}

// CreateDraft creates a new draft and returns its identifier.
func (c *Client) CreateDraft(ctx context.Context, req DraftRequest) (*Draft, error) {
	var draft Draft
	if err := c.do(ctx, http.MethodPost, "/api/v1/drafts", c.payload(req), &draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return &draft, nil
}

// UpdateDraft overwrites an existing draft in place.
func (c *Client) UpdateDraft(ctx context.Context, draftID int, req DraftRequest) (*Draft, error) {
	var draft Draft
	path := fmt.Sprintf("/api/v1/drafts/%d", draftID)
	if err := c.do(ctx, http.MethodPut, path, c.payload(req), &draft); err != nil {
		return nil, fmt.Errorf("update draft %d: %w", draftID, err)
	}
	return &draft, nil
}

// PublishDraft publishes an existing draft and returns the published post,
// whose slug forms the public URL.
func (c *Client) PublishDraft(ctx context.Context, draftID int) (*Draft, error) {
	var post Draft
	path := fmt.Sprintf("/api/v1/drafts/%d/publish", draftID)
	body := map[string]bool{"send": true}
	if err := c.do(ctx, http.MethodPost, path, body, &post); err != nil {
		return nil, fmt.Errorf("publish draft %d: %w", draftID, err)
	}
	return &post, nil
}

// UploadImage pushes raw image bytes to the Substack CDN as a base64 data
// URI and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	body := map[string]string{"image": dataURI}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/image", body, &resp); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("upload image: response carried no url")
	}
	return resp.URL, nil
}

// DraftURL returns the editor URL for a draft.
func (c *Client) DraftURL(draftID int) string {
	return fmt.Sprintf("%s/publish/post/%d", c.baseURL, draftID)
}

// PostURL returns the public URL for a published post slug.
func (c *Client) PostURL(slug string) string {
	return fmt.Sprintf("%s/p/%s", c.baseURL, slug)
}

// do sends one JSON request, retrying transient failures with backoff.
func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		lastErr = c.doOnce(ctx, method, path, reqBody, respBody)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("substack api: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Message: string(respData)}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respData)}
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return fmt.Errorf("substack api status %d: %s", resp.StatusCode, truncate(string(respData), 200))
	}

	if respBody != nil {
		if err := json.Unmarshal(respData, respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// setHeaders attaches the cookie auth and the browser-shaped headers that
// keep Cloudflare from challenging the request.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", "substack.sid="+c.sid)
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/publish/post?type=newsletter")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
