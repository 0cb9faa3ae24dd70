package substack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	c := NewClient(baseURL, "sid123", 99)
	c.backoff = func(int) time.Duration { return 0 }
	return c
}

func TestCreateDraft_SendsEditorShapedPayload(t *testing.T) {
	var got draftPayload
	var cookie, userAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/drafts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		cookie = r.Header.Get("Cookie")
		userAgent = r.Header.Get("User-Agent")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(Draft{ID: 42})
	}))
	defer ts.Close()

	c := testClient(ts.URL)
	draft, err := c.CreateDraft(context.Background(), DraftRequest{
		Title:    "My Post",
		Subtitle: "A teaser",
		BodyJSON: `{"type":"doc"}`,
		Audience: "everyone",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.ID != 42 {
		t.Errorf("expected draft id 42, got %d", draft.ID)
	}
	if got.DraftTitle != "My Post" || got.DraftSubtitle != "A teaser" {
		t.Errorf("title/subtitle not forwarded: %+v", got)
	}
	if got.DraftBody != `{"type":"doc"}` {
		t.Errorf("expected stringified body, got %q", got.DraftBody)
	}
	if len(got.DraftBylines) != 1 || got.DraftBylines[0].ID != 99 {
		t.Errorf("expected byline with user id 99, got %+v", got.DraftBylines)
	}
	if got.Audience != "everyone" || got.Type != "newsletter" {
		t.Errorf("expected audience/type set, got %+v", got)
	}
	if !strings.Contains(cookie, "substack.sid=sid123") {
		t.Errorf("expected session cookie, got %q", cookie)
	}
	if !strings.Contains(userAgent, "Mozilla") {
		t.Errorf("expected browser user agent, got %q", userAgent)
	}
}

func TestUpdateDraft_PutsToDraftPath(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/drafts/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Draft{ID: 7})
	}))
	defer ts.Close()

	draft, err := testClient(ts.URL).UpdateDraft(context.Background(), 7, DraftRequest{Title: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.ID != 7 {
		t.Errorf("expected draft id 7, got %d", draft.ID)
	}
}

func TestPublishDraft_ReturnsSlug(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/drafts/42/publish" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]bool
		json.NewDecoder(r.Body).Decode(&body)
		if !body["send"] {
			t.Errorf("expected send=true, got %v", body)
		}
		json.NewEncoder(w).Encode(Draft{ID: 42, Slug: "my-post"})
	}))
	defer ts.Close()

	c := testClient(ts.URL)
	post, err := c.PublishDraft(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Slug != "my-post" {
		t.Errorf("expected slug %q, got %q", "my-post", post.Slug)
	}
	if url := c.PostURL(post.Slug); url != ts.URL+"/p/my-post" {
		t.Errorf("unexpected post url %q", url)
	}
}

func TestUploadImage_SendsDataURI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/image" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if !strings.HasPrefix(body["image"], "data:image/png;base64,") {
			t.Errorf("expected base64 data uri, got %q", body["image"])
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/x.png"})
	}))
	defer ts.Close()

	url, err := testClient(ts.URL).UploadImage(context.Background(), []byte{1, 2, 3}, "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/x.png" {
		t.Errorf("expected hosted url, got %q", url)
	}
}

func TestClient_AuthFailureIsNotRetried(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).CreateDraft(context.Background(), DraftRequest{})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if !strings.Contains(authErr.Error(), "session cookie") {
		t.Errorf("expected cookie guidance in error, got %q", authErr.Error())
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Draft{ID: 1})
	}))
	defer ts.Close()

	draft, err := testClient(ts.URL).CreateDraft(context.Background(), DraftRequest{})
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if draft.ID != 1 {
		t.Errorf("expected draft id 1, got %d", draft.ID)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestClient_ExhaustsRetries(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "still down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).CreateDraft(context.Background(), DraftRequest{})
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error after exhaustion, got %v", err)
	}
	if attempts != MaxRetries+1 {
		t.Errorf("expected %d attempts, got %d", MaxRetries+1, attempts)
	}
}

func TestDraftURL(t *testing.T) {
	c := NewClient("https://demo.substack.com", "s", 1)
	if got := c.DraftURL(5); got != "https://demo.substack.com/publish/post/5" {
		t.Errorf("unexpected draft url %q", got)
	}
}

func TestBackoff_BoundedWithJitter(t *testing.T) {
	for attempt := 0; attempt < 12; attempt++ {
		d := Backoff(attempt)
		if d < time.Second {
			t.Errorf("attempt %d: backoff below base: %v", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("attempt %d: backoff above cap+jitter: %v", attempt, d)
		}
	}
}
