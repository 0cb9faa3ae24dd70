// Package publisher drives one post through the full pipeline: split the
// source file, convert the body, resolve local images, and push the draft to
// Substack.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/apetcu/substack-skill/internal/markdown"
	"github.com/apetcu/substack-skill/internal/prosemirror"
	"github.com/apetcu/substack-skill/internal/substack"
)

// DraftAPI is the slice of the Substack client the publisher needs.
type DraftAPI interface {
	CreateDraft(ctx context.Context, req substack.DraftRequest) (*substack.Draft, error)
	UpdateDraft(ctx context.Context, draftID int, req substack.DraftRequest) (*substack.Draft, error)
	PublishDraft(ctx context.Context, draftID int) (*substack.Draft, error)
	UploadImage(ctx context.Context, data []byte, mimeType string) (string, error)
	DraftURL(draftID int) string
	PostURL(slug string) string
}

// Publisher converts and publishes markdown posts.
type Publisher struct {
	api           DraftAPI
	log           *slog.Logger
	maxImageBytes int64
}

func New(api DraftAPI, log *slog.Logger, maxImageBytes int64) *Publisher {
	return &Publisher{
		api:           api,
		log:           log,
		maxImageBytes: maxImageBytes,
	}
}

// Options configure one publish run.
type Options struct {
	Title        string // override the title from the # heading
	Subtitle     string // override the subtitle from the ## Hook section
	Audience     string // "everyone" or "paid"
	Publish      bool   // publish immediately instead of leaving a draft
	DryRun       bool   // convert only, no network calls
	UpdateID     int    // update this existing draft instead of creating one
	SubtitleMode markdown.SubtitleMode
}

// Result reports what a run produced.
type Result struct {
	Title    string
	Subtitle string
	Doc      prosemirror.Node
	Warnings []markdown.Warning
	DraftID  int
	DraftURL string
	PostURL  string
}

// Run converts the markdown file at path and, unless DryRun is set, creates
// or updates a Substack draft from it. Local images upload sequentially in
// document order before the draft is sent.
func (p *Publisher) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post: %w", err)
	}

	mode := opts.SubtitleMode
	if mode == "" {
		mode = markdown.SubtitleFull
	}
	post := markdown.SplitSections(string(raw), mode)
	if opts.Title != "" {
		post.Title = opts.Title
	}
	if opts.Subtitle != "" {
		post.Subtitle = opts.Subtitle
	}

	conv := markdown.Convert(post.Body, markdown.Options{BaseDir: filepath.Dir(path)})
	for _, w := range conv.Warnings {
		p.log.Warn("conversion warning", "type", string(w.Type), "detail", w.Message)
	}

	res := &Result{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Doc:      conv.Doc,
		Warnings: conv.Warnings,
	}
	if opts.DryRun {
		return res, nil
	}

	p.resolveImages(ctx, &res.Doc, conv.Images)

	bodyJSON, err := json.Marshal(res.Doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	req := substack.DraftRequest{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		BodyJSON: string(bodyJSON),
		Audience: opts.Audience,
	}

	var draft *substack.Draft
	if opts.UpdateID > 0 {
		draft, err = p.api.UpdateDraft(ctx, opts.UpdateID, req)
	} else {
		draft, err = p.api.CreateDraft(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	res.DraftID = draft.ID
	res.DraftURL = p.api.DraftURL(draft.ID)
	p.log.Info("draft saved", "id", draft.ID, "url", res.DraftURL)

	if opts.Publish {
		published, err := p.api.PublishDraft(ctx, draft.ID)
		if err != nil {
			return nil, err
		}
		res.PostURL = p.api.PostURL(published.Slug)
		p.log.Info("post published", "url", res.PostURL)
	}
	return res, nil
}
