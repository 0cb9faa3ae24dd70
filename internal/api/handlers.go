package api

import (
	"encoding/json"
	"net/http"

	"github.com/apetcu/substack-skill/internal/markdown"
	"github.com/apetcu/substack-skill/internal/prosemirror"
)

type convertRequest struct {
	Markdown     string `json:"markdown"`
	SubtitleMode string `json:"subtitle_mode,omitempty"`
}

type convertResponse struct {
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Doc      prosemirror.Node   `json:"doc"`
	Warnings []markdown.Warning `json:"warnings,omitempty"`
}

// handleConvert splits and converts a whole markdown document. The server
// has no post directory to resolve against, so local image references are
// dropped with a warning instead of becoming placeholders.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeConvertRequest(w, r)
	if !ok {
		return
	}

	post := markdown.SplitSections(req.Markdown, subtitleMode(req.SubtitleMode))
	conv := markdown.Convert(post.Body, markdown.Options{
		FileExists: func(string) bool { return false },
	})

	writeJSON(w, convertResponse{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Doc:      conv.Doc,
		Warnings: conv.Warnings,
	})
}

type splitResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
}

// handleSplit runs only the section split, for callers that want the raw
// body back.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeConvertRequest(w, r)
	if !ok {
		return
	}
	post := markdown.SplitSections(req.Markdown, subtitleMode(req.SubtitleMode))
	writeJSON(w, splitResponse{Title: post.Title, Subtitle: post.Subtitle, Body: post.Body})
}

func decodeConvertRequest(w http.ResponseWriter, r *http.Request) (convertRequest, bool) {
	var req convertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	if req.Markdown == "" {
		jsonError(w, "markdown is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func subtitleMode(s string) markdown.SubtitleMode {
	if s == string(markdown.SubtitleFirstParagraph) {
		return markdown.SubtitleFirstParagraph
	}
	return markdown.SubtitleFull
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
