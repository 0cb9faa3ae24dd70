package main

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/apetcu/substack-skill/internal/config"
	"github.com/apetcu/substack-skill/internal/markdown"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

var flagPreviewOut string

func init() {
	previewCmd.Flags().StringVarP(&flagPreviewOut, "out", "o", "", "Write HTML to a file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render the post body to HTML for a local visual check",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read post: %w", err)
	}

	cfg := config.Load()
	post := markdown.SplitSections(string(raw), markdown.SubtitleMode(cfg.SubtitleMode))

	var body bytes.Buffer
	if err := goldmark.New().Convert([]byte(post.Body), &body); err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n", html.EscapeString(post.Title))
	fmt.Fprintf(&page, "<h1>%s</h1>\n", html.EscapeString(post.Title))
	if post.Subtitle != "" {
		fmt.Fprintf(&page, "<p><em>%s</em></p>\n<hr>\n", html.EscapeString(post.Subtitle))
	}
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	if flagPreviewOut != "" {
		if err := os.WriteFile(flagPreviewOut, page.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(page.Bytes())
	return err
}
