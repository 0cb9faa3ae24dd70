package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "substack-post",
	Short: "Publish markdown posts to Substack",
	Long: `substack-post converts a markdown post into Substack's ProseMirror
document format and publishes it as a draft or live article.

The source format is a small markdown dialect: the first # heading becomes
the title, a ## Hook section becomes the subtitle, and metadata sections
(Status, Hashtags, Notes, Verdict, LinkedIn Assessment) are stripped.

Requires SUBSTACK_SID, SUBSTACK_SUBDOMAIN and SUBSTACK_USER_ID in the
environment for anything that talks to Substack.

Examples:
  substack-post publish post.md --dry-run
  substack-post publish post.md --title "My Post"
  substack-post publish post.md --publish --audience everyone
  substack-post preview post.md > post.html
  substack-post serve`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
