package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/apetcu/substack-skill/internal/config"
	"github.com/apetcu/substack-skill/internal/markdown"
	"github.com/apetcu/substack-skill/internal/publisher"
	"github.com/apetcu/substack-skill/internal/substack"
	"github.com/spf13/cobra"
)

var (
	flagTitle        string
	flagSubtitle     string
	flagPublish      bool
	flagAudience     string
	flagDryRun       bool
	flagUpdateID     int
	flagSubtitleMode string
)

func init() {
	publishCmd.Flags().StringVar(&flagTitle, "title", "", "Override post title (default: from # heading)")
	publishCmd.Flags().StringVar(&flagSubtitle, "subtitle", "", "Override subtitle (default: from ## Hook)")
	publishCmd.Flags().BoolVar(&flagPublish, "publish", false, "Publish immediately (default: draft only)")
	publishCmd.Flags().StringVar(&flagAudience, "audience", "everyone", "Post audience: everyone or paid")
	publishCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Output ProseMirror JSON without API calls")
	publishCmd.Flags().IntVar(&flagUpdateID, "update", 0, "Update an existing draft by id instead of creating one")
	publishCmd.Flags().StringVar(&flagSubtitleMode, "subtitle-mode", "full", "Hook subtitle extraction: full or first-paragraph")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish <file.md>",
	Short: "Convert a markdown post and create a Substack draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	if flagAudience != "everyone" && flagAudience != "paid" {
		return fmt.Errorf("invalid audience %q: must be everyone or paid", flagAudience)
	}

	log := newLogger()
	cfg := config.Load()

	mode := flagSubtitleMode
	if !cmd.Flags().Changed("subtitle-mode") {
		mode = cfg.SubtitleMode
	}
	opts := publisher.Options{
		Title:        flagTitle,
		Subtitle:     flagSubtitle,
		Audience:     flagAudience,
		Publish:      flagPublish,
		DryRun:       flagDryRun,
		UpdateID:     flagUpdateID,
		SubtitleMode: markdown.SubtitleMode(mode),
	}

	if flagDryRun {
		pub := publisher.New(nil, log, cfg.MaxImageBytes)
		res, err := pub.Run(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(res.Doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	client := substack.NewClient(cfg.BaseURL(), cfg.SID, cfg.UserID)
	defer client.Close()

	pub := publisher.New(client, log, cfg.MaxImageBytes)
	res, err := pub.Run(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	if res.PostURL != "" {
		fmt.Fprintln(os.Stdout, res.PostURL)
	} else {
		fmt.Fprintln(os.Stdout, res.DraftURL)
	}
	return nil
}
