package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Substack session
	SID       string
	Subdomain string
	UserID    int

	// Conversion
	SubtitleMode string

	// Upload limits
	MaxImageBytes int64

	// Serve mode
	Port   string
	APIKey string
}

func Load() Config {
	cfg := Config{
		SID:       os.Getenv("SUBSTACK_SID"),
		Subdomain: os.Getenv("SUBSTACK_SUBDOMAIN"),
		UserID:    envInt("SUBSTACK_USER_ID", 0),

		SubtitleMode: envOr("SUBSTACK_SUBTITLE_MODE", "full"),

		MaxImageBytes: envInt64("MAX_IMAGE_BYTES", 10485760), // 10MB

		Port:   envOr("PORT", "8091"),
		APIKey: os.Getenv("SUBSTACK_SKILL_API_KEY"),
	}

	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 10485760
	}

	return cfg
}

// Validate checks the credentials needed to talk to Substack. Conversion-only
// paths (dry runs, preview, serve) work without them.
func (c Config) Validate() error {
	if c.SID == "" {
		return fmt.Errorf("SUBSTACK_SID is required (your substack.sid cookie value)")
	}
	if c.Subdomain == "" {
		return fmt.Errorf("SUBSTACK_SUBDOMAIN is required (e.g. adrianpetcu)")
	}
	if c.UserID == 0 {
		return fmt.Errorf("SUBSTACK_USER_ID is required (find it in Substack network requests)")
	}
	return nil
}

// BaseURL returns the publication's root URL.
func (c Config) BaseURL() string {
	return fmt.Sprintf("https://%s.substack.com", c.Subdomain)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
