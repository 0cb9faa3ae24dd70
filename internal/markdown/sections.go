// Package markdown converts a small Markdown dialect into ProseMirror JSON.
//
// The conversion runs in two passes: a section split that pulls out the
// title, the hook subtitle, and the metadata sections that never reach the
// published post, followed by a line-oriented block parser that hands each
// piece of text content to a single-pass inline tokenizer.
package markdown

import "strings"

// SubtitleMode selects how much of the hook section becomes the subtitle.
type SubtitleMode string

const (
	// SubtitleFull uses the whole hook section as the subtitle.
	SubtitleFull SubtitleMode = "full"

	// SubtitleFirstParagraph uses only the hook's first paragraph as the
	// subtitle and folds the remaining hook lines back into the body.
	SubtitleFirstParagraph SubtitleMode = "first-paragraph"
)

// excludedSections are metadata sections stripped from the post entirely:
// neither the heading nor the content reaches the body or subtitle.
var excludedSections = map[string]bool{
	"status":              true,
	"hashtags":            true,
	"notes":               true,
	"verdict":             true,
	"linkedin assessment": true,
}

// DefaultTitle is used when no top-level heading precedes the first section.
const DefaultTitle = "Untitled"

// Post is the result of splitting a raw document.
type Post struct {
	Title    string
	Subtitle string
	Body     string
}

// SplitSections scans raw document text and separates the title (first H1
// seen before any H2), the hook section (subtitle material), and the body.
// Excluded metadata sections are dropped. Any input, headings or not,
// produces a valid result.
func SplitSections(raw string, mode SubtitleMode) Post {
	var (
		title     string
		hookLines []string
		bodyLines []string
		section   string
		inHook    bool
		seenH2    bool
		hookAt    = -1 // body position where hook remainder folds back in
	)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		// First H1 before any section heading becomes the title.
		if title == "" && !seenH2 && strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## ") {
			title = strings.TrimSpace(line[2:])
			continue
		}

		if strings.HasPrefix(line, "## ") {
			seenH2 = true
			section = strings.ToLower(strings.TrimSpace(line[3:]))
			inHook = section == "hook"
			if excludedSections[section] {
				continue
			}
			if inHook {
				if hookAt < 0 {
					hookAt = len(bodyLines)
				}
				continue
			}
			bodyLines = append(bodyLines, line)
			continue
		}

		if excludedSections[section] {
			continue
		}
		if inHook {
			hookLines = append(hookLines, line)
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	subtitle, rest := extractSubtitle(hookLines, mode)
	if len(rest) > 0 && hookAt >= 0 {
		bodyLines = append(bodyLines[:hookAt], append(rest, bodyLines[hookAt:]...)...)
	}

	// Trim leading and trailing blank lines from the body.
	for len(bodyLines) > 0 && strings.TrimSpace(bodyLines[0]) == "" {
		bodyLines = bodyLines[1:]
	}
	for len(bodyLines) > 0 && strings.TrimSpace(bodyLines[len(bodyLines)-1]) == "" {
		bodyLines = bodyLines[:len(bodyLines)-1]
	}

	if title == "" {
		title = DefaultTitle
	}
	return Post{
		Title:    title,
		Subtitle: subtitle,
		Body:     strings.Join(bodyLines, "\n"),
	}
}

// extractSubtitle reduces the hook section to subtitle text. In
// first-paragraph mode the lines after the first paragraph are returned so
// the caller can fold them back into the body.
func extractSubtitle(hookLines []string, mode SubtitleMode) (string, []string) {
	if mode != SubtitleFirstParagraph {
		return strings.TrimSpace(strings.Join(hookLines, "\n")), nil
	}

	// Skip leading blanks, take lines up to the first blank.
	start := 0
	for start < len(hookLines) && strings.TrimSpace(hookLines[start]) == "" {
		start++
	}
	end := start
	for end < len(hookLines) && strings.TrimSpace(hookLines[end]) != "" {
		end++
	}
	subtitle := strings.TrimSpace(strings.Join(hookLines[start:end], "\n"))

	rest := hookLines[end:]
	for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
		rest = rest[1:]
	}
	return subtitle, rest
}
