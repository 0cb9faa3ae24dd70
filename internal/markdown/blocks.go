package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/apetcu/substack-skill/internal/prosemirror"
)

var (
	imagePattern       = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)`)
	orderedItemPattern = regexp.MustCompile(`^\d+\.\s+(.*)$`)
	boldLabelPattern   = regexp.MustCompile(`^\*\*(.+?):\*\*\s*$`)
)

// Options control a body conversion.
type Options struct {
	// BaseDir resolves relative local image paths. Defaults to ".".
	BaseDir string

	// FileExists reports whether a local image path exists. Defaults to an
	// os.Stat check; tests substitute their own.
	FileExists func(path string) bool
}

// Convert runs the block-level state machine over body text and returns the
// ProseMirror document plus the local images that still need uploading. It
// never fails: worst case a block is classified as a paragraph.
func Convert(body string, opts Options) Result {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.FileExists == nil {
		opts.FileExists = func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		}
	}

	p := &blockParser{opts: opts, lines: strings.Split(body, "\n")}
	p.run()
	return Result{
		Doc:      prosemirror.Doc(p.blocks),
		Images:   p.images,
		Warnings: p.warnings,
	}
}

// blockParser walks the body line by line. Each call to step consumes one
// block; the dispatch order below is the dialect's precedence order and is
// re-evaluated from the top after every block.
type blockParser struct {
	opts     Options
	lines    []string
	pos      int
	blocks   []prosemirror.Node
	images   []ImageRef
	warnings []Warning
}

func (p *blockParser) run() {
	for p.pos < len(p.lines) {
		p.step()
	}
}

func (p *blockParser) step() {
	line := strings.TrimSpace(p.lines[p.pos])

	switch {
	case line == "":
		p.pos++ // blank lines only delimit blocks
	case strings.HasPrefix(line, "```"):
		p.parseFence(line)
	case isHorizontalRule(line):
		p.blocks = append(p.blocks, prosemirror.HorizontalRule())
		p.pos++
	case headingLevel(line) > 0:
		level := headingLevel(line)
		text := strings.TrimSpace(line[level+1:])
		p.blocks = append(p.blocks, prosemirror.Heading(level, ParseInline(text)))
		p.pos++
	case imagePattern.MatchString(line):
		p.parseImage(line)
	case strings.HasPrefix(line, "> "):
		p.parseBlockquote()
	case orderedItemPattern.MatchString(line):
		p.parseOrderedList()
	case isBulletItem(line):
		p.parseBulletList()
	case boldLabelPattern.MatchString(line):
		// A standalone "**label:**" line reads as a structural heading.
		label := boldLabelPattern.FindStringSubmatch(line)[1]
		p.blocks = append(p.blocks, prosemirror.Heading(3, ParseInline(label)))
		p.pos++
	default:
		p.parseParagraph(line)
	}
}

// parseFence consumes a fenced code block verbatim, blank lines included.
// An unterminated fence swallows the rest of the body.
func (p *blockParser) parseFence(opening string) {
	language := strings.TrimSpace(opening[3:])
	p.pos++

	var codeLines []string
	closed := false
	for p.pos < len(p.lines) {
		if strings.HasPrefix(strings.TrimSpace(p.lines[p.pos]), "```") {
			p.pos++
			closed = true
			break
		}
		codeLines = append(codeLines, p.lines[p.pos])
		p.pos++
	}
	if !closed {
		p.warn(WarningUnterminatedFence, "code fence not closed before end of document")
	}
	p.blocks = append(p.blocks, prosemirror.CodeBlock(language, strings.Join(codeLines, "\n")))
}

// parseImage handles `![alt](src)`. Remote sources resolve immediately;
// local ones become placeholders recorded for the upload pass, or warnings
// when the file is missing.
func (p *blockParser) parseImage(line string) {
	m := imagePattern.FindStringSubmatch(line)
	alt, src := m[1], m[2]
	p.pos++

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		p.blocks = append(p.blocks, prosemirror.CaptionedImage(src, alt, ParseInline(alt)))
		return
	}

	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.opts.BaseDir, path)
	}
	if !p.opts.FileExists(path) {
		p.warn(WarningMissingImage, fmt.Sprintf("skipping local image: %s", src))
		return
	}
	p.images = append(p.images, ImageRef{Index: len(p.blocks), Path: path, Alt: alt})
	p.blocks = append(p.blocks, prosemirror.ImagePlaceholder(path, alt))
}

// parseBlockquote collapses consecutive quoted lines into one paragraph.
func (p *blockParser) parseBlockquote() {
	var quoted []string
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if !strings.HasPrefix(line, "> ") {
			break
		}
		quoted = append(quoted, line[2:])
		p.pos++
	}
	text := strings.Join(quoted, " ")
	p.blocks = append(p.blocks, prosemirror.Blockquote(prosemirror.Paragraph(ParseInline(text))))
}

// parseOrderedList consumes consecutive numbered lines. Numbering restarts
// at 1 regardless of the literal labels.
func (p *blockParser) parseOrderedList() {
	var items []prosemirror.Node
	for p.pos < len(p.lines) {
		m := orderedItemPattern.FindStringSubmatch(strings.TrimSpace(p.lines[p.pos]))
		if m == nil {
			break
		}
		items = append(items, prosemirror.Paragraph(ParseInline(m[1])))
		p.pos++
	}
	p.blocks = append(p.blocks, prosemirror.OrderedList(items))
}

func (p *blockParser) parseBulletList() {
	var items []prosemirror.Node
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if !isBulletItem(line) {
			break
		}
		items = append(items, prosemirror.Paragraph(ParseInline(line[2:])))
		p.pos++
	}
	p.blocks = append(p.blocks, prosemirror.BulletList(items))
}

// parseParagraph joins consecutive plain lines with single spaces, stopping
// at a blank line or, by lookahead, at any line that starts another block.
func (p *blockParser) parseParagraph(first string) {
	paraLines := []string{first}
	p.pos++
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if line == "" {
			p.pos++
			break
		}
		if startsBlock(line) {
			break
		}
		paraLines = append(paraLines, line)
		p.pos++
	}
	text := strings.Join(paraLines, " ")
	p.blocks = append(p.blocks, prosemirror.Paragraph(ParseInline(text)))
}

func (p *blockParser) warn(t WarningType, msg string) {
	p.warnings = append(p.warnings, Warning{Type: t, Message: msg})
}

// startsBlock reports whether a line opens one of the non-paragraph blocks.
// Paragraph accumulation stops just before such a line.
func startsBlock(line string) bool {
	return strings.HasPrefix(line, "```") ||
		isHorizontalRule(line) ||
		headingLevel(line) > 0 ||
		imagePattern.MatchString(line) ||
		strings.HasPrefix(line, "> ") ||
		orderedItemPattern.MatchString(line) ||
		isBulletItem(line) ||
		boldLabelPattern.MatchString(line)
}

func isHorizontalRule(line string) bool {
	return line == "---" || line == "***" || line == "___"
}

// headingLevel returns 1-3 for a heading line and 0 otherwise. The most
// specific marker is tested first so "### x" is level 3, never 1.
func headingLevel(line string) int {
	switch {
	case strings.HasPrefix(line, "### "):
		return 3
	case strings.HasPrefix(line, "## "):
		return 2
	case strings.HasPrefix(line, "# "):
		return 1
	}
	return 0
}

func isBulletItem(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}
