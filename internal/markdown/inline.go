package markdown

import (
	"regexp"

	"github.com/apetcu/substack-skill/internal/prosemirror"
)

// inlinePattern matches the four inline forms in one alternation. Order
// matters: bold is tested before italic so a `**` span is never mis-split
// into two italic spans sharing a star. All matches are non-greedy and must
// close on the same line; anything unterminated stays plain text.
var inlinePattern = regexp.MustCompile(
	`(\*\*(.+?)\*\*)` + // bold
		`|(\*(.+?)\*)` + // italic
		"|(`(.+?)`)" + // inline code
		`|(\[([^\]]+)\]\(([^)]+)\))`, // link
)

// ParseInline tokenizes one line of text into ProseMirror text nodes. Marks
// never nest: each run carries at most one mark, and the text inside a
// matched span is not scanned again. Empty input yields nil.
func ParseInline(text string) []prosemirror.Node {
	if text == "" {
		return nil
	}

	var nodes []prosemirror.Node
	pos := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			nodes = append(nodes, prosemirror.Text(text[pos:m[0]]))
		}
		switch {
		case m[4] >= 0: // bold
			nodes = append(nodes, prosemirror.StrongText(text[m[4]:m[5]]))
		case m[8] >= 0: // italic
			nodes = append(nodes, prosemirror.EmText(text[m[8]:m[9]]))
		case m[12] >= 0: // code
			nodes = append(nodes, prosemirror.CodeText(text[m[12]:m[13]]))
		case m[16] >= 0: // link
			nodes = append(nodes, prosemirror.LinkText(text[m[16]:m[17]], text[m[18]:m[19]]))
		}
		pos = m[1]
	}
	if pos < len(text) {
		nodes = append(nodes, prosemirror.Text(text[pos:]))
	}
	return nodes
}
