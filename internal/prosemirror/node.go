// Package prosemirror models the ProseMirror document JSON that Substack's
// editor consumes: a "doc" node containing an ordered list of block nodes,
// each block holding inline text nodes with at most one mark apiece.
package prosemirror

// Node is a single ProseMirror node. Block and inline nodes share the same
// shape; which fields are populated depends on Type.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is a style annotation on a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node type names as Substack's editor expects them.
const (
	TypeDoc              = "doc"
	TypeParagraph        = "paragraph"
	TypeHeading          = "heading"
	TypeCodeBlock        = "codeBlock"
	TypeBlockquote       = "blockquote"
	TypeBulletList       = "bullet_list"
	TypeOrderedList      = "ordered_list"
	TypeListItem         = "list_item"
	TypeHorizontalRule   = "horizontal_rule"
	TypeCaptionedImage   = "captionedImage"
	TypeImagePlaceholder = "imagePlaceholder"
	TypeText             = "text"
)

// Mark type names.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkCode   = "code"
	MarkLink   = "link"
)

// Doc wraps block nodes in a document root. An empty document still carries
// one empty paragraph so the editor has a cursor position.
func Doc(blocks []Node) Node {
	if len(blocks) == 0 {
		blocks = []Node{Paragraph(nil)}
	}
	return Node{Type: TypeDoc, Content: blocks}
}

// Paragraph builds a paragraph from inline nodes. A nil or empty inline
// sequence produces an empty paragraph, which renders as a blank line.
func Paragraph(inline []Node) Node {
	return Node{Type: TypeParagraph, Content: inline}
}

// Heading builds a heading at the given level (1-3 in this dialect).
func Heading(level int, inline []Node) Node {
	return Node{
		Type:    TypeHeading,
		Attrs:   map[string]any{"level": level},
		Content: inline,
	}
}

// CodeBlock builds a fenced code block. The text is stored verbatim,
// newlines included; no inline parsing applies inside a code block.
func CodeBlock(language, text string) Node {
	n := Node{Type: TypeCodeBlock}
	if language != "" {
		n.Attrs = map[string]any{"language": language}
	}
	if text != "" {
		n.Content = []Node{Text(text)}
	}
	return n
}

// Blockquote wraps a single paragraph. Nested quote structure is not
// modeled; callers collapse consecutive quoted lines first.
func Blockquote(paragraph Node) Node {
	return Node{Type: TypeBlockquote, Content: []Node{paragraph}}
}

// BulletList builds an unordered list from item paragraphs.
func BulletList(items []Node) Node {
	return Node{Type: TypeBulletList, Content: listItems(items)}
}

// OrderedList builds an ordered list from item paragraphs. Numbering always
// starts at 1 regardless of the literal labels in the source.
func OrderedList(items []Node) Node {
	return Node{
		Type:    TypeOrderedList,
		Attrs:   map[string]any{"order": 1},
		Content: listItems(items),
	}
}

func listItems(paragraphs []Node) []Node {
	items := make([]Node, len(paragraphs))
	for i, p := range paragraphs {
		items[i] = Node{Type: TypeListItem, Content: []Node{p}}
	}
	return items
}

// HorizontalRule builds a thematic break.
func HorizontalRule() Node {
	return Node{Type: TypeHorizontalRule}
}

// CaptionedImage builds a fully-resolved image node for an externally-hosted
// source. A non-empty alt text doubles as the caption; callers pass the
// inline-parsed caption nodes so alt text keeps its marks.
func CaptionedImage(src, alt string, caption []Node) Node {
	n := Node{
		Type:  TypeCaptionedImage,
		Attrs: map[string]any{"src": src, "alt": alt},
	}
	if alt != "" {
		n.Content = []Node{Paragraph(caption)}
	}
	return n
}

// ResolvedImage builds an image node for an uploaded asset, carrying the
// intrinsic dimensions and byte size decoded from the original file.
func ResolvedImage(src, alt, mimeType string, width, height, byteSize int, caption []Node) Node {
	n := CaptionedImage(src, alt, caption)
	n.Attrs["type"] = mimeType
	n.Attrs["width"] = width
	n.Attrs["height"] = height
	n.Attrs["bytes"] = byteSize
	return n
}

// ImagePlaceholder stands in for a local image that has not been uploaded
// yet. The publish step replaces it in place with a ResolvedImage, or with an
// empty paragraph when the upload fails.
func ImagePlaceholder(localPath, alt string) Node {
	return Node{
		Type:  TypeImagePlaceholder,
		Attrs: map[string]any{"path": localPath, "alt": alt},
	}
}

// Text builds an unmarked text node.
func Text(s string) Node {
	return Node{Type: TypeText, Text: s}
}

// StrongText builds a bold text node.
func StrongText(s string) Node {
	return Node{Type: TypeText, Text: s, Marks: []Mark{{Type: MarkStrong}}}
}

// EmText builds an italic text node.
func EmText(s string) Node {
	return Node{Type: TypeText, Text: s, Marks: []Mark{{Type: MarkEm}}}
}

// CodeText builds an inline-code text node.
func CodeText(s string) Node {
	return Node{Type: TypeText, Text: s, Marks: []Mark{{Type: MarkCode}}}
}

// LinkText builds a linked text node.
func LinkText(s, href string) Node {
	return Node{
		Type:  TypeText,
		Text:  s,
		Marks: []Mark{{Type: MarkLink, Attrs: map[string]any{"href": href}}},
	}
}
