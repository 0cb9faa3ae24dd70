package markdown

import (
	"github.com/apetcu/substack-skill/internal/prosemirror"
)

// Result holds the output of one body conversion.
type Result struct {
	// Doc is the ProseMirror document root. Always well-formed; malformed
	// input degrades to paragraphs rather than failing.
	Doc prosemirror.Node

	// Images lists local image references that still need uploading. Each
	// Index points at the placeholder's position in Doc.Content so the
	// resolution pass can replace it without walking the tree.
	Images []ImageRef

	// Warnings records benign input irregularities.
	Warnings []Warning
}

// ImageRef describes a local image awaiting resolution.
type ImageRef struct {
	Index int    // position of the placeholder in Doc.Content
	Path  string // resolved filesystem path
	Alt   string
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningMissingImage      WarningType = "missing_image"
	WarningUnterminatedFence WarningType = "unterminated_fence"
)

// Warning is a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
}
