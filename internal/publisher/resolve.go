package publisher

import (
	"context"
	"fmt"
	"os"

	"github.com/apetcu/substack-skill/internal/imagemeta"
	"github.com/apetcu/substack-skill/internal/markdown"
	"github.com/apetcu/substack-skill/internal/prosemirror"
)

// resolveImages uploads local images one at a time, in document order, and
// replaces each placeholder at its recorded index. Replacement mutates the
// document array by index, which is why uploads stay sequential. A failed
// upload degrades that node to an empty paragraph; the run continues.
func (p *Publisher) resolveImages(ctx context.Context, doc *prosemirror.Node, refs []markdown.ImageRef) {
	for _, ref := range refs {
		node, err := p.resolveImage(ctx, ref)
		if err != nil {
			p.log.Warn("image upload failed, dropping image", "path", ref.Path, "error", err)
			doc.Content[ref.Index] = prosemirror.Paragraph(nil)
			continue
		}
		doc.Content[ref.Index] = node
	}
}

func (p *Publisher) resolveImage(ctx context.Context, ref markdown.ImageRef) (prosemirror.Node, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return prosemirror.Node{}, fmt.Errorf("read image: %w", err)
	}
	if p.maxImageBytes > 0 && int64(len(data)) > p.maxImageBytes {
		return prosemirror.Node{}, fmt.Errorf("image exceeds max size (%d bytes)", p.maxImageBytes)
	}

	info := imagemeta.Sniff(data)
	url, err := p.api.UploadImage(ctx, data, info.MIMEType)
	if err != nil {
		return prosemirror.Node{}, err
	}
	p.log.Info("image uploaded",
		"path", ref.Path,
		"url", url,
		"width", info.Width,
		"height", info.Height,
		"bytes", info.ByteSize,
	)
	return prosemirror.ResolvedImage(url, ref.Alt, info.MIMEType, info.Width, info.Height, info.ByteSize, markdown.ParseInline(ref.Alt)), nil
}
