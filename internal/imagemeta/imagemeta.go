// Package imagemeta inspects raw image bytes for the metadata Substack's
// editor wants alongside an uploaded asset: MIME type, intrinsic pixel
// dimensions, and byte size.
package imagemeta

import (
	"bytes"
	"net/http"

	"github.com/fumiama/imgsz"
)

// Info describes an image file's intrinsic properties.
type Info struct {
	MIMEType string
	Width    int
	Height   int
	ByteSize int
}

// Sniff decodes the format header of raw image bytes. Dimensions come from
// the format-specific header (PNG IHDR, JPEG SOFn); formats the size decoder
// does not recognize report 0x0 but still get a sniffed MIME type.
func Sniff(data []byte) Info {
	info := Info{
		MIMEType: http.DetectContentType(data),
		ByteSize: len(data),
	}
	sz, format, err := imgsz.DecodeSize(bytes.NewReader(data))
	if err != nil {
		return info
	}
	info.Width = sz.Width
	info.Height = sz.Height
	if info.MIMEType == "application/octet-stream" && format != "" {
		info.MIMEType = "image/" + format
	}
	return info
}
