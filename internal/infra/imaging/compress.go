package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"

	"github.com/luvit/moodfit/internal/domain/recommend"
)

// Compressor downscales data-URI images and re-encodes them as JPEG so
// cache entries stay small. Generated images arrive as megabyte-scale PNG
// payloads; after recompression they fit comfortably in the cache slot.
type Compressor struct {
	maxWidth    int
	jpegQuality int
}

// NewCompressor builds the compressor. Zero values fall back to the
// defaults (1024px, quality 80).
func NewCompressor(maxWidth, jpegQuality int) *Compressor {
	if maxWidth <= 0 {
		maxWidth = 1024
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 80
	}
	return &Compressor{maxWidth: maxWidth, jpegQuality: jpegQuality}
}

// Recompress implements recommend.Compressor. The input must be a base64
// data URI; the output is always a JPEG data URI. Images already within
// the size cap are still re-encoded, which strips alpha and metadata.
func (c *Compressor) Recompress(dataURI string) (string, error) {
	payload, err := decodePayload(dataURI)
	if err != nil {
		return "", err
	}
	src, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	dst := c.scale(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scale caps the larger dimension at maxWidth, preserving aspect ratio.
func (c *Compressor) scale(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= c.maxWidth {
		return src
	}

	ratio := float64(c.maxWidth) / float64(longest)
	dw := int(float64(w) * ratio)
	dh := int(float64(h) * ratio)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func decodePayload(dataURI string) ([]byte, error) {
	rest, found := strings.CutPrefix(dataURI, "data:")
	if !found {
		return nil, fmt.Errorf("not a data uri")
	}
	meta, encoded, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data uri encoding")
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return payload, nil
}

var _ recommend.Compressor = (*Compressor)(nil)
