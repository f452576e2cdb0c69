package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 64 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeJPEG(t *testing.T, dataURI string) image.Image {
	t.Helper()
	payload, ok := strings.CutPrefix(dataURI, "data:image/jpeg;base64,")
	require.True(t, ok, "output must be a jpeg data uri")
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestRecompressCapsLargeImages(t *testing.T) {
	compressor := NewCompressor(1024, 80)

	out, err := compressor.Recompress(pngDataURI(t, 2000, 2000))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	require.Equal(t, 1024, img.Bounds().Dx())
	require.Equal(t, 1024, img.Bounds().Dy())
}

func TestRecompressPreservesAspectRatio(t *testing.T) {
	compressor := NewCompressor(100, 80)

	out, err := compressor.Recompress(pngDataURI(t, 400, 200))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 50, img.Bounds().Dy())
}

func TestRecompressLeavesSmallDimensionsAlone(t *testing.T) {
	compressor := NewCompressor(1024, 80)

	out, err := compressor.Recompress(pngDataURI(t, 300, 200))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	require.Equal(t, 300, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestRecompressRejectsBadInput(t *testing.T) {
	compressor := NewCompressor(0, 0)

	_, err := compressor.Recompress("https://example.com/a.png")
	require.Error(t, err)

	_, err = compressor.Recompress("data:image/png;base64,!!!")
	require.Error(t, err)

	_, err = compressor.Recompress("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")))
	require.Error(t, err)
}
