package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T) image.Image {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func samePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := want.Bounds().Min.Y; y < want.Bounds().Max.Y; y++ {
		for x := want.Bounds().Min.X; x < want.Bounds().Max.X; x++ {
			wr, wg, wb, wa := want.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			require.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel %d,%d", x, y)
		}
	}
}

func TestNormalizeVariantsAreEquivalent(t *testing.T) {
	img := testImage(t)
	encoded := encodePNG(t, img)

	path := filepath.Join(t.TempDir(), "pet.png")
	require.NoError(t, os.WriteFile(path, encoded, 0644))

	sources := map[string]Source{
		"path":    PathSource(path),
		"bytes":   BytesSource(encoded),
		"decoded": DecodedSource{Image: img},
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			data, err := Normalize(src)
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			samePixels(t, img, decoded)
		})
	}
}

func TestNormalizeMissingPath(t *testing.T) {
	_, err := Normalize(PathSource(filepath.Join(t.TempDir(), "missing.png")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read image file")
}

func TestNormalizeEmptyBytes(t *testing.T) {
	_, err := Normalize(BytesSource(nil))
	require.Error(t, err)
}

func TestNormalizeNilDecoded(t *testing.T) {
	_, err := Normalize(DecodedSource{})
	require.Error(t, err)
}

func TestNormalizeNilSource(t *testing.T) {
	_, err := Normalize(nil)
	require.Error(t, err)
}

func TestDecodeCorruptBuffer(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.Error(t, err)
}

func TestSniff(t *testing.T) {
	mime, ok := Sniff(encodePNG(t, testImage(t)))
	require.True(t, ok)
	require.Equal(t, "image/png", mime)

	_, ok = Sniff([]byte("plain text, not an image"))
	require.False(t, ok)
}
