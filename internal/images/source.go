// Package images normalizes the accepted image inputs to the encoded
// bytes sent to the model backend.
package images

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Source is one of the accepted image inputs: a file path, raw encoded
// bytes, or an already-decoded image. The unexported method keeps the set
// closed.
type Source interface {
	payload() ([]byte, error)
}

// PathSource is a path to an encoded image file on disk.
type PathSource string

func (p PathSource) payload() ([]byte, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// BytesSource is the full contents of an encoded image file.
type BytesSource []byte

func (b BytesSource) payload() ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("empty image buffer")
	}
	return []byte(b), nil
}

// DecodedSource is an in-memory decoded image. It is re-serialized to PNG
// so the transport bytes stay lossless.
type DecodedSource struct {
	Image image.Image
}

func (d DecodedSource) payload() ([]byte, error) {
	if d.Image == nil {
		return nil, fmt.Errorf("no decoded image provided")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, d.Image, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Normalize converts any Source into encoded image bytes.
func Normalize(src Source) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("no image source provided")
	}
	return src.payload()
}

// Decode decodes encoded image bytes using the registered formats
// (png, jpeg, gif, webp).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
