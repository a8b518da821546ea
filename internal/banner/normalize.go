// Package banner normalizes generated images to the fixed banner resolution.
package banner

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

// Target banner resolution. Every normalized image has exactly this size.
const (
	Width  = 1200
	Height = 628
)

var (
	// ErrDecode indicates the API payload is not a decodable raster image.
	ErrDecode = errors.New("cannot decode image data")
	// ErrEncode indicates the resized image could not be encoded as PNG.
	ErrEncode = errors.New("cannot encode resized image")
)

// Normalize decodes raw image bytes (PNG, JPEG or GIF) and stretch-resizes
// them to Width×Height, ignoring the source aspect ratio. The fit policy is
// a plain stretch with CatmullRom resampling; it is fixed so repeated runs
// produce uniformly sized banners. The result is always PNG-encoded.
func Normalize(data []byte) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	log.Info().
		Str("format", format).
		Int("src_width", bounds.Dx()).
		Int("src_height", bounds.Dy()).
		Int("dst_width", Width).
		Int("dst_height", Height).
		Msg("Resizing image to banner resolution")

	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return buf.Bytes(), nil
}
