// Package thumbnail downscales uploaded raster images for project cards.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxWidth is the widest a generated thumbnail gets; height scales
// proportionally.
const MaxWidth = 480

// Generate decodes a raster payload (png, jpeg, gif or webp) and returns a
// PNG no wider than MaxWidth. Payloads that are not decodable rasters
// (svg, pdf) return an error; callers fall back to the original URL.
func Generate(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > MaxWidth {
		height := bounds.Dy() * MaxWidth / bounds.Dx()
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, MaxWidth, height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
