package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateDownscalesWideImages(t *testing.T) {
	out, err := Generate(encodePNG(t, 1920, 1080))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != MaxWidth {
		t.Fatalf("width = %d, want %d", bounds.Dx(), MaxWidth)
	}
	if bounds.Dy() != 1080*MaxWidth/1920 {
		t.Fatalf("height = %d, aspect ratio not preserved", bounds.Dy())
	}
}

func TestGenerateKeepsSmallImages(t *testing.T) {
	out, err := Generate(encodePNG(t, 320, 200))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Bounds().Dx() != 320 || decoded.Bounds().Dy() != 200 {
		t.Fatalf("small image resized to %v", decoded.Bounds())
	}
}

func TestGenerateRejectsNonRasterPayloads(t *testing.T) {
	for _, payload := range [][]byte{
		nil,
		[]byte("%PDF-1.4 not an image"),
		[]byte("<svg xmlns='http://www.w3.org/2000/svg'/>"),
	} {
		if _, err := Generate(payload); err == nil {
			t.Fatalf("payload %q accepted", payload)
		}
	}
}
