package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeShrinksLargePNG(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 100, MaxHeight: 100})

	out, err := p.Normalize(bytes.NewReader(pngBytes(t, 400, 200)))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out.ContentType != "image/png" || out.Extension != ".png" {
		t.Fatalf("expected png output, got %s", out.ContentType)
	}
	if out.Width != 100 || out.Height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", out.Width, out.Height)
	}
	if _, err := png.Decode(bytes.NewReader(out.Data)); err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
}

func TestNormalizeReencodesJPEG(t *testing.T) {
	var src bytes.Buffer
	if err := jpeg.Encode(&src, image.NewGray(image.Rect(0, 0, 20, 30)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	out, err := NewProcessor(DefaultConfig()).Normalize(&src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out.ContentType != "image/jpeg" || out.Width != 20 || out.Height != 30 {
		t.Fatalf("unexpected output %s %dx%d", out.ContentType, out.Width, out.Height)
	}
}

func TestNormalizeRejectsNonImage(t *testing.T) {
	_, err := NewProcessor(DefaultConfig()).Normalize(strings.NewReader("definitely not an image"))
	if err != ErrNotImage {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestNormalizeRejectsOversizedInput(t *testing.T) {
	p := NewProcessor(Config{MaxBytes: 16})
	_, err := p.Normalize(bytes.NewReader(pngBytes(t, 50, 50)))
	if err != ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestValidateType(t *testing.T) {
	if !ValidateType("proof.JPG") || ValidateType("proof.pdf") {
		t.Fatal("unexpected ValidateType result")
	}
}
