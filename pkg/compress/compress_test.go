package compress_test

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/JaimeStill/tour-desk/pkg/compress"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newCompressor(t *testing.T, cfg compress.Config) *compress.Compressor {
	t.Helper()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return compress.New(&cfg)
}

func TestCompress_ScalesLargeImages(t *testing.T) {
	c := newCompressor(t, compress.Config{})

	result, err := c.Compress(encodePNG(t, 1600, 400))
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if result.ContentType != "image/jpeg" {
		t.Errorf("ContentType = %q", result.ContentType)
	}

	img, err := imaging.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 200 {
		t.Errorf("bounds = %v, want 800x200", img.Bounds())
	}
}

func TestCompress_KeepsSmallImages(t *testing.T) {
	c := newCompressor(t, compress.Config{})
	data := encodePNG(t, 100, 100)

	result, err := c.Compress(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("image within limits should be stored unchanged")
	}
	if result.ContentType != "image/png" {
		t.Errorf("ContentType = %q", result.ContentType)
	}
}

func TestCompress_ReencodesOversizedBytes(t *testing.T) {
	c := newCompressor(t, compress.Config{MaxSize: "100B", MaxDimension: 2000})
	data := encodePNG(t, 600, 600)

	result, err := c.Compress(data)
	if err != nil {
		t.Fatal(err)
	}
	if result.ContentType != "image/jpeg" {
		t.Errorf("ContentType = %q", result.ContentType)
	}
}

func TestCompress_Unsupported(t *testing.T) {
	c := newCompressor(t, compress.Config{})
	if _, err := c.Compress([]byte("not an image")); !errors.Is(err, compress.ErrUnsupported) {
		t.Errorf("Compress() error = %v, want ErrUnsupported", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  compress.Config
	}{
		{"bad size", compress.Config{MaxSize: "huge"}},
		{"negative dimension", compress.Config{MaxDimension: -1}},
		{"quality range", compress.Config{Quality: 150}},
		{"min above quality", compress.Config{Quality: 50, MinQuality: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
