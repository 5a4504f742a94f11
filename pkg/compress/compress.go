// Package compress shrinks uploaded images to a bounded dimension and byte
// size before they are stored.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
)

// ErrUnsupported indicates the input could not be decoded as an image.
var ErrUnsupported = errors.New("compress: unsupported image")

// Compressor bounds images to Config limits.
type Compressor struct {
	cfg *Config
}

// New creates a Compressor for a finalized cfg.
func New(cfg *Config) *Compressor {
	return &Compressor{cfg: cfg}
}

// Result is a compressed image and its content type.
type Result struct {
	Data        []byte
	ContentType string
}

// Compress returns data unchanged when it already fits both limits.
// Otherwise the image is scaled to fit MaxDimension and re-encoded as JPEG,
// lowering quality in steps until it fits MaxSize or MinQuality is reached.
func (c *Compressor) Compress(data []byte) (Result, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	bounds := img.Bounds()
	maxDim := c.cfg.MaxDimension
	fits := bounds.Dx() <= maxDim && bounds.Dy() <= maxDim

	if fits && int64(len(data)) <= c.cfg.MaxSizeBytes() {
		return Result{Data: data, ContentType: http.DetectContentType(data)}, nil
	}

	if !fits {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	for q := c.cfg.Quality; ; q -= 10 {
		if q < c.cfg.MinQuality {
			q = c.cfg.MinQuality
		}

		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			return Result{}, fmt.Errorf("encode jpeg: %w", err)
		}

		if int64(buf.Len()) <= c.cfg.MaxSizeBytes() || q == c.cfg.MinQuality {
			break
		}
	}

	return Result{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}
