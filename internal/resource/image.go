package resource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageInfo describes an encoded image without its pixels.
type ImageInfo struct {
	Format string // "png", "jpeg" or "webp"
	Width  int
	Height int
}

// DecodeImageInfo reads the header of a PNG, JPEG or WebP image.
func DecodeImageInfo(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decoding image header: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
