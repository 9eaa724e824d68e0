package utils

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"lashup-client/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ProcessImage Resize and Convert to WebP before upload
func ProcessImage(r io.Reader, filename string) ([]byte, string, error) {
	// 1. Decode generic image
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	// 2. Resize if too large (Max Width 2000px)
	bounds := img.Bounds()
	if bounds.Dx() > 2000 {
		img = imaging.Resize(img, 2000, 0, imaging.Lanczos)
	}

	// 3. Encode as WebP. Quality 85 keeps product shots well under the
	// 5 MB upload ceiling.
	var buf bytes.Buffer
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		// If WebP fails, fallback to JPEG
		logger.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}
