package media

import (
	"fmt"
	"strings"
)

// ValidateUpload runs the client-side checks that precede any upload:
// the MIME type must be an image or video, and the payload must fit the
// per-surface ceiling (50 MB gallery, 5 MB product/service images).
func ValidateUpload(contentType string, size, maxMB int64) error {
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return fmt.Errorf("unsupported file type %q: only images and videos are allowed", contentType)
	}
	limit := maxMB << 20
	if size > limit {
		return fmt.Errorf("file too large: %d bytes exceeds the %d MB limit", size, maxMB)
	}
	return nil
}

// IsVideo reports whether the MIME type denotes a video payload.
func IsVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}
