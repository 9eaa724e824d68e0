// Package media talks to the third-party upload host. Files are validated
// and (for images) downscaled client-side before leaving the machine.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"lashup-client/pkg/logger"
	"lashup-client/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult is what callers persist: the public URL, the host's content
// identifier (needed for later deletion) and the resource kind.
type UploadResult struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"` // image | video
}

type Uploader struct {
	cld           *cloudinary.Cloudinary
	uploadPreset  string
	uploadTimeout time.Duration
}

// NewUploader builds an uploader from a CLOUDINARY_URL-style DSN.
// An empty cloudURL returns a nil uploader; uploads report unavailable.
func NewUploader(cloudURL, uploadPreset string, uploadTimeout time.Duration) (*Uploader, error) {
	if cloudURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init media host client: %w", err)
	}
	return &Uploader{
		cld:           cld,
		uploadPreset:  uploadPreset,
		uploadTimeout: uploadTimeout,
	}, nil
}

// File is one pending upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Upload validates and ships a single file to the host folder. Images wider
// than the processing ceiling are resized and re-encoded first.
func (u *Uploader) Upload(ctx context.Context, f File, folder string, maxMB int64) (*UploadResult, error) {
	if u == nil {
		return nil, fmt.Errorf("media uploads are not configured")
	}
	if err := ValidateUpload(f.ContentType, f.Size, maxMB); err != nil {
		return nil, err
	}

	reader := f.Reader
	if !IsVideo(f.ContentType) {
		raw, err := io.ReadAll(f.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		processed, contentType, err := utils.ProcessImage(bytes.NewReader(raw), f.Name)
		if err != nil {
			// Undecodable images still go up as-is; the host transcodes.
			logger.Warn().Err(err).Str("file", f.Name).Msg("Image processing failed, uploading original")
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(processed)
			f.ContentType = contentType
		}
	}

	uploadCtx, cancel := context.WithTimeout(ctx, u.uploadTimeout)
	defer cancel()

	res, err := u.cld.Upload.Upload(uploadCtx, reader, uploader.UploadParams{
		UploadPreset: u.uploadPreset,
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	resourceType := res.ResourceType
	if resourceType == "" {
		if IsVideo(f.ContentType) {
			resourceType = "video"
		} else {
			resourceType = "image"
		}
	}

	return &UploadResult{
		URL:          res.SecureURL,
		PublicID:     res.PublicID,
		ResourceType: resourceType,
	}, nil
}

// UploadAll ships files concurrently and preserves input order in the
// results. The first failure is returned, but every upload runs to
// completion either way.
func (u *Uploader) UploadAll(ctx context.Context, files []File, folder string, maxMB int64) ([]*UploadResult, error) {
	results := make([]*UploadResult, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			results[i], errs[i] = u.Upload(ctx, f, folder, maxMB)
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
