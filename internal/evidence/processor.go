// Package evidence normalizes uploaded report media before storage. Images
// are bounded and re-encoded, which also drops every embedded EXIF segment —
// raw uploads must never leak the submitter's GPS coordinates.
package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	// WebP uploads are accepted; register the decoder for image.Decode.
	_ "golang.org/x/image/webp"
)

const (
	MaxFiles    = 5
	MaxFileSize = 10 * 1024 * 1024 // 10 MiB

	maxWidth    = 1920
	maxHeight   = 1080
	jpegQuality = 85
)

var (
	ErrTooManyFiles    = errors.New("Too many files (max 5)")
	ErrFileTooLarge    = errors.New("File too large (max 10MB)")
	ErrUnsupportedType = errors.New("Only images (JPEG/PNG/WebP) and MP4 videos allowed")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"video/mp4":  true,
}

// Processor validates and normalizes evidence uploads, storing the results
// through the injected Store.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// Process validates every file first (count, size, MIME type), then
// transforms and stores them, returning one reference per input file in
// input order. Validation failures surface as the sentinel errors above; a
// transform or store failure on any file fails the whole batch, since
// silently dropping evidence is worse than a resubmission.
func (p *Processor) Process(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxFiles {
		return nil, ErrTooManyFiles
	}

	for _, fh := range files {
		if fh.Size > MaxFileSize {
			return nil, fmt.Errorf("%s: %w", fh.Filename, ErrFileTooLarge)
		}
		contentType := fh.Header.Get("Content-Type")
		if !allowedTypes[contentType] {
			return nil, fmt.Errorf("%s: %w", fh.Filename, ErrUnsupportedType)
		}
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		data, err := readAll(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}

		contentType := fh.Header.Get("Content-Type")
		name := uuid.New().String()

		if strings.HasPrefix(contentType, "image/") {
			processed, err := normalizeImage(data)
			if err != nil {
				return nil, fmt.Errorf("failed to process %s: %w", fh.Filename, err)
			}
			data = processed
			name += ".jpg"
		} else {
			// Video transformation is deferred to an external media
			// pipeline; MP4 files pass through untouched.
			ext := filepath.Ext(fh.Filename)
			if ext == "" {
				ext = ".mp4"
			}
			name += ext
		}

		url, err := p.store.Put(ctx, name, data)
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", fh.Filename, err)
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// normalizeImage bounds the image to maxWidth x maxHeight preserving aspect
// ratio (never upscaling) and re-encodes it as JPEG. The decode/encode round
// trip strips all metadata, including GPS EXIF.
func normalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
