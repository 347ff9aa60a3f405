// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging stores uploaded project images: a re-encoded original and
// a cropped cover variant.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/portfolio-go/internal/model"
)

// ProjectsDir is the uploads subdirectory holding project images.
const ProjectsDir = "projects"

// URLPrefix is where the uploads directory is mounted on the site.
const URLPrefix = "/uploads"

// ErrUnsupportedFormat is returned for anything other than JPEG, PNG, GIF or WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Processor writes uploads below a root directory.
type Processor struct {
	uploadDir string
	cover     model.ImageVariantConfig
	newID     func() string
}

// NewProcessor creates a processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{
		uploadDir: uploadDir,
		cover:     model.CoverVariant,
		newID:     uuid.NewString,
	}
}

// ProcessUpload decodes an image, applies its EXIF orientation and stores
// the original (without metadata) and the cover variant under
// projects/<uuid>/. The returned URLs are site-relative.
func (p *Processor) ProcessUpload(reader io.Reader) (*model.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	id := p.newID()
	subDir := filepath.Join(ProjectsDir, id)

	original, err := encodeImage(img, format, 95)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	originalName := model.VariantOriginal + extension(format)
	if _, err := p.saveImageFile(subDir, originalName, original); err != nil {
		return nil, fmt.Errorf("failed to save original image: %w", err)
	}

	cover := resize(img, p.cover)
	coverData, err := encodeImage(cover, "jpeg", p.cover.Quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cover: %w", err)
	}
	coverName := model.VariantCover + ".jpg"
	if _, err := p.saveImageFile(subDir, coverName, coverData); err != nil {
		return nil, fmt.Errorf("failed to save cover image: %w", err)
	}

	bounds := cover.Bounds()
	return &model.UploadResult{
		UUID:        id,
		URL:         path.Join(URLPrefix, ProjectsDir, id, coverName),
		OriginalURL: path.Join(URLPrefix, ProjectsDir, id, originalName),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// DetectMimeType detects the MIME type of image data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns types like "image/jpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

func resize(img image.Image, cfg model.ImageVariantConfig) image.Image {
	if cfg.Crop {
		return imaging.Fill(img, cfg.Width, cfg.Height, imaging.Center, imaging.Lanczos)
	}
	b := img.Bounds()
	if b.Dx() <= cfg.Width && b.Dy() <= cfg.Height {
		return img
	}
	return imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation undoes the camera rotation recorded in EXIF tag values 2-8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage re-encodes img. The pure Go encoders write no EXIF.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		// WebP has no pure Go encoder, so it is stored as JPEG.
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// extension is the file extension the re-encoded original is stored with.
func extension(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

// saveImageFile creates the directory if needed and saves image data to a file.
// The target directory is validated to be within uploadDir.
func (p *Processor) saveImageFile(subDir, filename string, data []byte) (string, error) {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	absTarget := filepath.Join(absBase, cleanSubDir)

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absTarget, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0o644); err != nil { // #nosec G306 -- served publicly
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return filePath, nil
}
