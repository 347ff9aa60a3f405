// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// Upload variant names.
const (
	VariantOriginal = "original"
	VariantCover    = "cover"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// CoverVariant is the project cover used on cards and the detail header.
var CoverVariant = ImageVariantConfig{Width: 1200, Height: 800, Quality: 85, Crop: true}

// UploadResult describes a stored upload. URLs are site-relative.
type UploadResult struct {
	UUID        string `json:"uuid"`
	URL         string `json:"url"`
	OriginalURL string `json:"originalUrl"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// IsSupportedImageType checks if a MIME type can be uploaded.
func IsSupportedImageType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}
