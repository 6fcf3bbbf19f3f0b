// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypeMP4  = "video/mp4"
	MimeTypeWebM = "video/webm"
)

// Upload size ceilings.
const (
	MaxImageSize = 5 * 1024 * 1024   // 5MB
	MaxVideoSize = 100 * 1024 * 1024 // 100MB
)

// AllowedImageTypes defines the image MIME types that can be uploaded.
var AllowedImageTypes = map[string]bool{
	MimeTypeJPEG: true,
	MimeTypePNG:  true,
	MimeTypeGIF:  true,
	MimeTypeWebP: true,
}

// AllowedVideoTypes defines the video MIME types that can be uploaded.
var AllowedVideoTypes = map[string]bool{
	MimeTypeMP4:  true,
	MimeTypeWebM: true,
}

// IsImageMimeType reports whether the MIME type is an allowed image type.
func IsImageMimeType(mimeType string) bool {
	return AllowedImageTypes[mimeType]
}

// IsVideoMimeType reports whether the MIME type is an allowed video type.
func IsVideoMimeType(mimeType string) bool {
	return AllowedVideoTypes[mimeType]
}

// MaxSizeFor returns the upload ceiling for the MIME type, 0 if disallowed.
func MaxSizeFor(mimeType string) int64 {
	switch {
	case IsImageMimeType(mimeType):
		return MaxImageSize
	case IsVideoMimeType(mimeType):
		return MaxVideoSize
	default:
		return 0
	}
}

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 150, Height: 150, Quality: 80, Crop: true},
	VariantMedium:    {Width: 800, Height: 600, Quality: 85, Crop: false},
	VariantLarge:     {Width: 1920, Height: 1080, Quality: 90, Crop: false},
}
