// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/traveledu/tcms-go/internal/model"
)

func testImage(t *testing.T, width, height int) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImageStoresOriginal(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodePNG(t, testImage(t, 64, 48))

	result, err := p.ProcessImage(bytes.NewReader(data), "11111111-aaaa-bbbb-cccc-000000000001", "brochure.png")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if result.Width != 64 || result.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", result.Width, result.Height)
	}
	if result.MimeType != model.MimeTypePNG {
		t.Errorf("MimeType = %q, want %q", result.MimeType, model.MimeTypePNG)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestProcessImageRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	_, err := p.ProcessImage(bytes.NewReader([]byte("%PDF-1.7 not an image")), "uuid", "doc.pdf")
	if err == nil {
		t.Fatal("ProcessImage accepted non-image data")
	}
}

func TestCreateAllVariantsFromLargeSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)
	data := encodePNG(t, testImage(t, 2000, 1500))

	original, err := p.ProcessImage(bytes.NewReader(data), "11111111-aaaa-bbbb-cccc-000000000002", "hero.png")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	variants, err := p.CreateAllVariants(original.FilePath, "11111111-aaaa-bbbb-cccc-000000000002", "hero.png")
	if err != nil {
		t.Fatalf("CreateAllVariants: %v", err)
	}
	if len(variants) != len(model.ImageVariants) {
		t.Fatalf("got %d variants, want %d", len(variants), len(model.ImageVariants))
	}
	for _, v := range variants {
		cfg := model.ImageVariants[v.Type]
		if v.Width > cfg.Width || v.Height > cfg.Height {
			t.Errorf("%s variant %dx%d exceeds %dx%d", v.Type, v.Width, v.Height, cfg.Width, cfg.Height)
		}
		if _, err := os.Stat(v.FilePath); err != nil {
			t.Errorf("%s variant file missing: %v", v.Type, err)
		}
	}
}

func TestCreateVariantSkipsSmallSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)
	data := encodePNG(t, testImage(t, 100, 80))

	original, err := p.ProcessImage(bytes.NewReader(data), "11111111-aaaa-bbbb-cccc-000000000003", "icon.png")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	// medium does not crop; a 100x80 source fits inside 800x600.
	result, err := p.CreateVariant(original.FilePath, "11111111-aaaa-bbbb-cccc-000000000003", "icon.png",
		model.ImageVariants[model.VariantMedium], model.VariantMedium)
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if result != nil {
		t.Errorf("CreateVariant = %+v, want nil for undersized source", result)
	}
}

func TestDeleteMediaFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)
	uuid := "11111111-aaaa-bbbb-cccc-000000000004"
	data := encodePNG(t, testImage(t, 2000, 1500))

	original, err := p.ProcessImage(bytes.NewReader(data), uuid, "campus.png")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if _, err := p.CreateAllVariants(original.FilePath, uuid, "campus.png"); err != nil {
		t.Fatalf("CreateAllVariants: %v", err)
	}

	if err := p.DeleteMediaFiles(uuid); err != nil {
		t.Fatalf("DeleteMediaFiles: %v", err)
	}
	if _, err := os.Stat(original.FilePath); !os.IsNotExist(err) {
		t.Error("original still present after delete")
	}

	// Deleting again must be a no-op.
	if err := p.DeleteMediaFiles(uuid); err != nil {
		t.Errorf("second DeleteMediaFiles: %v", err)
	}
}

func TestGetImageDimensions(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)
	data := encodePNG(t, testImage(t, 320, 240))

	original, err := p.ProcessImage(bytes.NewReader(data), "11111111-aaaa-bbbb-cccc-000000000005", "map.png")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	w, h, err := p.GetImageDimensions(original.FilePath)
	if err != nil {
		t.Fatalf("GetImageDimensions: %v", err)
	}
	if w != 320 || h != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", w, h)
	}
}

func TestIsImageAndSupportedType(t *testing.T) {
	p := NewProcessor("unused")

	tests := []struct {
		mimeType  string
		image     bool
		supported bool
	}{
		{model.MimeTypeJPEG, true, true},
		{model.MimeTypePNG, true, true},
		{model.MimeTypeGIF, true, true},
		{model.MimeTypeWebP, true, true},
		{model.MimeTypeMP4, false, true},
		{model.MimeTypeWebM, false, true},
		{"application/pdf", false, false},
		{"text/plain", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := p.IsImage(tt.mimeType); got != tt.image {
			t.Errorf("IsImage(%q) = %v, want %v", tt.mimeType, got, tt.image)
		}
		if got := p.IsSupportedType(tt.mimeType); got != tt.supported {
			t.Errorf("IsSupportedType(%q) = %v, want %v", tt.mimeType, got, tt.supported)
		}
	}
}

func TestDetectFormatRejectsTIFF(t *testing.T) {
	// Little-endian TIFF header.
	tiff := []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}
	if got := detectFormat(tiff); got != "" {
		t.Errorf("detectFormat(tiff) = %q, want rejection", got)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
		{"gif", []byte("GIF89a"), "gif"},
		{"garbage", []byte{0x00, 0x01, 0x02, 0x03}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		if got := detectFormat(tt.data); got != tt.want {
			t.Errorf("detectFormat(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDetectFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.jpg", "jpeg"},
		{"photo.JPEG", "jpeg"},
		{"logo.png", "png"},
		{"banner.webp", "webp"},
		{"anim.gif", "gif"},
		{"noext", "jpeg"},
		{"odd.tiff", "jpeg"},
	}
	for _, tt := range tests {
		if got := detectFormatFromFilename(tt.filename); got != tt.want {
			t.Errorf("detectFormatFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestApplyOrientationSwapsDimensions(t *testing.T) {
	img := testImage(t, 40, 20)

	// Orientations 5-8 involve a 90 degree rotation.
	for _, o := range []int{5, 6, 7, 8} {
		out := applyOrientation(img, o)
		b := out.Bounds()
		if b.Dx() != 20 || b.Dy() != 40 {
			t.Errorf("orientation %d: got %dx%d, want 20x40", o, b.Dx(), b.Dy())
		}
	}
	// 1 and out-of-range values leave the image untouched.
	for _, o := range []int{0, 1, 9} {
		if out := applyOrientation(img, o); out != img {
			t.Errorf("orientation %d should be identity", o)
		}
	}
}

func TestSaveImageFileRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.saveImageFile("../outside", "x.png", []byte("data")); err == nil {
		t.Error("subdir traversal accepted")
	}
	if _, err := p.saveImageFile("originals/ok", "..", []byte("data")); err == nil {
		t.Error("dot-dot filename accepted")
	}
}
