// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

func testService(t *testing.T) (*Service, int64, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "tcms-media-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	uploadDir, err := os.MkdirTemp("", "tcms-media-uploads-*")
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("creating upload dir: %v", err)
	}

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	now := time.Now()
	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "uploader@example.com",
		PasswordHash: "x",
		Role:         "editor",
		Name:         "Uploader",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
		_ = os.RemoveAll(uploadDir)
	}
	return NewService(db, uploadDir), u.ID, cleanup
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	svc, userID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	data := pngBytes(t, 40, 30)
	m, err := svc.Upload(ctx, bytes.NewReader(data), "photo.png", model.MimeTypePNG, int64(len(data)), userID)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if m.MimeType != model.MimeTypePNG {
		t.Errorf("mime = %q", m.MimeType)
	}
	if !m.Width.Valid || m.Width.Int64 != 40 || !m.Height.Valid || m.Height.Int64 != 30 {
		t.Errorf("dimensions = %v x %v", m.Width, m.Height)
	}

	// The original must be on disk under the UUID directory.
	path := filepath.Join(svc.uploadDir, "originals", m.ID, "photo.png")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("original not stored: %v", err)
	}

	// A 40x30 source is smaller than every variant target, so none are
	// generated.
	_, variants, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(variants) != 0 {
		t.Errorf("variants = %d, want 0 for tiny source", len(variants))
	}
}

func TestUploadGeneratesVariants(t *testing.T) {
	svc, userID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	// Larger than the thumbnail target in both dimensions.
	data := pngBytes(t, 400, 300)
	m, err := svc.Upload(ctx, bytes.NewReader(data), "banner.png", model.MimeTypePNG, int64(len(data)), userID)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	_, variants, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	found := false
	for _, v := range variants {
		if v.Type == model.VariantThumbnail {
			found = true
			if v.Width != 150 || v.Height != 150 {
				t.Errorf("thumbnail = %dx%d, want 150x150", v.Width, v.Height)
			}
		}
	}
	if !found {
		t.Error("thumbnail variant not generated")
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc, userID, cleanup := testService(t)
	defer cleanup()

	_, err := svc.Upload(context.Background(), bytes.NewReader([]byte("hello")), "doc.txt", "text/plain", 5, userID)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestUploadRejectsOversize(t *testing.T) {
	svc, userID, cleanup := testService(t)
	defer cleanup()

	_, err := svc.Upload(context.Background(), bytes.NewReader(nil), "huge.png", model.MimeTypePNG, model.MaxImageSize+1, userID)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestDeleteRemovesFiles(t *testing.T) {
	svc, userID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	data := pngBytes(t, 40, 30)
	m, err := svc.Upload(ctx, bytes.NewReader(data), "gone.png", model.MimeTypePNG, int64(len(data)), userID)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := svc.Get(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.uploadDir, "originals", m.ID)); !os.IsNotExist(err) {
		t.Error("original directory survived the delete")
	}
}

func TestHealthScan(t *testing.T) {
	svc, userID, cleanup := testService(t)
	defer cleanup()
	ctx := context.Background()

	data := pngBytes(t, 40, 30)
	ok, err := svc.Upload(ctx, bytes.NewReader(data), "ok.png", model.MimeTypePNG, int64(len(data)), userID)
	if err != nil {
		t.Fatalf("Upload(ok): %v", err)
	}

	missing, err := svc.Upload(ctx, bytes.NewReader(pngBytes(t, 40, 30)), "missing.png", model.MimeTypePNG, int64(len(data)), userID)
	if err != nil {
		t.Fatalf("Upload(missing): %v", err)
	}
	if err := os.RemoveAll(filepath.Join(svc.uploadDir, "originals", missing.ID)); err != nil {
		t.Fatalf("removing file: %v", err)
	}

	corrupt, err := svc.Upload(ctx, bytes.NewReader(pngBytes(t, 40, 30)), "corrupt.png", model.MimeTypePNG, int64(len(data)), userID)
	if err != nil {
		t.Fatalf("Upload(corrupt): %v", err)
	}
	if err := os.WriteFile(filepath.Join(svc.uploadDir, "originals", corrupt.ID, "corrupt.png"), []byte("not a png"), 0644); err != nil {
		t.Fatalf("corrupting file: %v", err)
	}

	results, err := svc.HealthScan(ctx)
	if err != nil {
		t.Fatalf("HealthScan: %v", err)
	}
	byID := make(map[string]string, len(results))
	for _, r := range results {
		byID[r.MediaID] = r.Status
	}
	if byID[ok.ID] != HealthOK {
		t.Errorf("ok row status = %q", byID[ok.ID])
	}
	if byID[missing.ID] != HealthMissing {
		t.Errorf("missing row status = %q", byID[missing.ID])
	}
	if byID[corrupt.ID] != HealthCorrupt {
		t.Errorf("corrupt row status = %q", byID[corrupt.ID])
	}
}
