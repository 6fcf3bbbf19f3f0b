// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media handles uploads: MIME and size validation, UUID-named
// storage, image variant generation and the file health scan.
package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/traveledu/tcms-go/internal/imaging"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

// ErrNotFound is returned when the media record does not exist.
var ErrNotFound = errors.New("media not found")

// ErrUnsupportedType is returned for MIME types outside the allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTooLarge is returned when an upload exceeds the ceiling for its type.
var ErrTooLarge = errors.New("file too large")

// Service stores uploaded files and their database records.
type Service struct {
	queries   *store.Queries
	processor *imaging.Processor
	uploadDir string
}

// NewService creates a media service rooted at uploadDir.
func NewService(db *sql.DB, uploadDir string) *Service {
	return &Service{
		queries:   store.New(db),
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates and stores one file. Images are EXIF-corrected, re-encoded
// and get thumbnail/medium/large variants; videos are stored as-is. size is
// the declared upload size, checked against the per-type ceiling before any
// bytes are read.
func (s *Service) Upload(ctx context.Context, r io.Reader, filename, mimeType string, size int64, uploadedBy int64) (store.Media, error) {
	limit := model.MaxSizeFor(mimeType)
	if limit == 0 {
		return store.Media{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if size > limit {
		return store.Media{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, size, limit)
	}

	id := uuid.NewString()
	now := time.Now()

	if model.IsImageMimeType(mimeType) {
		result, err := s.processor.ProcessImage(io.LimitReader(r, limit+1), id, filename)
		if err != nil {
			return store.Media{}, fmt.Errorf("processing image: %w", err)
		}
		if result.Size > limit {
			_ = s.processor.DeleteMediaFiles(id)
			return store.Media{}, ErrTooLarge
		}

		m, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
			ID:         id,
			Filename:   filepath.Base(filename),
			MimeType:   result.MimeType,
			Size:       result.Size,
			Width:      sql.NullInt64{Int64: int64(result.Width), Valid: true},
			Height:     sql.NullInt64{Int64: int64(result.Height), Valid: true},
			UploadedBy: uploadedBy,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			_ = s.processor.DeleteMediaFiles(id)
			return store.Media{}, fmt.Errorf("recording media: %w", err)
		}

		variants, err := s.processor.CreateAllVariants(result.FilePath, id, filename)
		if err != nil {
			// The original is stored and usable; log and move on.
			slog.Warn("variant generation failed", "media_id", id, "error", err)
		}
		for _, v := range variants {
			if _, err := s.queries.CreateMediaVariant(ctx, store.CreateMediaVariantParams{
				MediaID:   id,
				Type:      v.Type,
				Width:     int64(v.Width),
				Height:    int64(v.Height),
				Size:      v.Size,
				CreatedAt: now,
			}); err != nil {
				slog.Warn("recording variant failed", "media_id", id, "type", v.Type, "error", err)
			}
		}
		return m, nil
	}

	// Video: store the raw bytes under the same layout as image originals.
	path, written, err := s.saveRaw(id, filename, io.LimitReader(r, limit+1))
	if err != nil {
		return store.Media{}, fmt.Errorf("saving file: %w", err)
	}
	if written > limit {
		_ = os.RemoveAll(filepath.Dir(path))
		return store.Media{}, ErrTooLarge
	}

	m, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
		ID:         id,
		Filename:   filepath.Base(filename),
		MimeType:   mimeType,
		Size:       written,
		UploadedBy: uploadedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		_ = os.RemoveAll(filepath.Dir(path))
		return store.Media{}, fmt.Errorf("recording media: %w", err)
	}
	return m, nil
}

func (s *Service) saveRaw(id, filename string, r io.Reader) (string, int64, error) {
	safe := filepath.Base(filename)
	if safe == "." || safe == ".." || safe == "" {
		return "", 0, fmt.Errorf("invalid filename")
	}
	dir := filepath.Join(s.uploadDir, "originals", id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, safe)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", 0, err
	}
	return path, written, nil
}

// Get fetches one media record with its variants.
func (s *Service) Get(ctx context.Context, id string) (store.Media, []store.MediaVariant, error) {
	m, err := s.queries.GetMediaByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Media{}, nil, ErrNotFound
		}
		return store.Media{}, nil, err
	}
	variants, err := s.queries.ListMediaVariants(ctx, id)
	if err != nil {
		return store.Media{}, nil, err
	}
	return m, variants, nil
}

// List returns a page of media records plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int64) ([]store.Media, int64, error) {
	rows, err := s.queries.ListMedia(ctx, store.ListMediaParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountMedia(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateAlt sets the alt text of a media record.
func (s *Service) UpdateAlt(ctx context.Context, id, alt string) (store.Media, error) {
	m, err := s.queries.UpdateMediaAlt(ctx, store.UpdateMediaAltParams{
		ID: id, Alt: alt, UpdatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Media{}, ErrNotFound
		}
		return store.Media{}, err
	}
	return m, nil
}

// Delete removes the record, its variant rows and every stored file.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.queries.GetMediaByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.queries.DeleteMediaVariants(ctx, id); err != nil {
		return fmt.Errorf("deleting variant rows: %w", err)
	}
	if err := s.queries.DeleteMedia(ctx, id); err != nil {
		return fmt.Errorf("deleting media row: %w", err)
	}
	if err := s.processor.DeleteMediaFiles(id); err != nil {
		slog.Warn("deleting media files failed", "media_id", id, "error", err)
	}
	return nil
}

// FileURL returns the public path of a media original.
func (s *Service) FileURL(m store.Media) string {
	return "/uploads/originals/" + m.ID + "/" + m.Filename
}

// VariantURL returns the public path of a variant rendition.
func (s *Service) VariantURL(m store.Media, variantType string) string {
	return "/uploads/" + variantType + "/" + m.ID + "/" + m.Filename
}

// Health statuses per media row.
const (
	HealthOK      = "ok"
	HealthMissing = "missing"
	HealthCorrupt = "corrupt"
)

// HealthResult reports the file state of one media row.
type HealthResult struct {
	MediaID string `json:"mediaId"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// HealthScan walks every media row and checks the original and each variant
// file on disk. Images must also decode; a file that exists but cannot be
// read as an image is corrupt.
func (s *Service) HealthScan(ctx context.Context) ([]HealthResult, error) {
	rows, err := s.queries.ListAllMedia(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}

	results := make([]HealthResult, 0, len(rows))
	for _, m := range rows {
		results = append(results, s.checkRow(ctx, m))
	}

	bad := 0
	for _, r := range results {
		if r.Status != HealthOK {
			bad++
		}
	}
	slog.Info("media health scan finished", "rows", len(results), "unhealthy", bad)
	return results, nil
}

func (s *Service) checkRow(ctx context.Context, m store.Media) HealthResult {
	res := HealthResult{MediaID: m.ID, Status: HealthOK}

	paths := []string{filepath.Join(s.uploadDir, "originals", m.ID, m.Filename)}
	variants, err := s.queries.ListMediaVariants(ctx, m.ID)
	if err != nil {
		res.Status = HealthCorrupt
		res.Detail = err.Error()
		return res
	}
	for _, v := range variants {
		paths = append(paths, filepath.Join(s.uploadDir, v.Type, m.ID, m.Filename))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			res.Status = HealthMissing
			res.Detail = path
			return res
		}
		if model.IsImageMimeType(m.MimeType) {
			if _, _, err := s.processor.GetImageDimensions(path); err != nil {
				res.Status = HealthCorrupt
				res.Detail = path
				return res
			}
		}
	}
	return res
}
