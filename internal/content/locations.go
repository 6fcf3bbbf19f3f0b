// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/traveledu/tcms-go/internal/store"
)

// LocationInput carries the writable fields of a destination location.
type LocationInput struct {
	City    string
	Country string
}

func (in *LocationInput) validate() error {
	if in.City == "" {
		return validationErr("city is required")
	}
	if in.Country == "" {
		return validationErr("country is required")
	}
	return nil
}

// CreateLocation adds a destination location.
func (s *Service) CreateLocation(ctx context.Context, in LocationInput) (store.Location, error) {
	if err := in.validate(); err != nil {
		return store.Location{}, err
	}
	now := time.Now()
	l, err := s.queries.CreateLocation(ctx, store.CreateLocationParams{
		ID:        uuid.NewString(),
		City:      in.City,
		Country:   in.Country,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.Location{}, err
	}
	s.invalidate(ctx)
	return l, nil
}

// UpdateLocation edits a destination location.
func (s *Service) UpdateLocation(ctx context.Context, id string, in LocationInput) (store.Location, error) {
	if err := in.validate(); err != nil {
		return store.Location{}, err
	}
	if _, err := s.queries.GetLocationByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Location{}, ErrNotFound
		}
		return store.Location{}, fmt.Errorf("loading location: %w", err)
	}
	l, err := s.queries.UpdateLocation(ctx, store.UpdateLocationParams{
		ID:        id,
		City:      in.City,
		Country:   in.Country,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return store.Location{}, err
	}
	s.invalidate(ctx)
	return l, nil
}

// DeleteLocation removes a location. Programs referencing it fall back to a
// NULL location through the schema's ON DELETE SET NULL.
func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	if _, err := s.queries.GetLocationByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("loading location: %w", err)
	}
	if err := s.queries.DeleteLocation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ListLocations lists every destination location.
func (s *Service) ListLocations(ctx context.Context) ([]store.Location, error) {
	return s.queries.ListLocations(ctx)
}
