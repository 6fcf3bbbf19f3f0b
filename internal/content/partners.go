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
	"github.com/traveledu/tcms-go/internal/util"
)

// PartnerInput carries the writable fields of a partner logo entry. Partners
// have no per-language text, so no translation routing applies.
type PartnerInput struct {
	Name        string
	URL         string
	LogoMediaID *string
	Position    int64
}

func (in *PartnerInput) validate() error {
	if in.Name == "" {
		return validationErr("name is required")
	}
	return nil
}

// CreatePartner adds a partner entry.
func (s *Service) CreatePartner(ctx context.Context, in PartnerInput) (store.Partner, error) {
	if err := in.validate(); err != nil {
		return store.Partner{}, err
	}
	now := time.Now()
	p, err := s.queries.CreatePartner(ctx, store.CreatePartnerParams{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Url:         in.URL,
		LogoMediaID: util.NullStringFromPtr(in.LogoMediaID),
		Position:    in.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Partner{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

// UpdatePartner edits a partner entry.
func (s *Service) UpdatePartner(ctx context.Context, id string, in PartnerInput) (store.Partner, error) {
	if err := in.validate(); err != nil {
		return store.Partner{}, err
	}
	if _, err := s.queries.GetPartnerByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Partner{}, ErrNotFound
		}
		return store.Partner{}, fmt.Errorf("loading partner: %w", err)
	}
	p, err := s.queries.UpdatePartner(ctx, store.UpdatePartnerParams{
		ID:          id,
		Name:        in.Name,
		Url:         in.URL,
		LogoMediaID: util.NullStringFromPtr(in.LogoMediaID),
		Position:    in.Position,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return store.Partner{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

// DeletePartner removes a partner entry.
func (s *Service) DeletePartner(ctx context.Context, id string) error {
	if _, err := s.queries.GetPartnerByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("loading partner: %w", err)
	}
	if err := s.queries.DeletePartner(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ListPartners lists partner entries in display order.
func (s *Service) ListPartners(ctx context.Context) ([]store.Partner, error) {
	return s.queries.ListPartners(ctx)
}
