// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/traveledu/tcms-go/internal/auth"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the initial admin account and the two content languages.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedLanguages(ctx, queries); err != nil {
		return err
	}

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         "admin",
		Name:         DefaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

func seedLanguages(ctx context.Context, queries *Queries) error {
	now := time.Now()
	defaults := []CreateLanguageParams{
		{Code: "zh", Name: "Chinese", NativeName: "中文", IsDefault: 1, IsActive: 1, Position: 1, CreatedAt: now, UpdatedAt: now},
		{Code: "en", Name: "English", NativeName: "English", IsDefault: 0, IsActive: 1, Position: 2, CreatedAt: now, UpdatedAt: now},
	}

	for _, lang := range defaults {
		_, err := queries.GetLanguageByCode(ctx, lang.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking language %s: %w", lang.Code, err)
		}
		if _, err := queries.CreateLanguage(ctx, lang); err != nil {
			return fmt.Errorf("creating language %s: %w", lang.Code, err)
		}
	}
	return nil
}
