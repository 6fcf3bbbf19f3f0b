// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Language codes the site ships with. Chinese is the base (canonical) language;
// additional languages live in translation rows only.
const (
	LanguageChinese = "zh"
	LanguageEnglish = "en"
)

// Language represents a content language.
type Language struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`        // ISO 639-1: zh, en
	Name       string    `json:"name"`        // Chinese, English
	NativeName string    `json:"native_name"` // 中文, English
	IsDefault  bool      `json:"is_default"`  // only one can be default
	IsActive   bool      `json:"is_active"`   // enabled for site
	Position   int       `json:"position"`    // sort order in language switcher
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
