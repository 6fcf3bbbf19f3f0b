// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain constants and value types shared across the
// application: content statuses, entity types, program categories and the
// structured block values persisted as JSON columns.
package model

// Content statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

// ValidStatuses contains all valid content statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished, StatusClosed}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Entity types for translation rows and slug scoping.
const (
	EntityTypeProgram     = "program"
	EntityTypePost        = "post"
	EntityTypeTestimonial = "testimonial"
	EntityTypeHero        = "hero"
)

// ValidEntityTypes contains every entity type that carries translations.
var ValidEntityTypes = []string{
	EntityTypeProgram,
	EntityTypePost,
	EntityTypeTestimonial,
	EntityTypeHero,
}

// IsValidEntityType checks if an entity type is known.
func IsValidEntityType(entityType string) bool {
	for _, t := range ValidEntityTypes {
		if t == entityType {
			return true
		}
	}
	return false
}

// Program categories. Showcase entries reference programs by (type, slug),
// so the set is closed and validated on write.
const (
	ProgramTypeStudyTour  = "study_tour"
	ProgramTypeSummerCamp = "summer_camp"
	ProgramTypeExchange   = "exchange"
	ProgramTypeWinterCamp = "winter_camp"
)

// ValidProgramTypes contains all valid program categories.
var ValidProgramTypes = []string{
	ProgramTypeStudyTour,
	ProgramTypeSummerCamp,
	ProgramTypeExchange,
	ProgramTypeWinterCamp,
}

// IsValidProgramType checks if a program type is valid.
func IsValidProgramType(programType string) bool {
	for _, t := range ValidProgramTypes {
		if t == programType {
			return true
		}
	}
	return false
}
