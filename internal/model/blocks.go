// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
)

// GalleryImage is one entry of a program's photo gallery.
type GalleryImage struct {
	MediaID string `json:"media_id"`
	Caption string `json:"caption,omitempty"`
}

// ItineraryStep is one day/step of a program itinerary.
type ItineraryStep struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProgramSession is a bookable date range for a program.
type ProgramSession struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Capacity  int    `json:"capacity,omitempty"`
	Price     string `json:"price,omitempty"`
}

// ProgramBlocks groups the structured values a program stores as JSON columns.
// Text inside blocks is language-specific: translation rows carry their own
// copy, the canonical row carries the base-language copy.
type ProgramBlocks struct {
	Gallery      []GalleryImage   `json:"gallery,omitempty"`
	Highlights   []string         `json:"highlights,omitempty"`
	Itinerary    []ItineraryStep  `json:"itinerary,omitempty"`
	Requirements []string         `json:"requirements,omitempty"`
	Sessions     []ProgramSession `json:"sessions,omitempty"`
}

// IsZero reports whether no block has any content.
func (b ProgramBlocks) IsZero() bool {
	return len(b.Gallery) == 0 && len(b.Highlights) == 0 && len(b.Itinerary) == 0 &&
		len(b.Requirements) == 0 && len(b.Sessions) == 0
}

// MarshalBlocks serializes blocks for a JSON column. Empty blocks serialize to
// "" so the column stays NULL-ish and round-trips as zero value.
func MarshalBlocks(b ProgramBlocks) (string, error) {
	if b.IsZero() {
		return "", nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshaling blocks: %w", err)
	}
	return string(data), nil
}

// UnmarshalBlocks parses a JSON column value into blocks. Empty input yields
// the zero value rather than an error so legacy NULL columns stay readable.
func UnmarshalBlocks(s string) (ProgramBlocks, error) {
	var b ProgramBlocks
	if s == "" {
		return b, nil
	}
	if err := json.Unmarshal([]byte(s), &b); err != nil {
		return ProgramBlocks{}, fmt.Errorf("parsing blocks: %w", err)
	}
	return b, nil
}

// MarshalGallery serializes a gallery for its JSON column, "" when empty.
func MarshalGallery(g []GalleryImage) (string, error) {
	if len(g) == 0 {
		return "", nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshaling gallery: %w", err)
	}
	return string(data), nil
}

// UnmarshalGallery parses a gallery JSON column value.
func UnmarshalGallery(s string) ([]GalleryImage, error) {
	if s == "" {
		return nil, nil
	}
	var g []GalleryImage
	if err := json.Unmarshal([]byte(s), &g); err != nil {
		return nil, fmt.Errorf("parsing gallery: %w", err)
	}
	return g, nil
}

// MarshalItinerary serializes an itinerary for its JSON column, "" when empty.
func MarshalItinerary(steps []ItineraryStep) (string, error) {
	if len(steps) == 0 {
		return "", nil
	}
	data, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("marshaling itinerary: %w", err)
	}
	return string(data), nil
}

// UnmarshalItinerary parses an itinerary JSON column value.
func UnmarshalItinerary(s string) ([]ItineraryStep, error) {
	if s == "" {
		return nil, nil
	}
	var steps []ItineraryStep
	if err := json.Unmarshal([]byte(s), &steps); err != nil {
		return nil, fmt.Errorf("parsing itinerary: %w", err)
	}
	return steps, nil
}

// MarshalSessions serializes session entries for their JSON column, "" when empty.
func MarshalSessions(sessions []ProgramSession) (string, error) {
	if len(sessions) == 0 {
		return "", nil
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return "", fmt.Errorf("marshaling sessions: %w", err)
	}
	return string(data), nil
}

// UnmarshalSessions parses a sessions JSON column value.
func UnmarshalSessions(s string) ([]ProgramSession, error) {
	if s == "" {
		return nil, nil
	}
	var sessions []ProgramSession
	if err := json.Unmarshal([]byte(s), &sessions); err != nil {
		return nil, fmt.Errorf("parsing sessions: %w", err)
	}
	return sessions, nil
}

// MarshalStringList serializes a plain string list (highlights, requirements)
// for a JSON column, "" when empty.
func MarshalStringList(list []string) (string, error) {
	if len(list) == 0 {
		return "", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("marshaling list: %w", err)
	}
	return string(data), nil
}

// UnmarshalStringList parses a JSON column value into a string list.
func UnmarshalStringList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("parsing list: %w", err)
	}
	return list, nil
}
