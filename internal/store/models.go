// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is an admin-panel account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Language is a content language row.
type Language struct {
	ID         int64
	Code       string
	Name       string
	NativeName string
	IsDefault  int64
	IsActive   int64
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Location is a city/country pair programs can reference.
type Location struct {
	ID        string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Media is an uploaded file.
type Media struct {
	ID         string
	Filename   string
	MimeType   string
	Size       int64
	Width      sql.NullInt64
	Height     sql.NullInt64
	Alt        string
	UploadedBy int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MediaVariant is a derived rendition of an image.
type MediaVariant struct {
	ID        int64
	MediaID   string
	Type      string
	Width     int64
	Height    int64
	Size      int64
	CreatedAt time.Time
}

// Program is the canonical (base-language) record of a travel program.
type Program struct {
	ID           string
	Type         string
	Title        string
	Slug         string
	Summary      string
	Body         string
	Gallery      string
	Highlights   string
	Itinerary    string
	Requirements string
	Sessions     string
	LocationID   sql.NullString
	CoverMediaID sql.NullString
	Status       string
	AuthorID     int64
	PublishedAt  sql.NullTime
	ScheduledAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BlogPost is the canonical record of a blog article.
type BlogPost struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Body         string
	CoverMediaID sql.NullString
	Status       string
	AuthorID     int64
	PublishedAt  sql.NullTime
	ScheduledAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Testimonial is a customer quote.
type Testimonial struct {
	ID            string
	AuthorName    string
	AuthorRole    string
	Quote         string
	ProgramType   string
	AvatarMediaID sql.NullString
	Status        string
	PublishedAt   sql.NullTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HeroBanner is a homepage hero slide.
type HeroBanner struct {
	ID          string
	Headline    string
	Subheadline string
	CtaLabel    string
	CtaUrl      string
	MediaID     sql.NullString
	Position    int64
	Status      string
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Partner is a partner-logo entry.
type Partner struct {
	ID          string
	Name        string
	Url         string
	LogoMediaID sql.NullString
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Translation is a per-language overlay of an entity's text fields.
type Translation struct {
	ID         string
	EntityType string
	EntityID   string
	Language   string
	Title      string
	Slug       string
	Summary    string
	Body       string
	Blocks     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Showcase is a homepage showcase entry pointing at a program by (type, slug).
type Showcase struct {
	ID          string
	ProgramType string
	ProgramSlug string
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactSubmission is a contact-form submission.
type ContactSubmission struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ProgramSlug string
	Ip          string
	UserAgent   string
	Browser     string
	Os          string
	Country     string
	IsRead      int64
	CreatedAt   time.Time
}

// Subscriber is a newsletter subscriber.
type Subscriber struct {
	ID             string
	Email          string
	Language       string
	SubscribedAt   time.Time
	UnsubscribedAt sql.NullTime
}

// Event is a system event-log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Ip        string
	Url       string
	Metadata  string
	CreatedAt time.Time
}
