// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact stores contact-form submissions and newsletter
// subscriptions, enriches submissions with user-agent and GeoIP data, and
// exports both as CSV.
package contact

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/traveledu/tcms-go/internal/geoip"
	"github.com/traveledu/tcms-go/internal/notify"
	"github.com/traveledu/tcms-go/internal/store"
	"github.com/traveledu/tcms-go/internal/util"
)

// ErrNotFound is returned when the addressed record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation wraps input problems the caller should report as 400.
var ErrValidation = errors.New("invalid input")

// utf8BOM prefixes CSV exports so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service handles contact submissions and newsletter subscribers.
type Service struct {
	queries    *store.Queries
	geo        *geoip.Lookup
	dispatcher *notify.Dispatcher
}

// NewService creates a contact service. geo and dispatcher may be nil;
// enrichment and notifications are then skipped.
func NewService(db *sql.DB, geo *geoip.Lookup, dispatcher *notify.Dispatcher) *Service {
	return &Service{
		queries:    store.New(db),
		geo:        geo,
		dispatcher: dispatcher,
	}
}

// SubmissionInput carries a contact-form submission plus request metadata.
type SubmissionInput struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ProgramSlug string
	IP          string
	UserAgent   string
}

func (in *SubmissionInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if in.Message == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	return nil
}

// CreateSubmission validates and stores a submission, derives the browser
// and OS summary from the user agent, resolves the country when GeoIP is
// loaded, and enqueues the operator notification.
func (s *Service) CreateSubmission(ctx context.Context, in SubmissionInput) (store.ContactSubmission, error) {
	if err := in.validate(); err != nil {
		return store.ContactSubmission{}, err
	}

	ua := useragent.Parse(in.UserAgent)
	browser, osName := ua.Name, ua.OS
	if browser == "" {
		browser = "Unknown"
	}
	if osName == "" {
		osName = "Unknown"
	}

	country := ""
	if s.geo != nil {
		country = s.geo.LookupCountry(in.IP)
	}

	c, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Subject:     in.Subject,
		Message:     in.Message,
		ProgramSlug: in.ProgramSlug,
		Ip:          in.IP,
		UserAgent:   in.UserAgent,
		Browser:     browser,
		Os:          osName,
		Country:     country,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return store.ContactSubmission{}, fmt.Errorf("storing submission: %w", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(notify.ContactMessage(c.Name, c.Email, c.Subject))
	}
	return c, nil
}

// ListSubmissions returns a page of submissions plus the total count.
func (s *Service) ListSubmissions(ctx context.Context, limit, offset int64) ([]store.ContactSubmission, int64, error) {
	rows, err := s.queries.ListContactSubmissions(ctx, store.ListContactSubmissionsParams{
		Limit: limit, Offset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountContactSubmissions(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkRead flags a submission as handled.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if _, err := s.queries.GetContactSubmissionByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.queries.MarkContactSubmissionRead(ctx, id)
}

// DeleteSubmission removes a submission.
func (s *Service) DeleteSubmission(ctx context.Context, id string) error {
	if _, err := s.queries.GetContactSubmissionByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.queries.DeleteContactSubmission(ctx, id)
}

// WriteSubmissionsCSV streams every submission as UTF-8 CSV with a BOM
// prefix so Excel opens the Chinese text correctly.
func (s *Service) WriteSubmissionsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.queries.ListAllContactSubmissions(ctx)
	if err != nil {
		return fmt.Errorf("listing submissions: %w", err)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "name", "email", "phone", "subject", "message", "program_slug",
		"ip", "browser", "os", "country", "country_name", "is_read", "created_at",
	}); err != nil {
		return err
	}
	for _, c := range rows {
		if err := cw.Write([]string{
			c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.ProgramSlug,
			c.Ip, c.Browser, c.Os, c.Country, geoip.CountryName(c.Country),
			strconv.FormatInt(c.IsRead, 10),
			c.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Subscribe records a newsletter signup. Re-subscribing an unsubscribed or
// already-subscribed address succeeds and re-activates it.
func (s *Service) Subscribe(ctx context.Context, email, language string) (store.Subscriber, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return store.Subscriber{}, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if language == "" {
		language = "zh"
	}
	if !util.IsValidLangCode(language) {
		return store.Subscriber{}, fmt.Errorf("%w: invalid language %q", ErrValidation, language)
	}

	existing, err := s.queries.GetSubscriberByEmail(ctx, addr.Address)
	wasActive := err == nil && !existing.UnsubscribedAt.Valid

	sub, err := s.queries.UpsertSubscriber(ctx, store.UpsertSubscriberParams{
		ID:           uuid.NewString(),
		Email:        addr.Address,
		Language:     language,
		SubscribedAt: time.Now(),
	})
	if err != nil {
		return store.Subscriber{}, fmt.Errorf("storing subscriber: %w", err)
	}

	// Only a genuinely new or returning subscriber notifies the operator.
	if s.dispatcher != nil && !wasActive {
		s.dispatcher.Enqueue(notify.SubscriberMessage(sub.Email))
	}
	return sub, nil
}

// Unsubscribe deactivates an address. Unknown addresses succeed silently to
// avoid leaking which emails are subscribed.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return s.queries.Unsubscribe(ctx, store.UnsubscribeParams{
		Email: addr.Address, UnsubscribedAt: time.Now(),
	})
}

// ListSubscribers returns a page of subscribers plus the total count.
func (s *Service) ListSubscribers(ctx context.Context, limit, offset int64) ([]store.Subscriber, int64, error) {
	rows, err := s.queries.ListSubscribers(ctx, store.ListSubscribersParams{
		Limit: limit, Offset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountSubscribers(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// WriteSubscribersCSV streams active subscribers as BOM-prefixed CSV.
func (s *Service) WriteSubscribersCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.queries.ListActiveSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("listing subscribers: %w", err)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"email", "language", "subscribed_at"}); err != nil {
		return err
	}
	for _, sub := range rows {
		if err := cw.Write([]string{
			sub.Email, sub.Language, sub.SubscribedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
