// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the recurring maintenance jobs: scheduled
// publishing, the nightly showcase repair scan, the nightly media
// health scan and the weekly GeoIP database refresh.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/geoip"
	"github.com/traveledu/tcms-go/internal/media"
	"github.com/traveledu/tcms-go/internal/model"
	"github.com/traveledu/tcms-go/internal/store"
)

// Job schedules. Publishing runs at minute resolution; the scans run
// nightly during the quiet hours. GeoLite2 ships updates on Tuesdays.
const (
	schedulePublish     = "* * * * *"
	scheduleShowcase    = "30 3 * * *"
	scheduleMediaHealth = "0 4 * * *"
	scheduleGeoIP       = "0 5 * * 3"
)

// Scheduler drives the cron jobs.
type Scheduler struct {
	queries *store.Queries
	content *content.Service
	media   *media.Service
	geo     *geoip.Lookup
	cron    *cron.Cron
	logger  *slog.Logger
}

// New creates a scheduler instance. geo may be nil; the refresh job is
// then skipped.
func New(db *sql.DB, contentSvc *content.Service, mediaSvc *media.Service, geo *geoip.Lookup, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		content: contentSvc,
		media:   mediaSvc,
		geo:     geo,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(schedulePublish, func() {
		if err := s.PublishDue(context.Background()); err != nil {
			s.logger.Error("scheduled publishing failed", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(scheduleShowcase, func() {
		if _, err := s.content.RepairShowcases(context.Background()); err != nil {
			s.logger.Error("nightly showcase repair failed", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(scheduleMediaHealth, func() {
		s.runMediaHealthScan(context.Background())
	}); err != nil {
		return err
	}

	if s.geo != nil {
		if _, err := s.cron.AddFunc(scheduleGeoIP, func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Warn("geoip database refresh failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs and stops the cron loop.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PublishDue publishes every draft whose scheduled time has arrived.
func (s *Scheduler) PublishDue(ctx context.Context) error {
	now := time.Now()

	programs, err := s.queries.ListDueScheduledPrograms(ctx, now)
	if err != nil {
		return err
	}
	for _, p := range programs {
		if _, err := s.queries.PublishProgram(ctx, store.PublishProgramParams{
			ID:          p.ID,
			PublishedAt: now,
			UpdatedAt:   now,
		}); err != nil {
			s.logger.Error("publishing scheduled program",
				"category", model.EventCategoryContent,
				"program_id", p.ID,
				"error", err,
			)
			continue
		}
		s.logger.Info("published scheduled program",
			"category", model.EventCategoryContent,
			"program_id", p.ID,
			"slug", p.Slug,
			"scheduled_at", p.ScheduledAt.Time,
		)
	}

	posts, err := s.queries.ListDueScheduledBlogPosts(ctx, now)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if _, err := s.queries.PublishBlogPost(ctx, store.PublishBlogPostParams{
			ID:          p.ID,
			PublishedAt: now,
			UpdatedAt:   now,
		}); err != nil {
			s.logger.Error("publishing scheduled post",
				"category", model.EventCategoryContent,
				"post_id", p.ID,
				"error", err,
			)
			continue
		}
		s.logger.Info("published scheduled post",
			"category", model.EventCategoryContent,
			"post_id", p.ID,
			"slug", p.Slug,
			"scheduled_at", p.ScheduledAt.Time,
		)
	}

	if len(programs) > 0 || len(posts) > 0 {
		s.content.InvalidateCache(ctx)
	}
	return nil
}

func (s *Scheduler) runMediaHealthScan(ctx context.Context) {
	results, err := s.media.HealthScan(ctx)
	if err != nil {
		s.logger.Error("nightly media health scan failed", "error", err)
		return
	}
	var bad int
	for _, res := range results {
		if res.Status != media.HealthOK {
			bad++
			s.logger.Warn("media health problem",
				"category", model.EventCategoryMedia,
				"media_id", res.MediaID,
				"status", res.Status,
				"detail", res.Detail,
			)
		}
	}
	s.logger.Info("media health scan finished", "rows", len(results), "problems", bad)
}
