// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify delivers operator email notifications for contact-form
// submissions and newsletter signups. Deliveries run on a small worker pool
// and never block or fail the request that produced them.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/traveledu/tcms-go/internal/config"
)

// Delivery bounds.
const (
	maxAttempts  = 3
	retryBackoff = 30 * time.Second
	queueSize    = 100
)

// Message is one email notification.
type Message struct {
	Subject string
	Body    string
}

// Mailer sends one message. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(msg Message) error
}

// Dispatcher queues messages and delivers them on a worker pool.
type Dispatcher struct {
	mailer  Mailer
	logger  *slog.Logger
	queue   chan Message
	workers int
	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
}

// Config holds dispatcher configuration.
type Config struct {
	Workers int
}

// NewDispatcher creates a dispatcher delivering through the mailer. A nil
// mailer disables delivery: messages are accepted and dropped with a debug
// log, so callers never need to care whether SMTP is configured.
func NewDispatcher(mailer Mailer, logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		mailer:  mailer,
		logger:  logger,
		queue:   make(chan Message, queueSize),
		workers: cfg.Workers,
		done:    make(chan struct{}),
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting notification dispatcher", "workers", d.workers)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop drains the workers and waits for in-flight deliveries.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
	d.logger.Info("notification dispatcher stopped")
}

// Enqueue queues a message for delivery. A full queue drops the message with
// a warning rather than blocking the caller.
func (d *Dispatcher) Enqueue(msg Message) {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		d.logger.Warn("dispatcher not running, dropping notification", "subject", msg.Subject)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("notification queue full, dropping message", "subject", msg.Subject)
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			d.deliver(ctx, id, msg)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, msg Message) {
	if d.mailer == nil {
		d.logger.Debug("mail delivery disabled, dropping notification", "subject", msg.Subject)
		return
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = d.mailer.Send(msg); err == nil {
			d.logger.Info("notification delivered",
				"worker_id", workerID,
				"subject", msg.Subject,
				"attempt", attempt,
			)
			return
		}
		d.logger.Warn("notification delivery failed",
			"worker_id", workerID,
			"subject", msg.Subject,
			"attempt", attempt,
			"error", err,
		)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-time.After(retryBackoff):
		case <-d.done:
			return
		case <-ctx.Done():
			return
		}
	}
	d.logger.Error("notification abandoned after retries", "subject", msg.Subject, "error", err)
}

// SMTPMailer delivers messages over plain SMTP.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	to   string
}

// NewSMTPMailer builds a mailer from the SMTP config, or nil when no host is
// configured.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if !cfg.SMTPEnabled() {
		return nil
	}
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.SMTPFrom,
		to:   cfg.NotifyTo,
	}
}

// Send delivers one message.
func (m *SMTPMailer) Send(msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", m.to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.Body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{m.to}, []byte(b.String()))
}

// ContactMessage builds the notification for a contact-form submission.
func ContactMessage(name, email, subject string) Message {
	return Message{
		Subject: "New contact form submission",
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\nReceived: %s\n",
			name, email, subject, time.Now().Format(time.RFC3339)),
	}
}

// SubscriberMessage builds the notification for a newsletter signup.
func SubscriberMessage(email string) Message {
	return Message{
		Subject: "New newsletter subscriber",
		Body:    fmt.Sprintf("Email: %s\nSubscribed: %s\n", email, time.Now().Format(time.RFC3339)),
	}
}
