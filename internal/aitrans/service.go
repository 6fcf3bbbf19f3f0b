// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package aitrans produces machine-translated English drafts of canonical
// Chinese content. Drafts are returned to the editor for review and are
// never written to the database here.
package aitrans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/traveledu/tcms-go/internal/config"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("ai translation is not configured")

// SourceText is the canonical text handed to the model.
type SourceText struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

// Draft is the model's suggested English rendering.
type Draft struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

// Translator asks a chat model for draft translations.
type Translator struct {
	client  openai.Client
	model   string
	enabled bool
}

// New creates a Translator. A missing API key yields a disabled instance so
// callers can wire it unconditionally.
func New(cfg *config.Config) *Translator {
	if cfg.OpenAIKey == "" {
		return &Translator{}
	}
	return &Translator{
		client:  openai.NewClient(option.WithAPIKey(cfg.OpenAIKey)),
		model:   cfg.OpenAIModel,
		enabled: true,
	}
}

// Enabled reports whether an API key is configured.
func (t *Translator) Enabled() bool { return t.enabled }

const systemPrompt = `You translate marketing copy for an educational travel
company from Chinese to English. Keep Markdown structure intact. Answer with a
JSON object holding the keys "title", "summary" and "body" and nothing else.`

// TranslateDraft asks the model for an English draft of src.
func (t *Translator) TranslateDraft(ctx context.Context, src SourceText) (Draft, error) {
	if !t.enabled {
		return Draft{}, ErrDisabled
	}

	payload, err := json.Marshal(src)
	if err != nil {
		return Draft{}, fmt.Errorf("encoding source text: %w", err)
	}

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(payload)),
		},
	})
	if err != nil {
		return Draft{}, fmt.Errorf("requesting translation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Draft{}, fmt.Errorf("translation response had no choices")
	}

	draft, err := parseDraft(resp.Choices[0].Message.Content)
	if err != nil {
		return Draft{}, err
	}
	slog.Info("translation draft produced",
		"model", t.model,
		"title_len", len(draft.Title),
		"body_len", len(draft.Body),
	)
	return draft, nil
}

// parseDraft decodes the model answer, tolerating a Markdown code fence
// around the JSON object.
func parseDraft(content string) (Draft, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var draft Draft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return Draft{}, fmt.Errorf("decoding translation draft: %w", err)
	}
	return draft, nil
}
