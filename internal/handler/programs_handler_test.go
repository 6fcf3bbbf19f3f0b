// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/traveledu/tcms-go/internal/content"
)

func TestAdminCreateProgram(t *testing.T) {
	h, user := testHandler(t)

	body := `{"type": "study_tour", "title": "故宫研学", "summary": "s", "body": "b", "status": "draft"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/programs", strings.NewReader(body)), user)
	rec := doRequest(h.AdminCreateProgram, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Program content.ProgramView `json:"program"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Program.ID == "" {
		t.Fatal("expected a generated id")
	}
	if resp.Program.AuthorID != user.ID {
		t.Fatalf("authorId = %d, want %d", resp.Program.AuthorID, user.ID)
	}
}

func TestAdminCreateProgramValidationError(t *testing.T) {
	h, user := testHandler(t)

	body := `{"type": "cruise", "title": "x"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/programs", strings.NewReader(body)), user)
	rec := doRequest(h.AdminCreateProgram, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected an error message")
	}
}

func TestAdminGetProgramNotFound(t *testing.T) {
	h, user := testHandler(t)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/programs/nope", nil), user)
	req = withRouteParam(req, "id", "nope")
	rec := doRequest(h.AdminGetProgram, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdminListProgramsEnvelope(t *testing.T) {
	h, user := testHandler(t)

	for _, title := range []string{"Singapore Coding Camp", "Kyoto Heritage Tour"} {
		body := `{"type": "study_tour", "title": "` + title + `", "summary": "s", "body": "b"}`
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/programs", strings.NewReader(body)), user)
		if rec := doRequest(h.AdminCreateProgram, req); rec.Code != http.StatusCreated {
			t.Fatalf("seeding program: status %d", rec.Code)
		}
	}

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/programs?page=1&limit=1", nil), user)
	rec := doRequest(h.AdminListPrograms, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Programs   []content.ProgramView `json:"programs"`
		Pagination Pagination            `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(resp.Programs))
	}
	if resp.Pagination.Total != 2 || resp.Pagination.Pages != 2 {
		t.Fatalf("pagination = %+v, want total 2 pages 2", resp.Pagination)
	}
}

func TestAdminUpdateProgramTranslation(t *testing.T) {
	h, user := testHandler(t)

	body := `{"type": "study_tour", "title": "故宫研学", "summary": "摘要", "body": "正文"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/programs", strings.NewReader(body)), user)
	rec := doRequest(h.AdminCreateProgram, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created struct {
		Program content.ProgramView `json:"program"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}

	update := `{"type": "study_tour", "language": "en", "title": "Forbidden City Study Tour", "summary": "Summary", "body": "Body"}`
	req = withUser(httptest.NewRequest(http.MethodPut, "/api/admin/programs/"+created.Program.ID, strings.NewReader(update)), user)
	req = withRouteParam(req, "id", created.Program.ID)
	rec = doRequest(h.AdminUpdateProgram, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	var updated struct {
		Program content.ProgramView `json:"program"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding update response: %v", err)
	}
	if updated.Program.Title != "Forbidden City Study Tour" {
		t.Fatalf("title = %q", updated.Program.Title)
	}
	if !updated.Program.Translated {
		t.Fatal("expected translated view")
	}
}
