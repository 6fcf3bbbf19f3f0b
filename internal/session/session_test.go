// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newSessionDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Schema expected by sqlite3store.
	if _, err := db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`); err != nil {
		t.Fatalf("creating sessions table: %v", err)
	}
	return db
}

func TestNewDevelopmentCookie(t *testing.T) {
	sm := New(newSessionDB(t), true)

	if sm.Store == nil {
		t.Fatal("store not initialized")
	}
	if sm.Cookie.Secure {
		t.Error("dev cookie marked Secure")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("dev cookie uses __Host- prefix, which browsers reject over HTTP")
	}
}

func TestNewProductionCookie(t *testing.T) {
	sm := New(newSessionDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("production cookie not Secure")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("cookie name = %q, want __Host-session", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", sm.Cookie.Path)
	}
}

func TestNewDefaults(t *testing.T) {
	sm := New(newSessionDB(t), true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("cookie not HttpOnly")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	sm := New(newSessionDB(t), true)

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), "user_id", int64(42))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if sm.GetInt64(r.Context(), "user_id") != 42 {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(sm.LoadAndSave(mux))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/login")
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	_ = resp.Body.Close()
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("me request: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 with session cookie", resp.StatusCode)
	}

	// Without the cookie the session is absent.
	resp, err = http.Get(srv.URL + "/me")
	if err != nil {
		t.Fatalf("anonymous request: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without cookie", resp.StatusCode)
	}
}
