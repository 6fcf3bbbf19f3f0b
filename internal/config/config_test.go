// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "TCMS_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/tcms.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/tcms.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.AuthDisabled {
		t.Error("AuthDisabled should default to false")
	}
	if cfg.SMTPEnabled() {
		t.Error("SMTPEnabled() should be false without SMTP config")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "TCMS_SESSION_SECRET", customSecret)
	setEnv(t, "TCMS_DB_PATH", "/custom/path.db")
	setEnv(t, "TCMS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "TCMS_SERVER_PORT", "3000")
	setEnv(t, "TCMS_ENV", "production")
	setEnv(t, "TCMS_SMTP_HOST", "smtp.example.com")
	setEnv(t, "TCMS_NOTIFY_TO", "sales@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false for production")
	}
	if !cfg.SMTPEnabled() {
		t.Error("SMTPEnabled() should be true with host and recipient set")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when TCMS_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "TCMS_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_RejectsKnownWeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "TCMS_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}

func TestLoad_AuthDisabledRequiresDevelopment(t *testing.T) {
	os.Clearenv()
	setEnv(t, "TCMS_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "TCMS_ENV", "production")
	setEnv(t, "TCMS_AUTH_DISABLED", "true")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should refuse TCMS_AUTH_DISABLED in production")
	}

	os.Clearenv()
	setEnv(t, "TCMS_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "TCMS_ENV", "development")
	setEnv(t, "TCMS_AUTH_DISABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.AuthDisabled {
		t.Error("AuthDisabled should be true")
	}
}
