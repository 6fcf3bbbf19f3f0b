// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import "testing"

func TestLookupCountryWithoutDatabase(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init with empty path: %v", err)
	}
	if g.IsEnabled() {
		t.Error("lookup should be disabled without a database")
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", "LOCAL"},
		{"::1", "LOCAL"},
		{"10.1.2.3", "LOCAL"},
		{"172.20.0.5", "LOCAL"},
		{"192.168.1.100", "LOCAL"},
		{"fe80::1", "LOCAL"},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := g.LookupCountry(tt.ip); got != tt.want {
			t.Errorf("LookupCountry(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}

func TestLookupCountryUninitialized(t *testing.T) {
	g := NewLookup()
	if got := g.LookupCountry("127.0.0.1"); got != "" {
		t.Errorf("uninitialized lookup returned %q", got)
	}
}

func TestInitMissingFile(t *testing.T) {
	g := NewLookup()
	if err := g.Init("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
	if g.IsEnabled() {
		t.Error("lookup should stay disabled after a failed Init")
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"CN", "China"},
		{"SG", "Singapore"},
		{"LOCAL", "Local Network"},
		{"", "Unknown"},
		{"ZZ", "ZZ"},
	}
	for _, tt := range tests {
		if got := CountryName(tt.code); got != tt.want {
			t.Errorf("CountryName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
