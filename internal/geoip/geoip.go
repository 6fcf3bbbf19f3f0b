// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client IPs to ISO country codes using a MaxMind
// GeoLite2-Country database. The database file is optional; without it
// every lookup returns the empty string.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

var privateCIDRs = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"fc00::/7",  // IPv6 unique local
	"fe80::/10", // IPv6 link-local
)

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, cidr, err := net.ParseCIDR(b)
		if err != nil {
			panic(fmt.Sprintf("geoip: bad CIDR %q: %v", b, err))
		}
		nets = append(nets, cidr)
	}
	return nets
}

// Lookup wraps a GeoLite2-Country reader. The zero value is unusable;
// call NewLookup followed by Init.
type Lookup struct {
	mu          sync.RWMutex
	db          *maxminddb.Reader
	dbPath      string
	dbModTime   time.Time
	initialized bool
	enabled     bool
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup creates an empty lookup instance.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Init loads the database at dbPath. An empty path disables lookups
// without error; a missing or unreadable file returns an error and
// leaves lookups disabled.
func (g *Lookup) Init(dbPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.initialized = true
	g.dbPath = dbPath
	if dbPath == "" {
		g.enabled = false
		return nil
	}
	return g.openLocked()
}

// Reload re-opens the database if the file changed on disk. GeoLite2
// distributions update weekly, so this is meant for a periodic job.
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dbPath == "" {
		return nil
	}
	return g.openLocked()
}

// openLocked loads or reloads the database. Caller holds the write lock.
func (g *Lookup) openLocked() error {
	info, err := os.Stat(g.dbPath)
	if err != nil {
		g.enabled = false
		return fmt.Errorf("geoip database %s: %w", g.dbPath, err)
	}
	if g.db != nil && info.ModTime().Equal(g.dbModTime) {
		return nil
	}

	if g.db != nil {
		_ = g.db.Close()
		g.db = nil
	}
	db, err := maxminddb.Open(g.dbPath)
	if err != nil {
		g.enabled = false
		return fmt.Errorf("opening geoip database: %w", err)
	}

	g.db = db
	g.dbModTime = info.ModTime()
	g.enabled = true
	return nil
}

// LookupCountry returns the two-letter ISO country code for ip, "LOCAL"
// for private and loopback addresses, or "" when the address is invalid
// or the database is unavailable.
func (g *Lookup) LookupCountry(ip string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.initialized {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || isPrivate(parsed) {
		return "LOCAL"
	}
	if !g.enabled || g.db == nil {
		return ""
	}

	var rec countryRecord
	if err := g.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// IsEnabled reports whether a database is loaded.
func (g *Lookup) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Close releases the database reader.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	g.enabled = false
	return err
}

func isPrivate(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// countryNames covers the markets the contact exports actually see.
// Unknown codes fall through to the code itself.
var countryNames = map[string]string{
	"LOCAL": "Local Network",
	"CN":    "China",
	"HK":    "Hong Kong",
	"MO":    "Macao",
	"TW":    "Taiwan",
	"SG":    "Singapore",
	"JP":    "Japan",
	"KR":    "South Korea",
	"TH":    "Thailand",
	"MY":    "Malaysia",
	"ID":    "Indonesia",
	"VN":    "Vietnam",
	"PH":    "Philippines",
	"IN":    "India",
	"AU":    "Australia",
	"NZ":    "New Zealand",
	"US":    "United States",
	"CA":    "Canada",
	"GB":    "United Kingdom",
	"IE":    "Ireland",
	"FR":    "France",
	"DE":    "Germany",
	"IT":    "Italy",
	"ES":    "Spain",
	"NL":    "Netherlands",
	"CH":    "Switzerland",
	"SE":    "Sweden",
	"AE":    "United Arab Emirates",
}

// CountryName returns a display name for a code from LookupCountry.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return code
}
