// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User roles. Roles are hierarchical: admin > editor.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
