// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strings"
)

// NullStringFromPtr converts a pointer to string into sql.NullString.
// A nil pointer yields an invalid (NULL) value; an empty string stays valid.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr != nil {
		return sql.NullString{String: *ptr, Valid: true}
	}
	return sql.NullString{}
}

// PtrFromNullString is the inverse of NullStringFromPtr.
func PtrFromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// OptionalString trims s and returns nil when nothing is left, so an empty
// form field is stored as absent rather than as "".
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
