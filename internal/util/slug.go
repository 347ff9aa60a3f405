// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose helpers for slugs, delimited lists
// and nullable values.
package util

import (
	"regexp"
	"strings"
)

// slugRegex matches every maximal run of characters outside [a-z0-9].
var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title. It lowercases the input, replaces
// every run of non-alphanumeric characters with a single hyphen and strips
// leading and trailing hyphens. Slugify is idempotent: Slugify(Slugify(s))
// equals Slugify(s).
func Slugify(s string) string {
	result := strings.ToLower(s)
	result = slugRegex.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
