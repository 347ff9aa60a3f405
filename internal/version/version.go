// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "strings"

// devVersion is reported when no version was injected at build time.
const devVersion = "dev"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// Short returns the version alone, or "dev" for unversioned builds.
func (i Info) Short() string {
	if i.Version == "" {
		return devVersion
	}
	return i.Version
}

// String returns the version with its commit and build time, when known.
func (i Info) String() string {
	var details []string
	if i.GitCommit != "" {
		details = append(details, i.GitCommit)
	}
	if i.BuildTime != "" {
		details = append(details, "built "+i.BuildTime)
	}
	if len(details) == 0 {
		return i.Short()
	}
	return i.Short() + " (" + strings.Join(details, ", ") + ")"
}
