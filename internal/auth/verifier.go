// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/subtle"
	"log/slog"
)

// Verifier checks a submitted password against the single configured
// administrator secret. It fails closed: with nothing configured every
// submission is rejected.
type Verifier struct {
	secret string
	hash   string
	logger *slog.Logger
}

// NewVerifier creates a Verifier. When hash is non-empty it takes precedence
// over the plain secret.
func NewVerifier(secret, hash string, logger *slog.Logger) *Verifier {
	return &Verifier{secret: secret, hash: hash, logger: logger}
}

// Configured reports whether a login can ever succeed.
func (v *Verifier) Configured() bool {
	return v.secret != "" || v.hash != ""
}

// Verify returns true iff a secret is configured and submitted matches it.
func (v *Verifier) Verify(submitted string) bool {
	if v.hash != "" {
		ok, err := CheckPassword(submitted, v.hash)
		if err != nil {
			v.logger.Error("admin password hash is malformed", "category", "auth", "error", err)
			return false
		}
		return ok
	}

	if v.secret == "" {
		v.logger.Error("admin password is not configured; rejecting login", "category", "auth")
		return false
	}

	if submitted == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(submitted), []byte(v.secret)) == 1
}
