// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session issues and checks the admin session cookie and provides the
// flash-message session used by admin redirects.
//
// The admin session has no server-side record. The cookie value is
// "<nonce>.<expiry>.<mac>", where mac is HMAC-SHA256 over "<nonce>.<expiry>"
// keyed by the session secret, so tampered or expired tokens are detected
// without any storage.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// DefaultTTL is the admin session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Store issues, validates and revokes admin session cookies.
type Store struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewStore creates a Store keyed by secret. Cookies are Secure unless isDev.
func NewStore(secret string, isDev bool) *Store {
	return &Store{
		key:    []byte(secret),
		ttl:    DefaultTTL,
		secure: !isDev,
		now:    time.Now,
	}
}

// Create issues a fresh token and sets it on the response.
func (s *Store) Create(w http.ResponseWriter) {
	expiry := s.now().Add(s.ttl).Unix()
	payload := uuid.NewString() + "." + strconv.FormatInt(expiry, 10)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    payload + "." + s.sign(payload),
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Destroy clears the cookie regardless of its stated expiry.
func (s *Store) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// IsActive reports whether r carries a valid, unexpired session token.
// It has no side effects.
func (s *Store) IsActive(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return s.valid(c.Value)
}

func (s *Store) valid(token string) bool {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 {
		return false
	}
	payload, mac := token[:i], token[i+1:]

	if !hmac.Equal([]byte(mac), []byte(s.sign(payload))) {
		return false
	}

	j := strings.LastIndexByte(payload, '.')
	if j <= 0 {
		return false
	}
	expiry, err := strconv.ParseInt(payload[j+1:], 10, 64)
	if err != nil {
		return false
	}

	return s.now().Unix() < expiry
}

func (s *Store) sign(payload string) string {
	m := hmac.New(sha256.New, s.key)
	m.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(m.Sum(nil))
}
