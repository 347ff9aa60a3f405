// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// SplitList splits a delimited string, trims every item and drops empty
// ones. Order is preserved. The result is never nil.
func SplitList(raw, sep string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// JoinList is the form-field inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
