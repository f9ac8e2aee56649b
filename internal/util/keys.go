package util

import (
	"strings"
	"unicode/utf8"
)

// ValidKey reports whether key may be used with the public cache operations.
// A key must be non-empty, valid UTF-8, and free of whitespace-only content.
func ValidKey(key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	return strings.TrimSpace(key) != ""
}

// Join prefixes key with the namespace, when one is configured.
func Join(ns, key string) string {
	if ns == "" {
		return key
	}
	return ns + ":" + key
}
