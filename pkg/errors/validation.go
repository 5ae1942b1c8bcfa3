package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds catalog identifiers. Real catalogs use short slugs
// such as "aws-saa-c03".
const maxIDLength = 256

// ValidateID validates a catalog identifier (certification or link id).
//
// The rules are intentionally conservative because ids end up in DOT
// sources, cache keys and output file names:
//   - No empty or all-whitespace ids
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) || r == '"' {
			return New(ErrCodeInvalidInput, "URL contains invalid characters")
		}
	}

	return nil
}
