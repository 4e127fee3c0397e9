package errors

import (
	"strings"
	"unicode"
)

// MaxViewport bounds each viewport dimension accepted from users.
const MaxViewport = 1 << 20

// ValidateViewport checks root dimensions supplied by a user or request.
// Both dimensions must be positive and no larger than MaxViewport.
func ValidateViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport must be positive, got %dx%d", width, height)
	}
	if width > MaxViewport || height > MaxViewport {
		return New(ErrCodeInvalidViewport, "viewport too large (max %d per side), got %dx%d", MaxViewport, width, height)
	}
	return nil
}

// ValidateNodeID validates a node identifier from a document.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidDocument, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "node id contains invalid control characters")
		}
	}
	return nil
}

// ValidateFormat checks a document format name against the supported set.
func ValidateFormat(format string, supported ...string) error {
	for _, s := range supported {
		if strings.EqualFold(format, s) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of: %s)", format, strings.Join(supported, ", "))
}

// ValidateMode checks a sizing mode name against the supported set.
func ValidateMode(mode string, supported ...string) error {
	for _, s := range supported {
		if mode == s {
			return nil
		}
	}
	return New(ErrCodeInvalidMode, "unknown sizing mode %q (want one of: %s)", mode, strings.Join(supported, ", "))
}
