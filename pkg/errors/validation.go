package errors

import (
	"strings"
	"unicode"
)

// maxExtent bounds each grid axis so that Rows*Cols cannot overflow an int
// on 32-bit platforms.
const maxExtent = 1 << 15

// ValidateDimensions validates the fixed grid extent.
//
// Both axes must be positive and no larger than 32768 cells.
func ValidateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return New(ErrCodeInvalidConfig, "grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if rows > maxExtent || cols > maxExtent {
		return New(ErrCodeInvalidConfig, "grid dimensions too large (max %d per axis), got %dx%d", maxExtent, rows, cols)
	}
	return nil
}

// ValidateCellSize validates the default element size along both axes.
func ValidateCellSize(height, width int) error {
	if height <= 0 || width <= 0 {
		return New(ErrCodeInvalidConfig, "cell size must be positive, got %dx%d", height, width)
	}
	return nil
}

// ValidatePadding validates viewport padding against the viewport extent.
// Padding may consume the whole viewport but never more.
func ValidatePadding(size, start, end int) error {
	if start < 0 || end < 0 {
		return New(ErrCodeInvalidConfig, "padding cannot be negative, got %d/%d", start, end)
	}
	if start+end > size {
		return New(ErrCodeInvalidConfig, "padding %d+%d exceeds viewport size %d", start, end, size)
	}
	return nil
}

// ValidateFormat checks an export format name against the supported set.
func ValidateFormat(format string, supported []string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(supported, ", "))
}

// ValidateKey validates a redis key or similar opaque identifier.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters or whitespace
//   - Maximum length of 256 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "key contains invalid characters: %q", key)
		}
	}
	return nil
}
