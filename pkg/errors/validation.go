package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// presetNameRegex matches preset names: lowercase letters, digits and dashes.
var presetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidatePresetName validates a preset name from a config file or the
// command line.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}
	return nil
}

// storeKeyRegex matches solution keys: a SHA-256 hex digest.
var storeKeyRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateStoreKey validates a solution key received from a client.
// It rejects anything that is not a 64-character lowercase hex digest,
// which also rules out path traversal into the file store.
func ValidateStoreKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}
	if !storeKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid solution key: %q", key)
	}
	return nil
}

// ValidatePath validates a user supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRowText validates one textual row such as "0 1 0 0 1" or
// "01001" before parsing.
func ValidateRowText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return New(ErrCodeInvalidRow, "row cannot be empty")
	}
	for _, r := range s {
		if r != '0' && r != '1' && r != ' ' && r != ',' {
			return New(ErrCodeInvalidRow, "row contains %q, want only 0 and 1", r)
		}
	}
	return nil
}

// ValidateBudget checks request limits so a single request cannot pin the
// server indefinitely. Zero means "use the server default".
func ValidateBudget(maxIterations, maxIterationsLimit int64, timeoutMS, timeoutLimitMS int64) error {
	if maxIterations < 0 {
		return New(ErrCodeInvalidInput, "max_iterations must not be negative")
	}
	if maxIterationsLimit > 0 && maxIterations > maxIterationsLimit {
		return New(ErrCodeInvalidInput, "max_iterations %d exceeds limit %d", maxIterations, maxIterationsLimit)
	}
	if timeoutMS < 0 {
		return New(ErrCodeInvalidInput, "timeout_ms must not be negative")
	}
	if timeoutLimitMS > 0 && timeoutMS > timeoutLimitMS {
		return New(ErrCodeInvalidInput, "timeout_ms %d exceeds limit %d", timeoutMS, timeoutLimitMS)
	}
	return nil
}
