package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// scenarioIDRegex matches content-addressed scenario IDs (hex SHA-256).
var scenarioIDRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateScenarioID validates a scenario ID received from a client.
// IDs are SHA-256 hex digests, which rules out path traversal in the file
// store and key injection in Redis.
func ValidateScenarioID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "scenario id cannot be empty")
	}
	if !scenarioIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid scenario id: %q", id)
	}
	return nil
}

// ValidateName validates a human-readable scenario name.
//
// The validation rules are intentionally conservative:
//   - No control characters
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidScenario, "scenario name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScenario, "scenario name contains invalid control characters")
		}
	}
	return nil
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"json": true, "svg": true, "png": true}

// ValidateFormat checks that a format is one of json, svg or png.
func ValidateFormat(format string) error {
	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, png)", format)
	}
	return nil
}

// ValidateURL validates a backend connection URL.
// It ensures the URL uses one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
