package util

import "strings"

// MaskSecret hides the middle of a secret for display, keeping the first
// prefix and last suffix characters: "sk-abc...wxyz". Secrets too short to
// hide anything are fully masked.
func MaskSecret(s string, prefix, suffix int) string {
	if len(s) <= prefix+suffix {
		return "***"
	}
	return s[:prefix] + "..." + s[len(s)-suffix:]
}

// SanitizeEnvValue cleans an environment variable value by removing surrounding
// quotes and trimming whitespace.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	// Strip matching surrounding quotes (single or double).
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
