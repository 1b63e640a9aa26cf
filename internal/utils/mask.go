package utils

import "strings"

const maskVisible = 4

// MaskSecret hides an API key for log output, leaving only its last few characters.
func MaskSecret(s string) string {
	if len(s) <= maskVisible*2 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-maskVisible) + s[len(s)-maskVisible:]
}
