package http

import (
	"strings"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	return "req_" + uuid.NewString()
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// at returns slice[i] or empty when the form arrays are ragged.
func at(slice []string, i int) string {
	if i < len(slice) {
		return slice[i]
	}
	return ""
}
