package slogx

import (
	"log/slog"
	"strings"
)

// redactKeep is how many leading characters survive redaction.
const redactKeep = 4

// Redact masks a credential for logging, keeping a short prefix so two
// values can still be told apart. Short values are masked completely.
func Redact(secret string) string {
	if len(secret) <= redactKeep*2 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:redactKeep] + strings.Repeat("*", len(secret)-redactKeep)
}

// Secret returns a slog attribute carrying the redacted form of value.
func Secret(key, value string) slog.Attr {
	return slog.String(key, Redact(value))
}
