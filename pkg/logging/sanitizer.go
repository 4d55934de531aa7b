package logging

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxNoteLength caps free-text notes persisted to the audit log.
	MaxNoteLength = 2000

	// RedactedText is the replacement text for sensitive data.
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match potential passwords in connection strings.
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Pattern to match connection string credentials (user:pass@host).
	connStringPattern = regexp.MustCompile(`://[^:]+:[^@]+@[^/\s]+`)
)

// SanitizeNote prepares free-text (gate notes, override justifications)
// for the audit log: control characters are stripped and the text is
// capped at MaxNoteLength.
func SanitizeNote(note string) string {
	if note == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(note))
	for _, r := range note {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}

	sanitized := b.String()
	if len(sanitized) > MaxNoteLength {
		sanitized = sanitized[:MaxNoteLength]
	}
	return sanitized
}

// SanitizeError sanitizes error messages that might contain sensitive
// data. Use this before logging any error from database operations.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := passwordPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	sanitized = connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
	return sanitized
}
