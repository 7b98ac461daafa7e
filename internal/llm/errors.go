package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxExcerpt bounds how much raw model output is carried in an error
const maxExcerpt = 300

// BackendUnavailableError is returned when the availability probe fails.
// Generation is never attempted after this error.
type BackendUnavailableError struct {
	Backend string
	Message string
	Cause   error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("generation backend %s is not available: %s", e.Backend, e.Message)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Cause
}

// GenerationFailedError is returned when the backend was reachable but the
// generation call did not produce usable output. Excerpt holds the start of
// the raw body, if any.
type GenerationFailedError struct {
	Reason  string
	Excerpt string
	Cause   error
}

func (e *GenerationFailedError) Error() string {
	msg := "generation failed: " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Excerpt != "" {
		msg += fmt.Sprintf(" (output: %q)", e.Excerpt)
	}
	return msg
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Cause
}

// Excerpt trims raw output to a bounded, valid UTF-8 prefix for error context
func Excerpt(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) <= maxExcerpt {
		return raw
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut] + "..."
}
