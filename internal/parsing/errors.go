package parsing

import "fmt"

// ParseError is returned when model output cannot be decoded as a JSON object.
// Excerpt holds the start of the raw output for diagnostics.
type ParseError struct {
	Message string
	Excerpt string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := "parse error: " + e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Excerpt != "" {
		msg = fmt.Sprintf("%s (output: %q)", msg, e.Excerpt)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
