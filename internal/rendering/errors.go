package rendering

import "fmt"

// TemplateError is returned when a custom LaTeX template cannot be read,
// parsed or executed
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	msg := "latex template"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError is returned when a binary rendition cannot be assembled
type RenderError struct {
	Format  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s rendering failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s rendering failed: %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
