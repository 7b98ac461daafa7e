package generation

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/pdf"
	"github.com/jonathan/resume-assist/internal/rendering"
)

// ErrorKind classifies a failed generation for callers
type ErrorKind string

// Error kinds
const (
	KindValidation         ErrorKind = "validation"
	KindBackendUnavailable ErrorKind = "backend_unavailable"
	KindGenerationFailed   ErrorKind = "generation_failed"
	KindRenderFailed       ErrorKind = "render_failed"
)

// ValidationError is returned when required input is missing. Generation is
// never attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// UnsupportedFormatError is returned by Export for an unknown format name
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Format)
}

// KindOf maps an error from the pipeline onto its ErrorKind. Unknown errors
// are treated as generation failures.
func KindOf(err error) ErrorKind {
	var (
		validationErr  *ValidationError
		formatErr      *UnsupportedFormatError
		unavailableErr *llm.BackendUnavailableError
		renderErr      *pdf.RenderFailedError
		formatterErr   *rendering.RenderError
		templateErr    *rendering.TemplateError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr), errors.As(err, &formatErr):
		return KindValidation
	case errors.As(err, &unavailableErr):
		return KindBackendUnavailable
	case errors.As(err, &renderErr), errors.As(err, &formatterErr), errors.As(err, &templateErr):
		return KindRenderFailed
	default:
		return KindGenerationFailed
	}
}

var errNoRenderer = &pdf.RenderFailedError{Stage: pdf.StageLaunch, Message: "no PDF renderer configured"}
