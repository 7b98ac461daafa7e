package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-assist/internal/generation"
	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/pdf"
	"github.com/jonathan/resume-assist/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing profile or resume
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		notFoundErr    *ErrNotFound
		requestErr     *generation.ValidationError
		formatErr      *generation.UnsupportedFormatError
		unavailableErr *llm.BackendUnavailableError
		generationErr  *llm.GenerationFailedError
		pdfErr         *pdf.RenderFailedError
		formatterErr   *rendering.RenderError
		templateErr    *rendering.TemplateError
		validatorErrs  validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &requestErr), errors.As(err, &validatorErrs):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.As(err, &formatErr):
		return http.StatusNotFound
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &generationErr), errors.As(err, &pdfErr),
		errors.As(err, &formatterErr), errors.As(err, &templateErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator errors into an *ErrValidation naming the first failing field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return &ErrValidation{Field: ve.Field(), Message: "failed on " + ve.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
