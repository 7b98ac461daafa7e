package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-assist/internal/generation"
	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/pdf"
	"github.com/jonathan/resume-assist/internal/rendering"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "target_role", Message: "failed on required"}
	assert.Equal(t, "validation error: target_role - failed on required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "resume", ID: "abc"}
	assert.Equal(t, "resume not found: abc", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request validation", &generation.ValidationError{Field: "targetRole"}, http.StatusBadRequest},
		{"unknown format", &generation.UnsupportedFormatError{Format: "rtf"}, http.StatusNotFound},
		{"backend unavailable", &llm.BackendUnavailableError{Backend: "ollama"}, http.StatusServiceUnavailable},
		{"generation failed", &llm.GenerationFailedError{Reason: "empty"}, http.StatusBadGateway},
		{"pdf failed", &pdf.RenderFailedError{Stage: pdf.StagePrint}, http.StatusBadGateway},
		{"docx assembly failed", &rendering.RenderError{Format: "docx", Message: "zip"}, http.StatusBadGateway},
		{"latex template failed", fmt.Errorf("tex export: %w", &rendering.TemplateError{Path: "t.tex", Message: "template file not found"}), http.StatusBadGateway},
		{"wrapped", fmt.Errorf("outer: %w", &ErrNotFound{Resource: "profile"}), http.StatusNotFound},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	s := newTestServer(t)
	err := validationError(s.validate.Struct(GenerateRequest{}))

	assert.Equal(t, "validation error: TargetRole - failed on required", err.Error())
}
