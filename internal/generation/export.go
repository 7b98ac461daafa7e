package generation

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-assist/internal/rendering"
	"github.com/jonathan/resume-assist/internal/types"
)

// Format is an output rendition of a resume record
type Format string

// Supported formats
const (
	FormatHTML         Format = "html"
	FormatText         Format = "txt"
	FormatLaTeX        Format = "tex"
	FormatStandard     Format = "standard"
	FormatStandardText Format = "standard-txt"
	FormatDOCX         Format = "docx"
	FormatPDF          Format = "pdf"
	FormatJSON         Format = "json"
)

// Formats lists every supported format in display order
var Formats = []Format{FormatHTML, FormatText, FormatLaTeX, FormatStandard, FormatStandardText, FormatDOCX, FormatPDF, FormatJSON}

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Format: name}
}

// Artifact is a rendered resume
type Artifact struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Export renders a record in the given format. Only PDF touches the browser;
// every other format is produced by the pure formatters.
func (s *Service) Export(ctx context.Context, record *types.ResumeRecord, format Format) (*Artifact, error) {
	if record == nil || record.Resume == nil {
		return nil, &ValidationError{Field: "resume", Message: "resume record is empty"}
	}
	r, p := record.Resume, record.ProfileSnapshot

	switch format {
	case FormatHTML:
		return textArtifact(rendering.ToHTML(r), "text/html; charset=utf-8", "html"), nil
	case FormatText:
		return textArtifact(rendering.ToPlainText(r), "text/plain; charset=utf-8", "txt"), nil
	case FormatLaTeX:
		if s.opts.LaTeXTemplate == "" {
			return textArtifact(rendering.ToLaTeX(r, p), "application/x-tex; charset=utf-8", "tex"), nil
		}
		tex, err := rendering.ToLaTeXWithTemplate(r, p, s.opts.LaTeXTemplate)
		if err != nil {
			return nil, err
		}
		return textArtifact(tex, "application/x-tex; charset=utf-8", "tex"), nil
	case FormatStandard:
		return textArtifact(rendering.ToStandardHTML(r, p), "text/html; charset=utf-8", "html"), nil
	case FormatStandardText:
		return textArtifact(rendering.ToStandardText(r, p), "text/plain; charset=utf-8", "txt"), nil
	case FormatDOCX:
		data, err := rendering.ToDOCX(rendering.ToHTML(r))
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Data:        data,
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Extension:   "docx",
		}, nil
	case FormatPDF:
		data, err := s.RenderPDF(ctx, rendering.ToHTML(r))
		if err != nil {
			return nil, err
		}
		return &Artifact{Data: data, ContentType: "application/pdf", Extension: "pdf"}, nil
	case FormatJSON:
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, err
		}
		return &Artifact{Data: data, ContentType: "application/json", Extension: "json"}, nil
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}

func textArtifact(content, contentType, ext string) *Artifact {
	return &Artifact{Data: []byte(content), ContentType: contentType, Extension: ext}
}
