package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-assist/internal/pdf"
	"github.com/jonathan/resume-assist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedRecord(t *testing.T, svc *Service) *types.ResumeRecord {
	t.Helper()
	res := svc.GenerateResume(context.Background(), Request{ProfileDocument: profileDocument(), TargetRole: "SRE"})
	require.True(t, res.Success, res.Error)
	return res.Resume
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("rtf")
	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "rtf", formatErr.Format)
}

func TestExport_TextFormats(t *testing.T) {
	svc := newTestService(&fakeClient{available: true, output: modelOutput}, nil)
	rec := generatedRecord(t, svc)

	tests := []struct {
		format      Format
		contentType string
		contains    string
	}{
		{FormatHTML, "text/html; charset=utf-8", "<h1>Asha Rao</h1>"},
		{FormatText, "text/plain; charset=utf-8", "ASHA RAO"},
		{FormatLaTeX, "application/x-tex; charset=utf-8", `\textbf{5 years}`},
		{FormatStandard, "text/html; charset=utf-8", "<h2>Declaration</h2>"},
		{FormatStandardText, "text/plain; charset=utf-8", "DECLARATION"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			art, err := svc.Export(context.Background(), rec, tt.format)

			require.NoError(t, err)
			assert.Equal(t, tt.contentType, art.ContentType)
			assert.Contains(t, string(art.Data), tt.contains)
		})
	}
}

func TestExport_DOCXAndJSON(t *testing.T) {
	svc := newTestService(&fakeClient{available: true, output: modelOutput}, nil)
	rec := generatedRecord(t, svc)

	docx, err := svc.Export(context.Background(), rec, FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "docx", docx.Extension)
	assert.True(t, bytes.HasPrefix(docx.Data, []byte("PK")))

	js, err := svc.Export(context.Background(), rec, FormatJSON)
	require.NoError(t, err)
	var decoded types.ResumeRecord
	require.NoError(t, json.Unmarshal(js.Data, &decoded))
	assert.Equal(t, rec.ID, decoded.ID)
	assert.Equal(t, rec.Resume, decoded.Resume)
}

func TestExport_PDF(t *testing.T) {
	renderer := &fakeRenderer{out: []byte("%PDF-1.7")}
	svc := newTestService(&fakeClient{available: true, output: modelOutput}, renderer)
	rec := generatedRecord(t, svc)

	art, err := svc.Export(context.Background(), rec, FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", art.ContentType)
	assert.Contains(t, renderer.html, "<h1>Asha Rao</h1>")
}

func TestExport_PDFFailure(t *testing.T) {
	renderer := &fakeRenderer{err: &pdf.RenderFailedError{Stage: pdf.StageLoad, Message: "timeout"}}
	svc := newTestService(&fakeClient{available: true, output: modelOutput}, renderer)
	rec := generatedRecord(t, svc)

	_, err := svc.Export(context.Background(), rec, FormatPDF)

	assert.Equal(t, KindRenderFailed, KindOf(err))
}

func TestExport_Errors(t *testing.T) {
	svc := newTestService(&fakeClient{}, nil)

	_, err := svc.Export(context.Background(), nil, FormatHTML)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Export(context.Background(), &types.ResumeRecord{Resume: types.NewGeneratedResume()}, Format("rtf"))
	var formatErr *UnsupportedFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestExport_CustomLaTeXTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`NAME=<<tex .Name>>`), 0o600))
	client := &fakeClient{available: true, output: modelOutput}
	svc := NewService(client, nil, Options{Now: func() time.Time { return fixedNow }, LaTeXTemplate: path})
	rec := generatedRecord(t, svc)

	art, err := svc.Export(context.Background(), rec, FormatLaTeX)

	require.NoError(t, err)
	assert.Equal(t, "NAME=Asha Rao", string(art.Data))
}

func TestExport_MissingLaTeXTemplate(t *testing.T) {
	client := &fakeClient{available: true, output: modelOutput}
	svc := NewService(client, nil, Options{LaTeXTemplate: filepath.Join(t.TempDir(), "missing.tex")})
	rec := generatedRecord(t, svc)

	_, err := svc.Export(context.Background(), rec, FormatLaTeX)

	require.Error(t, err)
	assert.Equal(t, KindRenderFailed, KindOf(err))
}

func TestExport_WithoutClient(t *testing.T) {
	rec := generatedRecord(t, newTestService(&fakeClient{available: true, output: modelOutput}, nil))
	exporter := NewService(nil, nil, Options{})

	art, err := exporter.Export(context.Background(), rec, FormatText)

	require.NoError(t, err)
	assert.Contains(t, string(art.Data), "ASHA RAO")
}
