package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/pdf"
	"github.com/jonathan/resume-assist/internal/rendering"
	"github.com/jonathan/resume-assist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu            sync.Mutex
	available     bool
	probeError    string
	output        string
	err           error
	generateCalls int
	prompts       []string
	opts          []llm.GenerateOptions
}

func (f *fakeClient) Generate(_ context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generateCalls++
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.output, f.err
}

func (f *fakeClient) CheckAvailability(context.Context) llm.Availability {
	return llm.Availability{IsAvailable: f.available, Error: f.probeError}
}

func (f *fakeClient) Model() string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

type fakeRenderer struct {
	out  []byte
	err  error
	html string
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return f.out, f.err
}

const modelOutput = "```json\n" + `{
  "header": {"name": "", "email": ""},
  "summary": "Backend engineer with **5 years** of experience.",
  "skills": ["Go", "SQL"],
  "experience": "**Engineer** | Acme | 2019 - 2024\n• Built billing APIs",
  "education": [],
  "awards": "Won some things"
}` + "\n```"

func profileDocument() map[string]any {
	return map[string]any{
		"name":            "Asha Rao",
		"email":           "asha@example.com",
		"totalExperience": "5 years",
		"skills":          []any{"Go", "SQL"},
		"experience": []any{
			map[string]any{"company": "Acme", "role": "Engineer", "duration": "2019 - 2024"},
		},
	}
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(client llm.Client, renderer PDFRenderer) *Service {
	return NewService(client, renderer, Options{Now: func() time.Time { return fixedNow }})
}

func TestGenerateResume_Success(t *testing.T) {
	client := &fakeClient{available: true, output: modelOutput}
	var steps []string
	svc := NewService(client, nil, Options{
		Now:        func() time.Time { return fixedNow },
		OnProgress: func(e ProgressEvent) { steps = append(steps, e.Step) },
	})

	res := svc.GenerateResume(context.Background(), Request{
		ProfileDocument:   profileDocument(),
		TargetRole:        " Platform Engineer ",
		ExtraRequirements: "Mention Kubernetes",
		UserID:            "user-1",
	})

	require.True(t, res.Success, res.Error)
	assert.Empty(t, res.Error)
	assert.Empty(t, res.ErrorKind)

	rec := res.Resume
	require.NotNil(t, rec)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, "Platform Engineer", rec.Role)
	assert.Equal(t, "fake-model", rec.Model)
	assert.Equal(t, fixedNow, rec.GeneratedAt)
	assert.Equal(t, types.StrategyExperienced, rec.Strategy.Type)
	assert.Equal(t, types.LevelSenior, rec.Strategy.RequirementLevel)
	assert.Equal(t, "Asha Rao", rec.ProfileSnapshot.Name)

	r := rec.Resume
	assert.Equal(t, "Asha Rao", r.Header.Name)
	assert.Equal(t, "asha@example.com", r.Header.Email)
	assert.Equal(t, "Go, SQL", r.Skills)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, types.Experience{Role: "Engineer", Company: "Acme", Duration: "2019 - 2024", Description: "Built billing APIs"}, r.Experience[0])
	assert.NotNil(t, r.Education)
	assert.Empty(t, r.Awards)

	assert.Equal(t, "parsed", rec.Sections["experience"])
	assert.Equal(t, "absent", rec.Sections["education"])
	assert.Equal(t, "unparsed", rec.Sections["awards"])
	assert.Equal(t, []string{"awards"}, res.Degraded)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Platform Engineer")
	assert.Contains(t, client.prompts[0], "Mention Kubernetes")
	assert.True(t, client.opts[0].JSON)

	assert.Equal(t, []string{StepNormalize, StepStrategy, StepPrompt, StepProbe, StepGenerate, StepParse}, steps)
}

func TestGenerateResume_Validation(t *testing.T) {
	client := &fakeClient{available: true, output: modelOutput}
	svc := newTestService(client, nil)

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing profile", Request{TargetRole: "SRE"}, "profileDocument"},
		{"missing role", Request{ProfileDocument: profileDocument()}, "targetRole"},
		{"blank role", Request{ProfileDocument: profileDocument(), TargetRole: "  "}, "targetRole"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.GenerateResume(context.Background(), tt.req)

			assert.False(t, res.Success)
			assert.Nil(t, res.Resume)
			assert.Equal(t, KindValidation, res.ErrorKind)
			var vErr *ValidationError
			require.ErrorAs(t, res.Err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	assert.Equal(t, 0, client.generateCalls)
}

func TestGenerateResume_BackendDown(t *testing.T) {
	client := &fakeClient{available: false, probeError: "Cannot connect to Ollama at http://localhost:11434 - connection refused"}
	svc := newTestService(client, nil)

	res := svc.GenerateResume(context.Background(), Request{ProfileDocument: profileDocument(), TargetRole: "SRE"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not available")
	assert.Contains(t, res.Error, "Cannot connect")
	assert.Equal(t, KindBackendUnavailable, res.ErrorKind)
	assert.Equal(t, 0, client.generateCalls)
}

func TestGenerateResume_WithoutClient(t *testing.T) {
	svc := NewService(nil, nil, Options{})
	ctx := context.Background()

	res := svc.GenerateResume(ctx, Request{ProfileDocument: profileDocument(), TargetRole: "SRE"})

	assert.False(t, res.Success)
	assert.Equal(t, KindBackendUnavailable, res.ErrorKind)
	assert.Contains(t, res.Error, "not available")

	batch := svc.GenerateBatch(ctx, Request{ProfileDocument: profileDocument()}, []string{"SRE", "Data Analyst"})
	require.Len(t, batch, 2)
	for _, r := range batch {
		assert.Equal(t, KindBackendUnavailable, r.ErrorKind)
	}

	assert.Empty(t, svc.Model())
	assert.False(t, svc.CheckBackend(ctx).IsAvailable)
}

func TestGenerateResume_GenerationFailures(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeClient
		contain string
	}{
		{
			name:    "typed backend failure",
			client:  &fakeClient{available: true, err: &llm.GenerationFailedError{Reason: "Ollama returned HTTP 500"}},
			contain: "HTTP 500",
		},
		{
			name:    "untyped backend failure",
			client:  &fakeClient{available: true, err: errors.New("socket closed")},
			contain: "socket closed",
		},
		{
			name:    "not json",
			client:  &fakeClient{available: true, output: "Sure! Here is your resume."},
			contain: "Sure! Here is your resume.",
		},
		{
			name:    "json array",
			client:  &fakeClient{available: true, output: `["not", "an", "object"]`},
			contain: "not a JSON object",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.client, nil)

			res := svc.GenerateResume(context.Background(), Request{ProfileDocument: profileDocument(), TargetRole: "SRE"})

			assert.False(t, res.Success)
			assert.Equal(t, KindGenerationFailed, res.ErrorKind)
			assert.Contains(t, res.Error, tt.contain)
			var genErr *llm.GenerationFailedError
			assert.ErrorAs(t, res.Err, &genErr)
			assert.Equal(t, 1, tt.client.generateCalls)
		})
	}
}

func TestGenerateResume_EmptyModelObject(t *testing.T) {
	svc := newTestService(&fakeClient{available: true, output: "{}"}, nil)

	res := svc.GenerateResume(context.Background(), Request{ProfileDocument: map[string]any{}, TargetRole: "SRE"})

	require.True(t, res.Success)
	r := res.Resume.Resume
	assert.NotNil(t, r.Experience)
	assert.NotNil(t, r.Awards)
	assert.Empty(t, res.Degraded)
	assert.Equal(t, types.StrategyFresher, res.Resume.Strategy.Type)
}

func TestGenerateBatch(t *testing.T) {
	client := &fakeClient{available: true, output: modelOutput}
	svc := newTestService(client, nil)
	roles := []string{"SRE", "", "Backend Engineer", "Data Engineer"}

	results := svc.GenerateBatch(context.Background(), Request{ProfileDocument: profileDocument()}, roles)

	require.Len(t, results, 4)
	assert.Equal(t, "SRE", results[0].Resume.Role)
	assert.Equal(t, KindValidation, results[1].ErrorKind)
	assert.Equal(t, "Backend Engineer", results[2].Resume.Role)
	assert.Equal(t, "Data Engineer", results[3].Resume.Role)
	assert.Equal(t, 3, client.generateCalls)
	assert.NotEqual(t, results[0].Resume.ID, results[2].Resume.ID)
}

func TestRenderPDF(t *testing.T) {
	renderer := &fakeRenderer{out: []byte("%PDF-1.7")}
	svc := newTestService(&fakeClient{}, renderer)

	out, err := svc.RenderPDF(context.Background(), "<html></html>")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), out)
	assert.Equal(t, "<html></html>", renderer.html)
}

func TestRenderPDF_NoRenderer(t *testing.T) {
	svc := newTestService(&fakeClient{}, nil)

	_, err := svc.RenderPDF(context.Background(), "<html></html>")

	assert.Equal(t, KindRenderFailed, KindOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, KindValidation, KindOf(&ValidationError{Field: "x"}))
	assert.Equal(t, KindValidation, KindOf(&UnsupportedFormatError{Format: "rtf"}))
	assert.Equal(t, KindBackendUnavailable, KindOf(&llm.BackendUnavailableError{Backend: "ollama"}))
	assert.Equal(t, KindRenderFailed, KindOf(&pdf.RenderFailedError{Stage: pdf.StageLoad}))
	assert.Equal(t, KindRenderFailed, KindOf(&rendering.RenderError{Format: "docx", Message: "x"}))
	assert.Equal(t, KindGenerationFailed, KindOf(&llm.GenerationFailedError{Reason: "x"}))
	assert.Equal(t, KindGenerationFailed, KindOf(context.DeadlineExceeded))
}

func TestGenerateResume_RequestProgress(t *testing.T) {
	client := &fakeClient{available: true, output: modelOutput}
	svc := newTestService(client, nil)
	var events []ProgressEvent

	res := svc.GenerateResume(context.Background(), Request{
		ProfileDocument: profileDocument(),
		TargetRole:      "Engineer",
		OnProgress:      func(e ProgressEvent) { events = append(events, e) },
	})

	require.True(t, res.Success, res.Error)
	require.NotEmpty(t, events)
	assert.Equal(t, StepNormalize, events[0].Step)
	assert.Equal(t, StepParse, events[len(events)-1].Step)
	assert.Equal(t, "Engineer", events[0].Role)
}
