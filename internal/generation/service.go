// Package generation runs the resume pipeline: normalize the stored profile,
// select a strategy, build the prompt, call the generation backend and parse
// its output into a resume record.
package generation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-assist/internal/llm"
	"github.com/jonathan/resume-assist/internal/observability"
	"github.com/jonathan/resume-assist/internal/parsing"
	"github.com/jonathan/resume-assist/internal/profile"
	"github.com/jonathan/resume-assist/internal/prompts"
	"github.com/jonathan/resume-assist/internal/rendering"
	"github.com/jonathan/resume-assist/internal/schemas"
	"github.com/jonathan/resume-assist/internal/strategy"
	"github.com/jonathan/resume-assist/internal/types"
)

// DefaultBatchLimit bounds concurrent generations in GenerateBatch
const DefaultBatchLimit = 3

// Pipeline step names reported through ProgressCallback
const (
	StepNormalize = "normalize_profile"
	StepStrategy  = "select_strategy"
	StepPrompt    = "build_prompt"
	StepProbe     = "check_backend"
	StepGenerate  = "generate"
	StepParse     = "parse_response"
)

// ProgressEvent represents a progress update during generation
type ProgressEvent struct {
	Step    string `json:"step"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when generation progress occurs
type ProgressCallback func(event ProgressEvent)

// PDFRenderer prints HTML to PDF
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Options configures a Service
type Options struct {
	// Generate is passed to every backend call
	Generate   llm.GenerateOptions
	BatchLimit int
	Verbose    bool
	// Printer receives profile, strategy and resume summaries when Verbose is set
	Printer    *observability.Printer
	OnProgress ProgressCallback
	// Now stamps records; time.Now when nil
	Now func() time.Time
	// LaTeXTemplate replaces the built-in LaTeX layout in Export
	LaTeXTemplate string
}

// Request is the input to GenerateResume
type Request struct {
	ProfileDocument   map[string]any `json:"profileDocument"`
	TargetRole        string         `json:"targetRole"`
	ExtraRequirements string         `json:"extraRequirements,omitempty"`
	UserID            string         `json:"userId,omitempty"`
	// OnProgress receives this request's events in addition to Options.OnProgress
	OnProgress ProgressCallback `json:"-"`
}

// Result is the discriminated outcome of GenerateResume. Exactly one of
// Resume and Error is set.
type Result struct {
	Success   bool                `json:"success"`
	Resume    *types.ResumeRecord `json:"resume,omitempty"`
	Error     string              `json:"error,omitempty"`
	ErrorKind ErrorKind           `json:"errorKind,omitempty"`
	// Degraded lists record sections whose content did not fully parse
	Degraded []string `json:"degradedSections,omitempty"`
	// Err is the underlying typed error
	Err error `json:"-"`
}

// Service generates resumes with an injected backend client and renderer
type Service struct {
	client   llm.Client
	renderer PDFRenderer
	opts     Options
}

// NewService creates a Service. renderer may be nil when PDF output is not
// needed, and client may be nil for a Service that only exports records.
func NewService(client llm.Client, renderer PDFRenderer, opts Options) *Service {
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = DefaultBatchLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Generate == (llm.GenerateOptions{}) {
		opts.Generate = llm.DefaultConfig().Options()
	}
	return &Service{client: client, renderer: renderer, opts: opts}
}

// errNoBackend is reported by an export-only Service asked to generate
var errNoBackend = &llm.BackendUnavailableError{Backend: "none", Message: "no generation backend configured"}

// Model returns the backend model name, or "" without a backend
func (s *Service) Model() string {
	if s.client == nil {
		return ""
	}
	return s.client.Model()
}

// CheckBackend probes the generation backend
func (s *Service) CheckBackend(ctx context.Context) llm.Availability {
	if s.client == nil {
		return llm.Availability{Error: errNoBackend.Message}
	}
	return s.client.CheckAvailability(ctx)
}

func (s *Service) emit(req Request, role, step, message string, content any) {
	if s.opts.OnProgress == nil && req.OnProgress == nil {
		return
	}
	event := ProgressEvent{Step: step, Role: role, Message: message, Content: content}
	if s.opts.OnProgress != nil {
		s.opts.OnProgress(event)
	}
	if req.OnProgress != nil {
		req.OnProgress(event)
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.opts.Verbose {
		log.Printf("[GENERATION] "+format, args...)
	}
}

// GenerateResume runs the full pipeline for one target role. It never
// returns an error value; failures are reported in the Result.
func (s *Service) GenerateResume(ctx context.Context, req Request) Result {
	record, degraded, err := s.generate(ctx, req)
	if err != nil {
		kind := KindOf(err)
		s.logf("Generation for %q failed (%s): %v", req.TargetRole, kind, err)
		return Result{Error: err.Error(), ErrorKind: kind, Err: err}
	}
	return Result{Success: true, Resume: record, Degraded: degraded}
}

func (s *Service) generate(ctx context.Context, req Request) (*types.ResumeRecord, []string, error) {
	role := strings.TrimSpace(req.TargetRole)
	if req.ProfileDocument == nil {
		return nil, nil, &ValidationError{Field: "profileDocument", Message: "profile document is required"}
	}
	if role == "" {
		return nil, nil, &ValidationError{Field: "targetRole", Message: "target role is required"}
	}
	if s.client == nil {
		return nil, nil, errNoBackend
	}

	p := profile.Normalize(req.ProfileDocument)
	s.emit(req, role, StepNormalize, "Normalized profile", p)
	if s.opts.Verbose && s.opts.Printer != nil {
		s.opts.Printer.PrintProfile(p)
	}

	strat := strategy.Select(p)
	s.emit(req, role, StepStrategy, string(strat.Type)+" strategy, "+string(strat.RequirementLevel), strat)
	if s.opts.Verbose && s.opts.Printer != nil {
		s.opts.Printer.PrintStrategy(strat)
	}

	prompt := prompts.BuildResumePrompt(p, strat, role, req.ExtraRequirements)
	s.emit(req, role, StepPrompt, "Built generation prompt", nil)
	s.logf("Prompt for %q: %d bytes", role, len(prompt))

	availability := s.client.CheckAvailability(ctx)
	if err := availability.Unavailable(s.client.Model()); err != nil {
		return nil, nil, err
	}
	s.emit(req, role, StepProbe, "Generation backend is available", availability)

	raw, err := s.client.Generate(ctx, prompt, s.opts.Generate)
	if err != nil {
		var genErr *llm.GenerationFailedError
		if errors.As(err, &genErr) {
			return nil, nil, err
		}
		return nil, nil, &llm.GenerationFailedError{Reason: "backend call failed", Cause: err}
	}
	s.emit(req, role, StepGenerate, "Received model output", nil)

	doc, err := parsing.DecodeModelOutput(raw)
	if err != nil {
		return nil, nil, &llm.GenerationFailedError{Reason: "model output is not a JSON object", Excerpt: llm.Excerpt(raw), Cause: err}
	}
	if err := schemas.ValidateModelOutput(doc); err != nil {
		log.Printf("[GENERATION] Warning: model output does not match the output contract: %v", err)
	}

	parsed := parsing.Parse(doc)
	resume := parsed.Resume
	resume.Header = resume.Header.WithProfile(p)

	record := &types.ResumeRecord{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Role:            role,
		Model:           s.client.Model(),
		GeneratedAt:     s.opts.Now().UTC(),
		Strategy:        strat,
		Resume:          resume,
		ProfileSnapshot: p,
		Sections:        parsed.StatusMap(),
	}
	degraded := parsed.Degraded()
	if len(degraded) > 0 {
		s.logf("Sections that did not fully parse for %q: %s", role, strings.Join(degraded, ", "))
	}
	s.emit(req, role, StepParse, "Parsed generated resume", record)
	if s.opts.Verbose && s.opts.Printer != nil {
		s.opts.Printer.PrintResume(record)
	}

	return record, degraded, nil
}

// GenerateBatch generates one resume per role from the same profile document.
// Requests run concurrently up to the batch limit; results are in role order.
func (s *Service) GenerateBatch(ctx context.Context, req Request, roles []string) []Result {
	results := make([]Result, len(roles))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchLimit)
	for i, role := range roles {
		r := req
		r.TargetRole = role
		g.Go(func() error {
			results[i] = s.GenerateResume(gCtx, r)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// RenderHTML formats a resume as a self-contained HTML document
func (s *Service) RenderHTML(resume *types.GeneratedResume) string {
	return rendering.ToHTML(resume)
}

// RenderPDF prints HTML to PDF with the configured renderer
func (s *Service) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if s.renderer == nil {
		return nil, errNoRenderer
	}
	return s.renderer.RenderPDF(ctx, html)
}
