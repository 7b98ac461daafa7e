package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-assist/internal/generation"
	"github.com/jonathan/resume-assist/internal/types"
)

// GenerateRequest is the body of POST /users/{id}/resumes
type GenerateRequest struct {
	TargetRole        string `json:"target_role" validate:"required,max=200"`
	ExtraRequirements string `json:"extra_requirements,omitempty" validate:"max=4000"`
}

// GenerateResponse is returned after a successful generation
type GenerateResponse struct {
	Resume           *types.ResumeRecord `json:"resume"`
	DegradedSections []string            `json:"degraded_sections,omitempty"`
	Links            map[string]string   `json:"links"`
}

// GenerateErrorResponse carries the failure kind of an unsuccessful generation
type GenerateErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// RenditionErrorResponse is returned when a rendition cannot be produced.
// Fallback points at a rendition that does not need the browser.
type RenditionErrorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Fallback string `json:"fallback,omitempty"`
}

func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*GenerateRequest, error) {
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileBytes)).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	req.TargetRole = strings.TrimSpace(req.TargetRole)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func (s *Server) generationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.generateTimeout > 0 {
		return context.WithTimeout(ctx, s.generateTimeout)
	}
	return context.WithCancel(ctx)
}

// handleGenerateResume generates a resume from the stored profile and persists it
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	doc, err := s.profileDocument(r, userID)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	ctx, cancel := s.generationContext(r.Context())
	defer cancel()

	res := s.gen.GenerateResume(ctx, generation.Request{
		ProfileDocument:   doc,
		TargetRole:        req.TargetRole,
		ExtraRequirements: req.ExtraRequirements,
		UserID:            userID,
	})
	if !res.Success {
		s.jsonResponse(w, HTTPStatus(res.Err), GenerateErrorResponse{Error: res.Error, Kind: string(res.ErrorKind)})
		return
	}

	if err := s.store.SaveResume(r.Context(), res.Resume); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, GenerateResponse{
		Resume:           res.Resume,
		DegradedSections: res.Degraded,
		Links:            renditionLinks(res.Resume.ID),
	})
}

// handleGenerateResumeStream is handleGenerateResume reporting each pipeline step as an SSE event
func (s *Server) handleGenerateResumeStream(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	doc, err := s.profileDocument(r, userID)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := s.generationContext(r.Context())
	defer cancel()

	res := s.gen.GenerateResume(ctx, generation.Request{
		ProfileDocument:   doc,
		TargetRole:        req.TargetRole,
		ExtraRequirements: req.ExtraRequirements,
		UserID:            userID,
		OnProgress: func(e generation.ProgressEvent) {
			// the record is sent once it is stored
			e.Content = nil
			if err := sse.WriteEvent(eventProgress, e); err != nil {
				log.Printf("Failed to write progress event: %v", err)
			}
		},
	})
	if !res.Success {
		sse.WriteError(string(res.ErrorKind), res.Error)
		return
	}
	if err := s.store.SaveResume(r.Context(), res.Resume); err != nil {
		log.Printf("Failed to save resume %s: %v", res.Resume.ID, err)
		sse.WriteError(string(generation.KindGenerationFailed), "failed to save resume")
		return
	}
	sse.WriteComplete(res.Resume.ID.String(), res.Degraded)
}

// handleListResumes lists a user's resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.errorFromErr(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	resumes, err := s.store.ListResumes(r.Context(), userID, limit)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleGetResume returns the stored record as JSON
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadResume(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleResumeRendition serves a stored resume in one of the export formats.
// A failed PDF print answers 502 and points at the HTML rendition.
func (s *Server) handleResumeRendition(w http.ResponseWriter, r *http.Request) {
	format, err := generation.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	rec, err := s.loadResume(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	artifact, err := s.gen.Export(r.Context(), rec, format)
	if err != nil {
		resp := RenditionErrorResponse{Error: err.Error(), Kind: string(generation.KindOf(err))}
		if format == generation.FormatPDF {
			resp.Fallback = renditionPath(rec.ID, generation.FormatHTML)
		}
		log.Printf("Rendition %s of %s failed: %v", format, rec.ID, err)
		s.jsonResponse(w, HTTPStatus(err), resp)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	if format == generation.FormatPDF || format == generation.FormatDOCX {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(rec, artifact.Extension)))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		log.Printf("Failed to write rendition: %v", err)
	}
}

func (s *Server) loadResume(r *http.Request) (*types.ResumeRecord, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid resume ID"}
	}
	rec, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrNotFound{Resource: "resume", ID: raw}
	}
	return rec, nil
}

func renditionPath(id uuid.UUID, format generation.Format) string {
	return "/resumes/" + id.String() + "/" + string(format)
}

// renditionLinks lists every rendition URL for a record
func renditionLinks(id uuid.UUID) map[string]string {
	links := make(map[string]string, len(generation.Formats))
	for _, f := range generation.Formats {
		links[string(f)] = renditionPath(id, f)
	}
	return links
}

var unsafeNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// downloadName builds a file name such as resume-backend-engineer.pdf
func downloadName(rec *types.ResumeRecord, ext string) string {
	slug := strings.Trim(unsafeNameRe.ReplaceAllString(strings.ToLower(rec.Role), "-"), "-")
	if slug == "" {
		return "resume." + ext
	}
	return "resume-" + slug + "." + ext
}
