package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/resume-assist/internal/profile"
	"github.com/jonathan/resume-assist/internal/strategy"
	"github.com/jonathan/resume-assist/internal/types"
)

// maxProfileBytes caps an uploaded profile document
const maxProfileBytes = 1 << 20

// NormalizedProfileResponse is returned by GET /users/{id}/profile/normalized
type NormalizedProfileResponse struct {
	UserID   string                   `json:"user_id"`
	Profile  *types.NormalizedProfile `json:"profile"`
	Strategy types.ResumeStrategy     `json:"strategy"`
}

// handlePutProfile stores the raw profile document as sent
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("id"))
	if userID == "" {
		s.errorFromErr(w, &ErrValidation{Field: "id", Message: "user ID is required"})
		return
	}

	var doc map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileBytes)).Decode(&doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if doc == nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: "profile document must be a JSON object"})
		return
	}

	if err := s.store.SaveProfile(r.Context(), userID, doc); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"user_id": userID, "status": "saved"})
}

// handleNormalizedProfile shows what the generator will see for a user
func (s *Server) handleNormalizedProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	doc, err := s.profileDocument(r, userID)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	p := profile.Normalize(doc)
	s.jsonResponse(w, http.StatusOK, NormalizedProfileResponse{
		UserID:   userID,
		Profile:  p,
		Strategy: strategy.Select(p),
	})
}

func (s *Server) profileDocument(r *http.Request, userID string) (map[string]any, error) {
	doc, err := s.store.GetProfileDocument(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &ErrNotFound{Resource: "profile", ID: userID}
	}
	return doc, nil
}
