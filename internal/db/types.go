package db

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is a stored raw profile document
type UserProfile struct {
	UserID    string         `json:"user_id"`
	Document  map[string]any `json:"document"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ResumeSummary is a lightweight view of a stored resume for listing
type ResumeSummary struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DefaultListLimit caps ListResumes when no limit is given
const DefaultListLimit = 50
