package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-assist/internal/parsing"
	"github.com/jonathan/resume-assist/internal/types"
)

// resumeRow holds the JSONB columns of a resumes row before decoding
type resumeRow struct {
	ID              uuid.UUID
	UserID          string
	Role            string
	Model           string
	Strategy        []byte
	Resume          []byte
	ProfileSnapshot []byte
	Sections        []byte
	GeneratedAt     time.Time
}

// SaveResume stores a generated resume record. Saving the same ID again
// replaces the stored record.
func (db *DB) SaveResume(ctx context.Context, rec *types.ResumeRecord) error {
	if rec == nil || rec.Resume == nil {
		return fmt.Errorf("resume record is empty")
	}
	row, err := encodeResume(rec)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, role, model, strategy, resume, profile_snapshot, sections, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   role = $3, model = $4, strategy = $5, resume = $6,
		   profile_snapshot = $7, sections = $8, generated_at = $9`,
		row.ID, row.UserID, row.Role, row.Model, row.Strategy, row.Resume, row.ProfileSnapshot, row.Sections, row.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", rec.ID, err)
	}
	return nil
}

// GetResume retrieves a resume record by ID. It returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeRecord, error) {
	var row resumeRow
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, role, model, strategy, resume, profile_snapshot, sections, generated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&row.ID, &row.UserID, &row.Role, &row.Model, &row.Strategy, &row.Resume, &row.ProfileSnapshot, &row.Sections, &row.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return decodeResume(row)
}

// ListResumes retrieves a user's resumes, newest first
func (db *DB) ListResumes(ctx context.Context, userID string, limit int) ([]ResumeSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, role, model, generated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY generated_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Role, &s.Model, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// DeleteResume deletes a resume record
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

func encodeResume(rec *types.ResumeRecord) (resumeRow, error) {
	row := resumeRow{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Role:        rec.Role,
		Model:       rec.Model,
		GeneratedAt: rec.GeneratedAt,
	}
	if row.ID == uuid.Nil {
		return row, fmt.Errorf("resume record has no ID")
	}
	if row.GeneratedAt.IsZero() {
		row.GeneratedAt = time.Now().UTC()
	}

	var err error
	if row.Strategy, err = json.Marshal(rec.Strategy); err != nil {
		return row, fmt.Errorf("failed to marshal strategy: %w", err)
	}
	if row.Resume, err = json.Marshal(rec.Resume); err != nil {
		return row, fmt.Errorf("failed to marshal resume: %w", err)
	}
	if rec.ProfileSnapshot != nil {
		if row.ProfileSnapshot, err = json.Marshal(rec.ProfileSnapshot); err != nil {
			return row, fmt.Errorf("failed to marshal profile snapshot: %w", err)
		}
	}
	if rec.Sections != nil {
		if row.Sections, err = json.Marshal(rec.Sections); err != nil {
			return row, fmt.Errorf("failed to marshal sections: %w", err)
		}
	}
	return row, nil
}

// decodeResume rebuilds a record. Stored resumes pass through the parser's
// sanitization so collections are non-nil even for rows written by hand.
func decodeResume(row resumeRow) (*types.ResumeRecord, error) {
	rec := &types.ResumeRecord{
		ID:          row.ID,
		UserID:      row.UserID,
		Role:        row.Role,
		Model:       row.Model,
		GeneratedAt: row.GeneratedAt,
	}
	if err := json.Unmarshal(row.Strategy, &rec.Strategy); err != nil {
		return nil, fmt.Errorf("failed to decode strategy: %w", err)
	}

	resume := &types.GeneratedResume{}
	if err := json.Unmarshal(row.Resume, resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	rec.Resume = parsing.Sanitize(resume)

	if len(row.ProfileSnapshot) > 0 && string(row.ProfileSnapshot) != "null" {
		snapshot := &types.NormalizedProfile{}
		if err := json.Unmarshal(row.ProfileSnapshot, snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode profile snapshot: %w", err)
		}
		rec.ProfileSnapshot = snapshot
	}
	if len(row.Sections) > 0 && string(row.Sections) != "null" {
		if err := json.Unmarshal(row.Sections, &rec.Sections); err != nil {
			return nil, fmt.Errorf("failed to decode sections: %w", err)
		}
	}
	return rec, nil
}
