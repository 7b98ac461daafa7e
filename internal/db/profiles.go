package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveProfile stores or replaces the raw profile document for a user
func (db *DB) SaveProfile(ctx context.Context, userID string, document map[string]any) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	jsonBytes, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, document)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET document = $2, updated_at = NOW()`,
		userID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", userID, err)
	}
	return nil
}

// GetProfile retrieves a user's profile. It returns nil when none is stored.
func (db *DB) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	var p UserProfile
	var document []byte
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, document, created_at, updated_at
		 FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &document, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile for %s: %w", userID, err)
	}

	doc, err := decodeDocument(document)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile for %s: %w", userID, err)
	}
	p.Document = doc
	return &p, nil
}

// GetProfileDocument retrieves only the raw document, or nil when none is stored
func (db *DB) GetProfileDocument(ctx context.Context, userID string) (map[string]any, error) {
	p, err := db.GetProfile(ctx, userID)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Document, nil
}

// DeleteProfile removes a user's profile document
func (db *DB) DeleteProfile(ctx context.Context, userID string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}

// decodeDocument unmarshals a JSONB object; JSON null becomes an empty document
func decodeDocument(raw []byte) (map[string]any, error) {
	doc := map[string]any{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
