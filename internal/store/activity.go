// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// activity.go records admin mutations in PostgreSQL for the dashboard's
// audit trail. Each entry captures who changed what and how.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"courseadmin/internal/models"
)

// ActivityStore handles activity log operations. A nil *ActivityStore is
// valid and records nothing, which is how the log is disabled.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Log records one admin mutation.
func (s *ActivityStore) Log(ctx context.Context, a models.Activity) {
	if s == nil || s.db == nil {
		return
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, actor, action, entity_type, entity_id, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Actor, string(a.Action), a.EntityType, a.EntityID, a.Summary, a.CreatedAt)
	if err != nil {
		// Best-effort: the mutation already succeeded upstream.
		slog.Warn("failed to log activity",
			"entity_type", a.EntityType,
			"entity_id", a.EntityID,
			"action", a.Action,
			"error", err,
		)
		return
	}
	slog.Debug("activity logged",
		"entity_type", a.EntityType,
		"entity_id", a.EntityID,
		"action", a.Action,
	)
}

// Recent returns the newest activity entries, at most limit of them.
func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor, action, entity_type, entity_id, summary, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	var entries []models.Activity
	for rows.Next() {
		var a models.Activity
		var action string
		if err := rows.Scan(&a.ID, &a.Actor, &action, &a.EntityType, &a.EntityID, &a.Summary, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		a.Action = models.ActivityAction(action)
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
