// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction is the kind of mutation an admin performed.
type ActivityAction string

const (
	ActivityCreate ActivityAction = "create"
	ActivityUpdate ActivityAction = "update"
	ActivityDelete ActivityAction = "delete"
)

// Activity is one entry of the admin audit trail.
type Activity struct {
	ID         uuid.UUID      `json:"id"`
	Actor      string         `json:"actor"`
	Action     ActivityAction `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Summary    string         `json:"summary"`
	CreatedAt  time.Time      `json:"created_at"`
}
