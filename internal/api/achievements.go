// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"courseadmin/internal/models"
)

// AchievementInput is the multipart body of an achievement. Video
// achievements carry a URL, gallery achievements an image file.
type AchievementInput struct {
	Title    string                 `validate:"required" msg:"Please fill all required fields."`
	Type     models.AchievementType `validate:"oneof=video gallery" msg:"Type must be video or gallery."`
	Year     int                    `validate:"gte=1900,lte=2100" msg:"Year must be between 1900 and 2100."`
	MediaURL string
	Media    *Upload
}

func (in AchievementInput) form() *form {
	f := newForm()
	f.set("title", in.Title)
	f.set("type", string(in.Type))
	if in.Year != 0 {
		f.set("year", strconv.Itoa(in.Year))
	}
	if in.Type == models.AchievementTypeVideo {
		f.set("media", in.MediaURL)
	} else {
		f.file("media", in.Media)
	}
	return f
}

// Achievements lists every achievement.
func (c *Client) Achievements(ctx context.Context) ([]models.Achievement, error) {
	var list []models.Achievement
	if err := c.get(ctx, "/api/achievements", &list); err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return list, nil
}

// CreateAchievement uploads a new achievement.
func (c *Client) CreateAchievement(ctx context.Context, in AchievementInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPost, "/api/achievements", in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("create achievement: %w", err)
	}
	return msg, nil
}

// UpdateAchievement edits an achievement.
func (c *Client) UpdateAchievement(ctx context.Context, id string, in AchievementInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPut, "/api/achievements/"+escape(id), in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("update achievement: %w", err)
	}
	return msg, nil
}

// DeleteAchievement removes an achievement.
func (c *Client) DeleteAchievement(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/achievements/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete achievement: %w", err)
	}
	return msg, nil
}
