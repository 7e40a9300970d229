// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// AchievementType distinguishes video achievements (a URL) from gallery
// achievements (an uploaded image).
type AchievementType string

const (
	AchievementTypeVideo   AchievementType = "video"
	AchievementTypeGallery AchievementType = "gallery"
)

// Achievement is a showcase entry displayed on the public site.
type Achievement struct {
	ID    ID              `json:"id,omitempty"`
	Title string          `json:"title"`
	Type  AchievementType `json:"type"`
	Year  int             `json:"year"`
	Media *Media          `json:"media,omitempty"`
}
