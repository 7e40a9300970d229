// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Course is a sellable course. Video holds a URL to the intro video.
type Course struct {
	ID             ID     `json:"id,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Video          string `json:"video"`
	CategoryTypeID ID     `json:"categoryTypeId,omitempty"`
}

// Media describes an uploaded file as stored by the course API.
type Media struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
	Type string `json:"type,omitempty"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	if m == nil {
		return false
	}
	if strings.HasPrefix(m.Type, "image") {
		return true
	}
	p := strings.ToLower(m.Path)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"} {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// IsVideo returns true if the media item is a video type.
func (m *Media) IsVideo() bool {
	return m != nil && strings.HasPrefix(m.Type, "video")
}

// CourseMaterial is a priced sub-resource (video, image or file)
// attached to a course.
type CourseMaterial struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Fees        string `json:"fees"`
	Media       *Media `json:"media,omitempty"`
	CourseID    ID     `json:"courseId"`
}
