// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
)

// ResourceType is the kind of content a free resource carries.
type ResourceType string

const (
	ResourceTypePDF   ResourceType = "pdf"
	ResourceTypeVideo ResourceType = "video"
)

// FreeResource is an ungated content item, e.g. a PDF guide.
type FreeResource struct {
	ID    ID           `json:"id,omitempty"`
	Title string       `json:"title"`
	Type  ResourceType `json:"type"`
}

// FreeResourceMaterial is the media payload attached to a free resource.
// For video resources Media holds a URL; for PDFs it is an uploaded file.
type FreeResourceMaterial struct {
	ID             ID           `json:"id,omitempty"`
	Title          string       `json:"title"`
	CategoryID     ID           `json:"categoryId"`
	CategoryTypeID ID           `json:"categoryTypeId"`
	FreeResourceID ID           `json:"freeResourceId"`
	Type           ResourceType `json:"type"`
	Media          MediaRef     `json:"media"`
}

// MediaRef holds either a bare URL string or a Media object; the API
// returns both shapes depending on how the material was created.
type MediaRef struct {
	Media
}

// UnmarshalJSON accepts a JSON string, a Media object, or null.
func (m *MediaRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		m.Media = Media{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		m.Media = Media{Path: s}
		return nil
	}
	return json.Unmarshal(b, &m.Media)
}

// URL returns the media location, empty if none.
func (m MediaRef) URL() string {
	return m.Path
}
