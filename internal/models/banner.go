// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a promotional banner owned by the dashboard itself and stored
// in MongoDB. The image is kept inline as a base64 string.
type Banner struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Link        string             `json:"link,omitempty" bson:"link,omitempty"`
	Image       string             `json:"image" bson:"image"`
	Thumbnail   string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Status      bool               `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ImageSrc returns the image as a data URI suitable for an <img> tag.
// Older records may already carry the data: prefix.
func (b *Banner) ImageSrc() string {
	return dataURI(b.Image)
}

// ThumbSrc returns the thumbnail data URI, falling back to the full image.
func (b *Banner) ThumbSrc() string {
	if b.Thumbnail != "" {
		return dataURI(b.Thumbnail)
	}
	return b.ImageSrc()
}

func dataURI(encoded string) string {
	if encoded == "" || strings.HasPrefix(encoded, "data:") {
		return encoded
	}
	return "data:" + sniffBase64(encoded) + ";base64," + encoded
}

// sniffBase64 guesses an image MIME type from the base64 prefix of the
// file's magic bytes.
func sniffBase64(encoded string) string {
	switch {
	case strings.HasPrefix(encoded, "iVBORw0KGgo"):
		return "image/png"
	case strings.HasPrefix(encoded, "/9j/"):
		return "image/jpeg"
	case strings.HasPrefix(encoded, "R0lGOD"):
		return "image/gif"
	case strings.HasPrefix(encoded, "UklGR"):
		return "image/webp"
	default:
		return "image/png"
	}
}
