// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAchievementCreateForwardsMedia(t *testing.T) {
	photo := []byte("\x89PNG fake gallery image")

	tests := []struct {
		name      string
		fields    map[string]string
		file      []byte
		wantMedia string
		wantFile  []byte
	}{
		{
			name:     "gallery uploads the image",
			fields:   map[string]string{"title": "Best bootcamp", "type": "gallery", "year": "2024"},
			file:     photo,
			wantFile: photo,
		},
		{
			name:      "video sends the url as media",
			fields:    map[string]string{"title": "Demo day", "type": "video", "year": "2025", "mediaUrl": "https://videos.example.com/demo"},
			wantMedia: "https://videos.example.com/demo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, fa, _ := testAdmin(t)
			fa.envelope("POST /api/achievements", nil, "created")

			rec := httptest.NewRecorder()
			a.AchievementCreate(rec, uploadRequest(t, http.MethodPost, "/admin/achievements", tt.fields, "media", "award.png", tt.file))

			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != achievementsPath {
				t.Fatalf("status = %d, Location = %q (body %s)", rec.Code, rec.Header().Get("Location"), rec.Body.String())
			}

			sent := fa.multipartBody(t, "POST /api/achievements")
			for _, field := range []string{"title", "type", "year"} {
				if got := partValue(sent, field); got != tt.fields[field] {
					t.Errorf("%s = %q, want %q", field, got, tt.fields[field])
				}
			}
			if got := partValue(sent, "media"); got != tt.wantMedia {
				t.Errorf("media text = %q, want %q", got, tt.wantMedia)
			}
			if got := fileContent(t, sent, "media"); !bytes.Equal(got, tt.wantFile) {
				t.Errorf("media file = %q, want %q", got, tt.wantFile)
			}
		})
	}
}

func TestAchievementCreateValidation(t *testing.T) {
	photo := []byte("image")

	tests := []struct {
		name    string
		fields  map[string]string
		file    []byte
		wantMsg string
	}{
		{"missing title", map[string]string{"type": "gallery", "year": "2024"}, photo, "Please fill all required fields."},
		{"unknown type", map[string]string{"title": "T", "type": "audio", "year": "2024"}, photo, "Type must be video or gallery."},
		{"two-digit year", map[string]string{"title": "T", "type": "gallery", "year": "99"}, photo, "Year must be a four-digit number."},
		{"year before 1900", map[string]string{"title": "T", "type": "gallery", "year": "1800"}, photo, "Year must be between 1900 and 2100."},
		{"year after 2100", map[string]string{"title": "T", "type": "gallery", "year": "2101"}, photo, "Year must be between 1900 and 2100."},
		{"video without url", map[string]string{"title": "T", "type": "video", "year": "2024"}, nil, "Video URL is required."},
		{"gallery without image", map[string]string{"title": "T", "type": "gallery", "year": "2024"}, nil, "Image file is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, fa, _ := testAdmin(t)
			fa.envelope("POST /api/achievements", nil, "created")

			req := uploadRequest(t, http.MethodPost, "/admin/achievements", tt.fields, "media", "award.png", tt.file)
			req.Header.Set("HX-Request", "true")
			rec := httptest.NewRecorder()
			a.AchievementCreate(rec, req)

			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Errorf("message %q missing: %s", tt.wantMsg, rec.Body.String())
			}
			if fa.called("POST /api/achievements") {
				t.Error("invalid achievement sent to the API")
			}
		})
	}
}

func TestAchievementUpdateKeepsImageWithoutFile(t *testing.T) {
	a, fa, _ := testAdmin(t)
	fa.envelope("PUT /api/achievements/a3", nil, "updated")

	req := uploadRequest(t, http.MethodPut, "/admin/achievements/a3",
		map[string]string{"title": "Renamed award", "type": "gallery", "year": "2023"}, "media", "", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	a.AchievementUpdate(rec, withParam(req, "id", "a3"))

	if got := rec.Header().Get("HX-Redirect"); got != achievementsPath {
		t.Fatalf("HX-Redirect = %q (body %s)", got, rec.Body.String())
	}
	sent := fa.multipartBody(t, "PUT /api/achievements/a3")
	if _, ok := sent.File["media"]; ok {
		t.Error("update without a new image should not send media")
	}
	if partValue(sent, "title") != "Renamed award" || partValue(sent, "year") != "2023" {
		t.Errorf("sent %v", sent.Value)
	}
}
