// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courseadmin/internal/imaging"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
	"courseadmin/internal/store"
)

const bannersPath = "/admin/banners"

// --- JSON API ---

// APIBannersList returns every banner, newest first, as a JSON array.
func (a *Admin) APIBannersList(w http.ResponseWriter, r *http.Request) {
	banners, err := a.banners.List(r.Context())
	if err != nil {
		slog.Error("list banners failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch banners")
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

// APIBannerCreate stores a banner from a multipart form with fields
// title, description, link, status ("true" to publish) and an image file.
func (a *Admin) APIBannerCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		if isTooLarge(err) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "Image is too large.")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Title and image are required")
		return
	}

	b := &models.Banner{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Link:        formValue(r, "link"),
		Status:      r.FormValue("status") == "true",
	}

	img, err := a.readBannerImage(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, bannerImageMessage(err))
		return
	}
	if msg := check(bannerForm{Title: b.Title, Description: b.Description, Link: b.Link, IsNew: true, HasImage: img != nil}); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}
	b.Image, b.Thumbnail = img.Image, img.Thumbnail

	if err := a.banners.Create(r.Context(), b); err != nil {
		slog.Error("create banner failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create banner")
		return
	}

	a.record(r, models.ActivityCreate, "banner", b.ID.Hex(), b.Title)
	writeJSON(w, http.StatusOK, b)
}

// APIBannerDelete removes a banner by id.
func (a *Admin) APIBannerDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := a.banners.Delete(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		writeJSONError(w, http.StatusBadRequest, "Invalid banner id")
		return
	case errors.Is(err, store.ErrBannerNotFound):
		writeJSONError(w, http.StatusNotFound, "Banner not found")
		return
	case err != nil:
		slog.Error("delete banner failed", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete banner")
		return
	}

	a.record(r, models.ActivityDelete, "banner", id, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Banner deleted successfully"})
}

// --- Admin screen ---

// BannersList renders the banner management table.
func (a *Admin) BannersList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Banner Management", Section: "banners"}

	banners, err := a.banners.List(r.Context())
	if err != nil {
		slog.Error("list banners failed", "error", err)
		loadFailed(pd, err, "Failed to fetch banners")
	}

	pd.Data = map[string]any{"Items": banners}
	a.page(w, r, "banners", pd)
}

// BannerNew renders an empty banner form, published by default.
func (a *Admin) BannerNew(w http.ResponseWriter, r *http.Request) {
	a.bannerFormPage(w, r, &models.Banner{Status: true}, true, "")
}

// BannerEdit renders the form for an existing banner.
func (a *Admin) BannerEdit(w http.ResponseWriter, r *http.Request) {
	b, err := a.banners.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, store.ErrInvalidID) {
		slog.Error("find banner failed", "error", err)
		a.fail(w, r, bannersPath, "Failed to fetch banners")
		return
	}
	if b == nil {
		a.fail(w, r, bannersPath, "Banner not found")
		return
	}
	a.bannerFormPage(w, r, b, false, "")
}

// BannerCreate stores a new banner from the admin form.
func (a *Admin) BannerCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		a.fail(w, r, bannersPath, bannerParseMessage(err))
		return
	}

	b := &models.Banner{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Link:        formValue(r, "link"),
		Status:      r.FormValue("status") == "true",
	}

	img, err := a.readBannerImage(r)
	if err != nil {
		a.bannerFormPage(w, r, b, true, bannerImageMessage(err))
		return
	}
	if msg := check(bannerForm{Title: b.Title, Description: b.Description, Link: b.Link, IsNew: true, HasImage: img != nil}); msg != "" {
		a.bannerFormPage(w, r, b, true, msg)
		return
	}
	b.Image, b.Thumbnail = img.Image, img.Thumbnail

	if err := a.banners.Create(r.Context(), b); err != nil {
		slog.Error("create banner failed", "error", err)
		a.bannerFormPage(w, r, b, true, "Failed to create banner")
		return
	}

	a.record(r, models.ActivityCreate, "banner", b.ID.Hex(), b.Title)
	a.succeed(w, r, bannersPath, "Banner added successfully.")
}

// BannerUpdate saves a banner. Without a new upload the stored image is kept.
func (a *Admin) BannerUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := parseForm(r); err != nil {
		a.fail(w, r, bannersPath, bannerParseMessage(err))
		return
	}

	b, err := a.banners.FindByID(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrInvalidID) {
		slog.Error("find banner failed", "id", id, "error", err)
		a.fail(w, r, bannersPath, "Failed to fetch banners")
		return
	}
	if b == nil {
		a.fail(w, r, bannersPath, "Banner not found")
		return
	}

	b.Title = formValue(r, "title")
	b.Description = formValue(r, "description")
	b.Link = formValue(r, "link")
	b.Status = r.FormValue("status") == "true"

	img, err := a.readBannerImage(r)
	if err != nil {
		a.bannerFormPage(w, r, b, false, bannerImageMessage(err))
		return
	}
	if msg := check(bannerForm{Title: b.Title, Description: b.Description, Link: b.Link, HasImage: img != nil}); msg != "" {
		a.bannerFormPage(w, r, b, false, msg)
		return
	}
	if img != nil {
		b.Image, b.Thumbnail = img.Image, img.Thumbnail
	}

	if err := a.banners.Update(r.Context(), b); err != nil {
		slog.Error("update banner failed", "id", id, "error", err)
		a.bannerFormPage(w, r, b, false, "Failed to update banner")
		return
	}

	a.record(r, models.ActivityUpdate, "banner", id, b.Title)
	a.succeed(w, r, bannersPath, "Banner updated successfully.")
}

// BannerToggle flips a banner between published and hidden.
func (a *Admin) BannerToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := a.banners.FindByID(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrInvalidID) {
		slog.Error("find banner failed", "id", id, "error", err)
		a.fail(w, r, bannersPath, "Failed to fetch banners")
		return
	}
	if b == nil {
		a.fail(w, r, bannersPath, "Banner not found")
		return
	}

	if err := a.banners.SetStatus(r.Context(), id, !b.Status); err != nil {
		slog.Error("toggle banner failed", "id", id, "error", err)
		a.fail(w, r, bannersPath, "Failed to update banner")
		return
	}

	state := "hidden"
	if !b.Status {
		state = "published"
	}
	a.record(r, models.ActivityUpdate, "banner", id, b.Title+" "+state)
	a.succeed(w, r, bannersPath, fmt.Sprintf("Banner %s.", state))
}

// BannerDelete removes a banner from the admin screen.
func (a *Admin) BannerDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := a.banners.Delete(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrInvalidID), errors.Is(err, store.ErrBannerNotFound):
		a.fail(w, r, bannersPath, "Banner not found")
		return
	case err != nil:
		slog.Error("delete banner failed", "id", id, "error", err)
		a.fail(w, r, bannersPath, "Failed to delete banner")
		return
	}

	a.record(r, models.ActivityDelete, "banner", id, "")
	a.succeed(w, r, bannersPath, "Banner deleted successfully")
}

func (a *Admin) bannerFormPage(w http.ResponseWriter, r *http.Request, b *models.Banner, isNew bool, errMsg string) {
	title := "Edit Banner"
	if isNew {
		title = "New Banner"
	}
	pd := &render.PageData{
		Title:   title,
		Section: "banners",
		Data:    map[string]any{"Item": b, "IsNew": isNew},
	}
	if errMsg != "" {
		a.formError(w, r, "banner_form", pd, errMsg)
		return
	}
	a.page(w, r, "banner_form", pd)
}

// readBannerImage validates the "image" upload, returning nil when no
// file was sent.
func (a *Admin) readBannerImage(r *http.Request) (*imaging.Processed, error) {
	f, hdr, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read banner image: %w", err)
	}
	defer f.Close()
	if hdr.Size == 0 {
		return nil, nil
	}

	var src io.Reader = f
	if a.maxBannerBytes > 0 {
		src = io.LimitReader(f, a.maxBannerBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read banner image: %w", err)
	}

	return imaging.Process(data, a.maxBannerBytes)
}

// bannerParseMessage is the notice for a banner form body that failed to
// parse.
func bannerParseMessage(err error) string {
	if isTooLarge(err) {
		return "Image is too large."
	}
	return "Invalid form submission."
}

// bannerImageMessage turns an upload failure into an admin-facing notice.
func bannerImageMessage(err error) string {
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		return "Image is too large."
	case errors.Is(err, imaging.ErrNotImage), errors.Is(err, imaging.ErrEmpty):
		return "Image must be a PNG, JPEG, GIF or WebP file."
	}
	slog.Error("banner upload failed", "error", err)
	return "Title and image are required"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode json response failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
