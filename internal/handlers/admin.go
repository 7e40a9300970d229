// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the course admin
// dashboard. Handlers are grouped by screen (catalogue lookups, courses,
// free resources, achievements, counselling, orders, banners, auth) and
// receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"courseadmin/internal/api"
	"courseadmin/internal/cache"
	"courseadmin/internal/middleware"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
	"courseadmin/internal/session"
	"courseadmin/internal/store"
)

// maxFormMemory bounds how much of a multipart upload is held in memory
// before spilling to temporary files.
const maxFormMemory = 32 << 20

// BannerRepository is the banner persistence the handlers need.
// *store.BannerStore satisfies it.
type BannerRepository interface {
	List(ctx context.Context) ([]models.Banner, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Banner, error)
	Create(ctx context.Context, b *models.Banner) error
	Update(ctx context.Context, b *models.Banner) error
	SetStatus(ctx context.Context, id string, status bool) error
	Delete(ctx context.Context, id string) error
}

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer       *render.Renderer
	sessions       *session.Store
	api            *api.Client
	banners        BannerRepository
	activity       *store.ActivityStore
	lookups        *cache.LookupCache
	maxBannerBytes int64
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// activity and lookups may be nil; the activity log and the option cache
// are then skipped.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, client *api.Client, banners BannerRepository, activity *store.ActivityStore, lookups *cache.LookupCache, maxBannerBytes int64) *Admin {
	return &Admin{
		renderer:       renderer,
		sessions:       sessions,
		api:            client,
		banners:        banners,
		activity:       activity,
		lookups:        lookups,
		maxBannerBytes: maxBannerBytes,
	}
}

// Dashboard renders the landing page with the banner count and the
// latest recorded changes.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	bannerCount, err := a.banners.Count(r.Context())
	if err != nil {
		slog.Error("count banners failed", "error", err)
	}

	recent, err := a.activity.Recent(r.Context(), 20)
	if err != nil {
		slog.Error("load activity failed", "error", err)
	}

	a.page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"BannerCount":     bannerCount,
			"Activity":        recent,
			"ActivityEnabled": a.activity != nil,
		},
	})
}

// Profile shows the signed-in administrator.
func (a *Admin) Profile(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "profile", &render.PageData{
		Title:   "Profile",
		Section: "profile",
		Data:    map[string]any{"APIBaseURL": a.api.BaseURL()},
	})
}

// --- Shared helpers ---

// page renders a page after moving any queued flashes into it.
func (a *Admin) page(w http.ResponseWriter, r *http.Request, name string, pd *render.PageData) {
	if a.sessions != nil {
		sess := middleware.SessionFromCtx(r.Context())
		pd.Flashes = append(a.sessions.PopFlashes(r.Context(), r, sess), pd.Flashes...)
	}
	a.renderer.Page(w, r, name, pd)
}

// formError re-renders a form page with msg shown above the fields.
func (a *Admin) formError(w http.ResponseWriter, r *http.Request, name string, pd *render.PageData, msg string) {
	if pd.Data == nil {
		pd.Data = map[string]any{}
	}
	pd.Data["Error"] = msg
	a.page(w, r, name, pd)
}

// loadFailed logs a failed list fetch and shows msg on the page being built.
func loadFailed(pd *render.PageData, err error, msg string) {
	slog.Error("api fetch failed", "error", err)
	pd.Flashes = append(pd.Flashes, session.Flash{Kind: session.FlashError, Message: api.ErrorMessage(err, msg)})
}

// flash queues a message for the next rendered page.
func (a *Admin) flash(r *http.Request, kind session.FlashKind, msg string) {
	if a.sessions == nil {
		return
	}
	a.sessions.AddFlash(r.Context(), r, middleware.SessionFromCtx(r.Context()), kind, msg)
}

// succeed flashes msg and sends the browser to target.
func (a *Admin) succeed(w http.ResponseWriter, r *http.Request, target, msg string) {
	a.flash(r, session.FlashSuccess, msg)
	redirect(w, r, target)
}

// fail flashes msg and sends the browser back to target, leaving the
// upstream state as it was.
func (a *Admin) fail(w http.ResponseWriter, r *http.Request, target, msg string) {
	a.flash(r, session.FlashError, msg)
	redirect(w, r, target)
}

// redirect navigates to target: a full-page HX-Redirect for HTMX requests,
// a 303 otherwise.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// record appends a best-effort entry to the activity log.
func (a *Admin) record(r *http.Request, action models.ActivityAction, entity, id, summary string) {
	var actor string
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		actor = sess.Email
	}
	a.activity.Log(r.Context(), models.Activity{
		Actor:      actor,
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		Summary:    summary,
	})
}

// invalidate drops cached option lists after a mutation.
func (a *Admin) invalidate(r *http.Request, families ...string) {
	a.lookups.Invalidate(r.Context(), families...)
}

// parseForm parses url-encoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// isTooLarge reports whether err comes from a body cut off by
// http.MaxBytesReader.
func isTooLarge(err error) bool {
	var tooBig *http.MaxBytesError
	return errors.As(err, &tooBig)
}

// formParseMessage is the notice shown when a form body fails to parse.
func formParseMessage(err error) string {
	if isTooLarge(err) {
		return "Upload is too large."
	}
	return "Invalid form submission."
}

// formValue returns the trimmed value of a form field.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formFile returns the uploaded file in field, or nil when none was sent.
// The returned close func is always safe to call.
func formFile(r *http.Request, field string) (*api.Upload, func()) {
	f, hdr, err := r.FormFile(field)
	if err != nil || hdr.Size == 0 {
		if f != nil {
			f.Close()
		}
		return nil, func() {}
	}
	return uploadFrom(f, hdr), func() { f.Close() }
}

func uploadFrom(f multipart.File, hdr *multipart.FileHeader) *api.Upload {
	return &api.Upload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Body:        f,
	}
}

// actionWord picks the verb for success messages shared by create and update.
func actionWord(isNew bool) string {
	if isNew {
		return "added"
	}
	return "updated"
}
