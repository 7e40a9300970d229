// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"courseadmin/internal/api"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
)

const achievementsPath = "/admin/achievements"

var achievementTypes = []models.AchievementType{models.AchievementTypeVideo, models.AchievementTypeGallery}

// AchievementsList renders the achievements table.
func (a *Admin) AchievementsList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Achievements", Section: "achievements"}

	items, err := a.api.Achievements(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to fetch achievements.")
	}

	pd.Data = map[string]any{"Items": items}
	a.page(w, r, "achievements", pd)
}

// AchievementNew renders an empty achievement form for the current year.
func (a *Admin) AchievementNew(w http.ResponseWriter, r *http.Request) {
	item := &models.Achievement{Type: models.AchievementTypeGallery, Year: time.Now().Year()}
	a.achievementFormPage(w, r, item, true, "")
}

// AchievementEdit renders the form for an existing achievement.
func (a *Admin) AchievementEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := a.api.Achievements(r.Context())
	if err != nil {
		slog.Error("load achievements failed", "error", err)
		a.fail(w, r, achievementsPath, api.ErrorMessage(err, "Failed to fetch achievements."))
		return
	}
	for i := range items {
		if items[i].ID.String() == id {
			a.achievementFormPage(w, r, &items[i], false, "")
			return
		}
	}
	a.fail(w, r, achievementsPath, "Achievement not found.")
}

// AchievementCreate adds an achievement: a video URL or a gallery image.
func (a *Admin) AchievementCreate(w http.ResponseWriter, r *http.Request) {
	a.saveAchievement(w, r, "")
}

// AchievementUpdate saves an achievement; a gallery image is optional.
func (a *Admin) AchievementUpdate(w http.ResponseWriter, r *http.Request) {
	a.saveAchievement(w, r, chi.URLParam(r, "id"))
}

func (a *Admin) saveAchievement(w http.ResponseWriter, r *http.Request, id string) {
	isNew := id == ""
	if err := parseForm(r); err != nil {
		a.fail(w, r, achievementsPath, formParseMessage(err))
		return
	}

	media, closeMedia := formFile(r, "media")
	defer closeMedia()

	form := achievementForm{
		Title:    formValue(r, "title"),
		Type:     formValue(r, "type"),
		Year:     formValue(r, "year"),
		IsNew:    isNew,
		MediaURL: formValue(r, "mediaUrl"),
		HasMedia: media != nil,
	}
	year, _ := strconv.Atoi(form.Year)
	item := &models.Achievement{
		ID:    models.ID(id),
		Title: form.Title,
		Type:  models.AchievementType(form.Type),
		Year:  year,
	}
	if form.MediaURL != "" {
		item.Media = &models.Media{Path: form.MediaURL, Type: "video"}
	}

	if msg := check(form); msg != "" {
		a.achievementFormPage(w, r, item, isNew, msg)
		return
	}

	in := api.AchievementInput{
		Title:    form.Title,
		Type:     item.Type,
		Year:     year,
		MediaURL: form.MediaURL,
		Media:    media,
	}
	if msg := check(in); msg != "" {
		a.achievementFormPage(w, r, item, isNew, msg)
		return
	}

	var err error
	if isNew {
		_, err = a.api.CreateAchievement(r.Context(), in)
	} else {
		_, err = a.api.UpdateAchievement(r.Context(), id, in)
	}
	if err != nil {
		slog.Error("save achievement failed", "id", id, "error", err)
		a.achievementFormPage(w, r, item, isNew, api.ErrorMessage(err, "Failed to submit achievement. Please try again."))
		return
	}

	action := models.ActivityUpdate
	if isNew {
		action = models.ActivityCreate
	}
	a.record(r, action, "achievement", id, form.Title)
	a.succeed(w, r, achievementsPath, "Achievement "+actionWord(isNew)+" successfully!")
}

// AchievementDelete removes an achievement.
func (a *Admin) AchievementDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.DeleteAchievement(r.Context(), id); err != nil {
		slog.Error("delete achievement failed", "id", id, "error", err)
		a.fail(w, r, achievementsPath, api.ErrorMessage(err, "Failed to delete achievement."))
		return
	}

	a.record(r, models.ActivityDelete, "achievement", id, "")
	a.succeed(w, r, achievementsPath, "Achievement deleted successfully.")
}

func (a *Admin) achievementFormPage(w http.ResponseWriter, r *http.Request, item *models.Achievement, isNew bool, errMsg string) {
	title := "Edit Achievement"
	if isNew {
		title = "New Achievement"
	}
	pd := &render.PageData{
		Title:   title,
		Section: "achievements",
		Data:    map[string]any{"Item": item, "IsNew": isNew, "AchievementTypes": achievementTypes},
	}
	if errMsg != "" {
		a.formError(w, r, "achievement_form", pd, errMsg)
		return
	}
	a.page(w, r, "achievement_form", pd)
}
