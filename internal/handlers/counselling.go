// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"courseadmin/internal/api"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
)

const counsellingPath = "/admin/counselling"

// CounsellingList renders the counselling offerings table.
func (a *Admin) CounsellingList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Counselling", Section: "counselling"}

	items, err := a.api.Counsellings(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to load counselling items.")
	}

	pd.Data = map[string]any{"Items": items}
	a.page(w, r, "counselling", pd)
}

// CounsellingNew renders an empty counselling form.
func (a *Admin) CounsellingNew(w http.ResponseWriter, r *http.Request) {
	a.counsellingFormPage(w, r, &models.Counselling{}, true, "")
}

// CounsellingEdit renders the form for an existing offering.
func (a *Admin) CounsellingEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := a.api.Counsellings(r.Context())
	if err != nil {
		slog.Error("load counselling failed", "error", err)
		a.fail(w, r, counsellingPath, api.ErrorMessage(err, "Failed to load counselling items."))
		return
	}
	for i := range items {
		if items[i].ID.String() == id {
			a.counsellingFormPage(w, r, &items[i], false, "")
			return
		}
	}
	a.fail(w, r, counsellingPath, "Counselling item not found.")
}

// CounsellingCreate adds an offering with its image.
func (a *Admin) CounsellingCreate(w http.ResponseWriter, r *http.Request) {
	a.saveCounselling(w, r, "")
}

// CounsellingUpdate saves an offering; the image is optional.
func (a *Admin) CounsellingUpdate(w http.ResponseWriter, r *http.Request) {
	a.saveCounselling(w, r, chi.URLParam(r, "id"))
}

func (a *Admin) saveCounselling(w http.ResponseWriter, r *http.Request, id string) {
	isNew := id == ""
	if err := parseForm(r); err != nil {
		a.fail(w, r, counsellingPath, formParseMessage(err))
		return
	}

	media, closeMedia := formFile(r, "media")
	defer closeMedia()

	form := counsellingForm{
		Title:          formValue(r, "title"),
		Description:    formValue(r, "description"),
		Price:          formValue(r, "price"),
		CategoryTypeID: formValue(r, "categoryTypeId"),
		CategoryID:     formValue(r, "categoryId"),
		IsNew:          isNew,
		HasMedia:       media != nil,
	}
	price, _ := strconv.ParseFloat(form.Price, 64)
	item := &models.Counselling{
		ID:             models.ID(id),
		Title:          form.Title,
		Description:    form.Description,
		Price:          price,
		CategoryTypeID: models.ID(form.CategoryTypeID),
		CategoryID:     models.ID(form.CategoryID),
	}

	if msg := check(form); msg != "" {
		a.counsellingFormPage(w, r, item, isNew, msg)
		return
	}
	price, ok := parsePrice(form.Price)
	if !ok {
		a.counsellingFormPage(w, r, item, isNew, "Price must be a number greater than zero.")
		return
	}

	in := api.CounsellingInput{
		Title:          form.Title,
		Description:    form.Description,
		Price:          price,
		CategoryTypeID: form.CategoryTypeID,
		CategoryID:     form.CategoryID,
		Media:          media,
	}

	var err error
	if isNew {
		_, err = a.api.CreateCounselling(r.Context(), in)
	} else {
		_, err = a.api.UpdateCounselling(r.Context(), id, in)
	}
	if err != nil {
		slog.Error("save counselling failed", "id", id, "error", err)
		a.counsellingFormPage(w, r, item, isNew, api.ErrorMessage(err, "Something went wrong"))
		return
	}

	action := models.ActivityUpdate
	if isNew {
		action = models.ActivityCreate
	}
	a.record(r, action, "counselling", id, form.Title)
	a.succeed(w, r, counsellingPath, "Counselling "+actionWord(isNew)+" successfully.")
}

// CounsellingDelete removes an offering.
func (a *Admin) CounsellingDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.DeleteCounselling(r.Context(), id); err != nil {
		slog.Error("delete counselling failed", "id", id, "error", err)
		a.fail(w, r, counsellingPath, api.ErrorMessage(err, "Delete error"))
		return
	}

	a.record(r, models.ActivityDelete, "counselling", id, "")
	a.succeed(w, r, counsellingPath, "Deleted successfully")
}

// CounsellingRequestsList renders the bookings submitted through the
// public counselling form. It is read-only.
func (a *Admin) CounsellingRequestsList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Counselling Form", Section: "counselling_requests"}

	items, err := a.api.CounsellingRequests(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to fetch requests.")
	}

	pd.Data = map[string]any{"Items": items}
	a.page(w, r, "counselling_requests", pd)
}

func (a *Admin) counsellingFormPage(w http.ResponseWriter, r *http.Request, item *models.Counselling, isNew bool, errMsg string) {
	title := "Edit Counselling"
	if isNew {
		title = "New Counselling"
	}
	pd := &render.PageData{Title: title, Section: "counselling"}

	types, err := a.categoryTypes(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to load category types.")
	}
	var cats []models.Category
	if !item.CategoryTypeID.IsZero() {
		if cats, err = a.categoriesByType(r.Context(), item.CategoryTypeID.String()); err != nil {
			loadFailed(pd, err, "Failed to load categories.")
		}
	}

	pd.Data = map[string]any{
		"Item":       item,
		"IsNew":      isNew,
		"Types":      types,
		"Categories": optionList{Placeholder: "Select category", Selected: item.CategoryID.String(), Options: categoryOptions(cats)},
	}
	if errMsg != "" {
		a.formError(w, r, "counselling_form", pd, errMsg)
		return
	}
	a.page(w, r, "counselling_form", pd)
}
