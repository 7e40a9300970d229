// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"courseadmin/internal/api"
	"courseadmin/internal/cache"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
)

const (
	freeResourcesPath         = "/admin/free-resources"
	freeResourceMaterialsPath = "/admin/free-resource-materials"
)

var resourceTypes = []models.ResourceType{models.ResourceTypePDF, models.ResourceTypeVideo}

// --- Free resources ---

// FreeResourcesList renders the free resources table and the bulk-add form.
func (a *Admin) FreeResourcesList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Free Resources", Section: "free_resources"}

	items, err := a.api.FreeResources(r.Context())
	if err != nil {
		loadFailed(pd, err, "An error occurred while fetching resources.")
	}

	pd.Data = map[string]any{
		"Items":         items,
		"ResourceTypes": resourceTypes,
		"Rows":          make([]struct{}, blankBulkRows),
	}
	a.page(w, r, "free_resources", pd)
}

// FreeResourcesCreate adds every filled row of the bulk form in one
// request. Rows with a blank title are dropped.
func (a *Admin) FreeResourcesCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		a.fail(w, r, freeResourcesPath, formParseMessage(err))
		return
	}

	res, msg := bulkFreeResources(r.Form["title"], r.Form["type"])
	if msg != "" {
		a.fail(w, r, freeResourcesPath, msg)
		return
	}

	apiMsg, err := a.api.CreateFreeResources(r.Context(), res)
	if err != nil {
		slog.Error("create free resources failed", "error", err)
		a.fail(w, r, freeResourcesPath, api.ErrorMessage(err, "An error occurred while submitting resources."))
		return
	}

	titles := make([]string, len(res))
	for i, fr := range res {
		titles[i] = fr.Title
	}
	a.invalidate(r, cache.FamilyFreeResources)
	a.record(r, models.ActivityCreate, "free_resource", "", strings.Join(titles, ", "))
	a.succeed(w, r, freeResourcesPath, orDefault(apiMsg, "Resources added successfully."))
}

// bulkFreeResources pairs the title and type columns of the bulk form,
// dropping rows without a title.
func bulkFreeResources(titles, types []string) ([]models.FreeResource, string) {
	var res []models.FreeResource
	for i, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		typ := string(models.ResourceTypePDF)
		if i < len(types) && strings.TrimSpace(types[i]) != "" {
			typ = strings.TrimSpace(types[i])
		}
		if msg := check(freeResourceForm{Title: title, Type: typ}); msg != "" {
			return nil, fmt.Sprintf("Row %d: %s", i+1, msg)
		}
		res = append(res, models.FreeResource{Title: title, Type: models.ResourceType(typ)})
	}
	if len(res) == 0 {
		return nil, "Please fill in all fields before submitting."
	}
	return res, ""
}

// FreeResourceEdit renders the edit form for one free resource.
func (a *Admin) FreeResourceEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := a.api.FreeResources(r.Context())
	if err != nil {
		slog.Error("load free resources failed", "error", err)
		a.fail(w, r, freeResourcesPath, api.ErrorMessage(err, "Failed to fetch resources."))
		return
	}
	for i := range items {
		if items[i].ID.String() == id {
			a.freeResourceFormPage(w, r, &items[i], "")
			return
		}
	}
	a.fail(w, r, freeResourcesPath, "Resource not found.")
}

// FreeResourceUpdate saves a free resource's title and type.
func (a *Admin) FreeResourceUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := freeResourceForm{Title: formValue(r, "title"), Type: formValue(r, "type")}
	item := &models.FreeResource{ID: models.ID(id), Title: form.Title, Type: models.ResourceType(form.Type)}

	if msg := check(form); msg != "" {
		a.freeResourceFormPage(w, r, item, msg)
		return
	}

	if _, err := a.api.UpdateFreeResource(r.Context(), id, *item); err != nil {
		slog.Error("update free resource failed", "id", id, "error", err)
		a.freeResourceFormPage(w, r, item, api.ErrorMessage(err, "An error occurred while updating resource."))
		return
	}

	a.invalidate(r, cache.FamilyFreeResources)
	a.record(r, models.ActivityUpdate, "free_resource", id, form.Title)
	a.succeed(w, r, freeResourcesPath, "Resource updated successfully.")
}

// FreeResourceDelete removes a free resource.
func (a *Admin) FreeResourceDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.DeleteFreeResource(r.Context(), id); err != nil {
		slog.Error("delete free resource failed", "id", id, "error", err)
		a.fail(w, r, freeResourcesPath, api.ErrorMessage(err, "An error occurred while deleting resource."))
		return
	}

	a.invalidate(r, cache.FamilyFreeResources)
	a.record(r, models.ActivityDelete, "free_resource", id, "")
	a.succeed(w, r, freeResourcesPath, "Resource deleted successfully.")
}

func (a *Admin) freeResourceFormPage(w http.ResponseWriter, r *http.Request, item *models.FreeResource, errMsg string) {
	pd := &render.PageData{
		Title:   "Edit Free Resource",
		Section: "free_resources",
		Data:    map[string]any{"Item": item, "ResourceTypes": resourceTypes},
	}
	if errMsg != "" {
		a.formError(w, r, "free_resource_form", pd, errMsg)
		return
	}
	a.page(w, r, "free_resource_form", pd)
}

// --- Free resource materials ---

// FreeResourceMaterialsList renders every free resource material with its
// parent resource resolved.
func (a *Admin) FreeResourceMaterialsList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Free Resources Material", Section: "free_resource_materials"}

	items, err := a.api.FreeResourceMaterials(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to fetch resources.")
	}
	resources, err := a.freeResources(r.Context())
	if err != nil {
		slog.Warn("load free resources failed", "error", err)
	}

	titles := make(map[models.ID]string, len(resources))
	for _, fr := range resources {
		titles[fr.ID] = fr.Title
	}

	pd.Data = map[string]any{"Items": items, "ResourceTitles": titles}
	a.page(w, r, "free_resource_materials", pd)
}

// FreeResourceMaterialNew renders an empty material form.
func (a *Admin) FreeResourceMaterialNew(w http.ResponseWriter, r *http.Request) {
	item := &models.FreeResourceMaterial{Type: models.ResourceTypePDF}
	a.freeResourceMaterialFormPage(w, r, item, true, "")
}

// FreeResourceMaterialEdit renders the form for an existing material.
func (a *Admin) FreeResourceMaterialEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := a.api.FreeResourceMaterials(r.Context())
	if err != nil {
		slog.Error("load free resource materials failed", "error", err)
		a.fail(w, r, freeResourceMaterialsPath, api.ErrorMessage(err, "Failed to fetch resources."))
		return
	}
	for i := range items {
		if items[i].ID.String() == id {
			a.freeResourceMaterialFormPage(w, r, &items[i], false, "")
			return
		}
	}
	a.fail(w, r, freeResourceMaterialsPath, "Resource material not found.")
}

// FreeResourceMaterialCreate uploads a new material: a PDF file, or a
// video URL.
func (a *Admin) FreeResourceMaterialCreate(w http.ResponseWriter, r *http.Request) {
	a.saveFreeResourceMaterial(w, r, "")
}

// FreeResourceMaterialUpdate saves a material; a PDF file is optional.
func (a *Admin) FreeResourceMaterialUpdate(w http.ResponseWriter, r *http.Request) {
	a.saveFreeResourceMaterial(w, r, chi.URLParam(r, "id"))
}

func (a *Admin) saveFreeResourceMaterial(w http.ResponseWriter, r *http.Request, id string) {
	isNew := id == ""
	if err := parseForm(r); err != nil {
		a.fail(w, r, freeResourceMaterialsPath, formParseMessage(err))
		return
	}

	media, closeMedia := formFile(r, "media")
	defer closeMedia()

	form := freeResourceMaterialForm{
		Title:          formValue(r, "title"),
		CategoryTypeID: formValue(r, "categoryTypeId"),
		CategoryID:     formValue(r, "categoryId"),
		FreeResourceID: formValue(r, "freeResourceId"),
		IsNew:          isNew,
		MediaURL:       formValue(r, "mediaUrl"),
		HasMedia:       media != nil,
	}
	item := &models.FreeResourceMaterial{
		ID:             models.ID(id),
		Title:          form.Title,
		CategoryTypeID: models.ID(form.CategoryTypeID),
		CategoryID:     models.ID(form.CategoryID),
		FreeResourceID: models.ID(form.FreeResourceID),
	}
	item.Media.Path = form.MediaURL

	// The material's type is the type of the resource it belongs to.
	if form.FreeResourceID != "" {
		resources, err := a.freeResources(r.Context())
		if err != nil {
			slog.Error("load free resources failed", "error", err)
			a.freeResourceMaterialFormPage(w, r, item, isNew, api.ErrorMessage(err, "Failed to fetch resources."))
			return
		}
		res := findFreeResource(resources, form.FreeResourceID)
		if res == nil {
			a.freeResourceMaterialFormPage(w, r, item, isNew, "Please select a valid free resource.")
			return
		}
		form.Type = string(res.Type)
		item.Type = res.Type
	}

	if msg := check(form); msg != "" {
		a.freeResourceMaterialFormPage(w, r, item, isNew, msg)
		return
	}

	in := api.FreeResourceMaterialInput{
		Title:          form.Title,
		CategoryTypeID: form.CategoryTypeID,
		CategoryID:     form.CategoryID,
		FreeResourceID: form.FreeResourceID,
		Type:           item.Type,
		MediaURL:       form.MediaURL,
		Media:          media,
	}

	var err error
	if isNew {
		_, err = a.api.CreateFreeResourceMaterial(r.Context(), in)
	} else {
		_, err = a.api.UpdateFreeResourceMaterial(r.Context(), id, in)
	}
	if err != nil {
		slog.Error("save free resource material failed", "id", id, "error", err)
		a.freeResourceMaterialFormPage(w, r, item, isNew, api.ErrorMessage(err, "Something went wrong"))
		return
	}

	action := models.ActivityUpdate
	if isNew {
		action = models.ActivityCreate
	}
	a.record(r, action, "free_resource_material", id, form.Title)
	a.succeed(w, r, freeResourceMaterialsPath, "Material "+actionWord(isNew)+" successfully")
}

func findFreeResource(resources []models.FreeResource, id string) *models.FreeResource {
	for i := range resources {
		if resources[i].ID.String() == id {
			return &resources[i]
		}
	}
	return nil
}

// FreeResourceMaterialDelete removes a material.
func (a *Admin) FreeResourceMaterialDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.DeleteFreeResourceMaterial(r.Context(), id); err != nil {
		slog.Error("delete free resource material failed", "id", id, "error", err)
		a.fail(w, r, freeResourceMaterialsPath, api.ErrorMessage(err, "Delete failed"))
		return
	}

	a.record(r, models.ActivityDelete, "free_resource_material", id, "")
	a.succeed(w, r, freeResourceMaterialsPath, "Deleted successfully")
}

func (a *Admin) freeResourceMaterialFormPage(w http.ResponseWriter, r *http.Request, item *models.FreeResourceMaterial, isNew bool, errMsg string) {
	title := "Edit Free Resource Material"
	if isNew {
		title = "New Free Resource Material"
	}
	pd := &render.PageData{Title: title, Section: "free_resource_materials"}

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
	resources, err := a.freeResources(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to fetch resources.")
	}

	pd.Data = map[string]any{
		"Item":       item,
		"IsNew":      isNew,
		"Types":      types,
		"Categories": optionList{Placeholder: "Select category", Selected: item.CategoryID.String(), Options: categoryOptions(cats)},
		"Resources":  resources,
	}
	if errMsg != "" {
		a.formError(w, r, "free_resource_material_form", pd, errMsg)
		return
	}
	a.page(w, r, "free_resource_material_form", pd)
}
