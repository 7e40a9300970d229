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
	categoryTypesPath = "/admin/category-types"
	categoriesPath    = "/admin/categories"

	// blankBulkRows is how many empty rows a bulk-add form starts with.
	blankBulkRows = 3
)

// --- Category types ---

// CategoryTypesList renders the category types table and the bulk-add form.
func (a *Admin) CategoryTypesList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Category Type", Section: "category_types"}

	types, err := a.api.CategoryTypes(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to load category types.")
	}

	pd.Data = map[string]any{"Items": types, "Rows": make([]struct{}, blankBulkRows)}
	a.page(w, r, "category_types", pd)
}

// CategoryTypesCreate adds every non-blank name from the bulk form in one
// request. An all-blank submission never reaches the API.
func (a *Admin) CategoryTypesCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		a.fail(w, r, categoryTypesPath, formParseMessage(err))
		return
	}

	var names []string
	for _, name := range r.Form["name"] {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		a.fail(w, r, categoryTypesPath, "Please fill in all fields before submitting.")
		return
	}

	msg, err := a.api.CreateCategoryTypes(r.Context(), names)
	if err != nil {
		slog.Error("create category types failed", "error", err)
		a.fail(w, r, categoryTypesPath, api.ErrorMessage(err, "Failed to add category types."))
		return
	}

	a.invalidate(r, cache.FamilyCategoryTypes)
	a.record(r, models.ActivityCreate, "category_type", "", strings.Join(names, ", "))
	a.succeed(w, r, categoryTypesPath, orDefault(msg, "Category types added successfully!"))
}

// CategoryTypeEdit renders the rename form for one category type.
func (a *Admin) CategoryTypeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	types, err := a.api.CategoryTypes(r.Context())
	if err != nil {
		slog.Error("load category types failed", "error", err)
		a.fail(w, r, categoryTypesPath, api.ErrorMessage(err, "Failed to load category types."))
		return
	}

	var item *models.CategoryType
	for i := range types {
		if types[i].ID.String() == id {
			item = &types[i]
			break
		}
	}
	if item == nil {
		a.fail(w, r, categoryTypesPath, "Category type not found.")
		return
	}

	a.page(w, r, "category_type_form", &render.PageData{
		Title:   "Edit Category Type",
		Section: "category_types",
		Data:    map[string]any{"Item": item},
	})
}

// CategoryTypeUpdate renames a category type.
func (a *Admin) CategoryTypeUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := categoryTypeForm{Name: formValue(r, "name")}
	item := &models.CategoryType{ID: models.ID(id), Name: form.Name}

	pd := &render.PageData{Title: "Edit Category Type", Section: "category_types", Data: map[string]any{"Item": item}}
	if msg := check(form); msg != "" {
		a.formError(w, r, "category_type_form", pd, msg)
		return
	}

	if _, err := a.api.UpdateCategoryType(r.Context(), id, form.Name); err != nil {
		slog.Error("update category type failed", "id", id, "error", err)
		a.formError(w, r, "category_type_form", pd, api.ErrorMessage(err, "An error occurred while updating the category."))
		return
	}

	a.invalidate(r, cache.FamilyCategoryTypes, cache.FamilyCategories)
	a.record(r, models.ActivityUpdate, "category_type", id, form.Name)
	a.succeed(w, r, categoryTypesPath, "Category type updated successfully!")
}

// CategoryTypeDelete removes a category type.
func (a *Admin) CategoryTypeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := a.api.DeleteCategoryType(r.Context(), id)
	if err != nil {
		slog.Error("delete category type failed", "id", id, "error", err)
		a.fail(w, r, categoryTypesPath, api.ErrorMessage(err, "Failed to delete category type."))
		return
	}

	a.invalidate(r, cache.FamilyCategoryTypes, cache.FamilyCategories)
	a.record(r, models.ActivityDelete, "category_type", id, "")
	a.succeed(w, r, categoryTypesPath, orDefault(msg, "Deleted successfully"))
}

// --- Categories ---

// CategoriesList renders the categories table and the bulk-add form.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	pd := &render.PageData{Title: "Category", Section: "categories"}

	cats, err := a.api.Categories(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to load categories.")
	}
	types, err := a.categoryTypes(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to load category types.")
	}

	rows := make([]categoryRow, 0, len(cats))
	for i := range cats {
		rows = append(rows, categoryRow{Category: cats[i], TypeName: cats[i].TypeName(types)})
	}

	pd.Data = map[string]any{"Items": rows, "Types": types, "Rows": make([]struct{}, blankBulkRows)}
	a.page(w, r, "categories", pd)
}

// categoryRow is a category with its type name resolved for display.
type categoryRow struct {
	models.Category
	TypeName string
}

// CategoriesCreate adds every filled row of the bulk form. Rows with a
// blank name are dropped; a named row without a type rejects the batch.
func (a *Admin) CategoriesCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		a.fail(w, r, categoriesPath, formParseMessage(err))
		return
	}

	cats, msg := bulkCategories(r.Form["name"], r.Form["categoryTypeId"])
	if msg != "" {
		a.fail(w, r, categoriesPath, msg)
		return
	}

	apiMsg, err := a.api.CreateCategories(r.Context(), cats)
	if err != nil {
		slog.Error("create categories failed", "error", err)
		a.fail(w, r, categoriesPath, api.ErrorMessage(err, "An error occurred while submitting categories."))
		return
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	a.invalidate(r, cache.FamilyCategories)
	a.record(r, models.ActivityCreate, "category", "", strings.Join(names, ", "))
	a.succeed(w, r, categoriesPath, orDefault(apiMsg, "Categories added successfully!"))
}

// bulkCategories pairs the name and type columns of the bulk form,
// dropping blank rows. It returns a notice instead when nothing is left
// or a row is incomplete.
func bulkCategories(names, typeIDs []string) ([]models.CategoryInput, string) {
	var cats []models.CategoryInput
	for i, name := range names {
		name = strings.TrimSpace(name)
		var typeID string
		if i < len(typeIDs) {
			typeID = strings.TrimSpace(typeIDs[i])
		}
		if name == "" {
			continue
		}
		in := models.CategoryInput{Name: name, CategoryTypeID: typeID}
		if msg := check(categoryForm{Name: in.Name, CategoryTypeID: in.CategoryTypeID}); msg != "" {
			return nil, fmt.Sprintf("Row %d: %s", i+1, msg)
		}
		cats = append(cats, in)
	}
	if len(cats) == 0 {
		return nil, "Please fill in all fields before submitting."
	}
	return cats, ""
}

// CategoryEdit renders the edit form for one category.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cats, err := a.api.Categories(r.Context())
	if err != nil {
		slog.Error("load categories failed", "error", err)
		a.fail(w, r, categoriesPath, api.ErrorMessage(err, "Failed to load categories."))
		return
	}

	var item *models.Category
	for i := range cats {
		if cats[i].ID.String() == id {
			item = &cats[i]
			break
		}
	}
	if item == nil {
		a.fail(w, r, categoriesPath, "Category not found.")
		return
	}

	a.categoryFormPage(w, r, item, "")
}

// CategoryUpdate saves a category's name and type.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := categoryForm{Name: formValue(r, "name"), CategoryTypeID: formValue(r, "categoryTypeId")}
	item := &models.Category{ID: models.ID(id), Name: form.Name, CategoryTypeID: models.ID(form.CategoryTypeID)}

	if msg := check(form); msg != "" {
		a.categoryFormPage(w, r, item, msg)
		return
	}

	in := models.CategoryInput{Name: form.Name, CategoryTypeID: form.CategoryTypeID}
	if _, err := a.api.UpdateCategory(r.Context(), id, in); err != nil {
		slog.Error("update category failed", "id", id, "error", err)
		a.categoryFormPage(w, r, item, api.ErrorMessage(err, "Failed to update category."))
		return
	}

	a.invalidate(r, cache.FamilyCategories)
	a.record(r, models.ActivityUpdate, "category", id, form.Name)
	a.succeed(w, r, categoriesPath, "Category updated successfully!")
}

// CategoryDelete removes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := a.api.DeleteCategory(r.Context(), id)
	if err != nil {
		slog.Error("delete category failed", "id", id, "error", err)
		a.fail(w, r, categoriesPath, api.ErrorMessage(err, "An error occurred while deleting the category."))
		return
	}

	a.invalidate(r, cache.FamilyCategories)
	a.record(r, models.ActivityDelete, "category", id, "")
	a.succeed(w, r, categoriesPath, orDefault(msg, "Category deleted successfully!"))
}

func (a *Admin) categoryFormPage(w http.ResponseWriter, r *http.Request, item *models.Category, errMsg string) {
	pd := &render.PageData{Title: "Edit Category", Section: "categories"}

	types, err := a.categoryTypes(r.Context())
	if err != nil {
		loadFailed(pd, err, "Failed to load category types.")
	}

	pd.Data = map[string]any{"Item": item, "Types": types}
	if errMsg != "" {
		a.formError(w, r, "category_form", pd, errMsg)
		return
	}
	a.page(w, r, "category_form", pd)
}

// orDefault returns msg, or fallback when the API sent no message.
func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
