// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"courseadmin/internal/cache"
	"courseadmin/internal/models"
)

// option is one <option> of a dependent dropdown.
type option struct {
	Value string
	Label string
}

// optionList is the data behind the "options" partial.
type optionList struct {
	Placeholder string
	Selected    string
	Options     []option
}

// CategoryOptions serves the <option> list of categories for the category
// type in ?categoryTypeId=. Changing the type swaps this list in, which
// clears any previously chosen category.
func (a *Admin) CategoryOptions(w http.ResponseWriter, r *http.Request) {
	typeID := r.URL.Query().Get("categoryTypeId")
	list := optionList{Placeholder: "Select category"}

	if typeID != "" {
		cats, err := a.categoriesByType(r.Context(), typeID)
		if err != nil {
			slog.Error("load category options failed", "category_type", typeID, "error", err)
			list.Placeholder = "Failed to load categories."
		}
		list.Options = categoryOptions(cats)
	}

	a.renderer.Fragment(w, "options", list)
}

// CourseOptions serves the <option> list of courses.
func (a *Admin) CourseOptions(w http.ResponseWriter, r *http.Request) {
	list := optionList{Placeholder: "Select course", Selected: r.URL.Query().Get("courseId")}

	courses, err := a.courses(r.Context())
	if err != nil {
		slog.Error("load course options failed", "error", err)
		list.Placeholder = "Failed to load courses."
	}
	for _, c := range courses {
		list.Options = append(list.Options, option{Value: c.ID.String(), Label: c.Title})
	}

	a.renderer.Fragment(w, "options", list)
}

func categoryOptions(cats []models.Category) []option {
	opts := make([]option, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, option{Value: c.ID.String(), Label: c.Name})
	}
	return opts
}

// --- Cached option sources ---

func (a *Admin) categoryTypes(ctx context.Context) ([]models.CategoryType, error) {
	return cache.Fetch(ctx, a.lookups, cache.Key(cache.FamilyCategoryTypes), a.api.CategoryTypes)
}

func (a *Admin) categoriesByType(ctx context.Context, typeID string) ([]models.Category, error) {
	return cache.Fetch(ctx, a.lookups, cache.Key(cache.FamilyCategories, typeID),
		func(ctx context.Context) ([]models.Category, error) {
			return a.api.CategoriesByType(ctx, typeID)
		})
}

func (a *Admin) courses(ctx context.Context) ([]models.Course, error) {
	return cache.Fetch(ctx, a.lookups, cache.Key(cache.FamilyCourses), a.api.Courses)
}

func (a *Admin) freeResources(ctx context.Context) ([]models.FreeResource, error) {
	return cache.Fetch(ctx, a.lookups, cache.Key(cache.FamilyFreeResources), a.api.FreeResources)
}
