// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryType is the top-level grouping for categories, e.g. "Course"
// or "Free Resource".
type CategoryType struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Category is a named grouping scoped to a category type. It is assigned
// to courses, counselling offerings and free resource materials.
type Category struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	CategoryTypeID ID     `json:"categoryTypeId"`

	// CategoryType is populated by the API on some list endpoints.
	CategoryType *NameRef `json:"categoryType,omitempty"`
}

// NameRef is an embedded relation the API expands with only its name.
type NameRef struct {
	Name string `json:"name"`
}

// CategoryInput is one row of a bulk category submission.
type CategoryInput struct {
	Name           string `json:"name"`
	CategoryTypeID string `json:"categoryTypeId"`
}

// TypeName resolves the category's type name from the expanded relation
// or, failing that, from the given lookup list.
func (c *Category) TypeName(types []CategoryType) string {
	if c.CategoryType != nil && c.CategoryType.Name != "" {
		return c.CategoryType.Name
	}
	for _, t := range types {
		if t.ID == c.CategoryTypeID {
			return t.Name
		}
	}
	return ""
}
