// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"net/http"

	"courseadmin/internal/models"
)

// CategoryTypes lists every category type.
func (c *Client) CategoryTypes(ctx context.Context) ([]models.CategoryType, error) {
	var types []models.CategoryType
	if err := c.get(ctx, "/api/category-types", &types); err != nil {
		return nil, fmt.Errorf("list category types: %w", err)
	}
	return types, nil
}

// CreateCategoryTypes creates several category types in one call.
func (c *Client) CreateCategoryTypes(ctx context.Context, names []string) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPost, "/api/category-types/add-all",
		map[string][]string{"types": names}, nil)
	if err != nil {
		return "", fmt.Errorf("create category types: %w", err)
	}
	return msg, nil
}

// UpdateCategoryType renames a category type.
func (c *Client) UpdateCategoryType(ctx context.Context, id, name string) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPut, "/api/category-types/"+escape(id),
		map[string]string{"name": name}, nil)
	if err != nil {
		return "", fmt.Errorf("update category type: %w", err)
	}
	return msg, nil
}

// DeleteCategoryType removes a category type.
func (c *Client) DeleteCategoryType(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/category-types/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete category type: %w", err)
	}
	return msg, nil
}

// Categories lists every category.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.get(ctx, "/api/categories", &cats); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// CategoriesByType lists the categories belonging to one category type.
func (c *Client) CategoriesByType(ctx context.Context, typeID string) ([]models.Category, error) {
	var cats []models.Category
	if err := c.get(ctx, "/api/categories/category-by-type/"+escape(typeID), &cats); err != nil {
		return nil, fmt.Errorf("list categories by type: %w", err)
	}
	return cats, nil
}

// CreateCategories creates several categories in one call.
func (c *Client) CreateCategories(ctx context.Context, cats []models.CategoryInput) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPost, "/api/categories/add-all",
		map[string][]models.CategoryInput{"categories": cats}, nil)
	if err != nil {
		return "", fmt.Errorf("create categories: %w", err)
	}
	return msg, nil
}

// UpdateCategory edits a category's name and type.
func (c *Client) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPatch, "/api/categories/edit/"+escape(id), in, nil)
	if err != nil {
		return "", fmt.Errorf("update category: %w", err)
	}
	return msg, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/categories/delete/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete category: %w", err)
	}
	return msg, nil
}
