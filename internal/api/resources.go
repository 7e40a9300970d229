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

// FreeResourceMaterialInput is the multipart body of a free resource
// material. Video materials carry MediaURL; pdf materials carry a file.
type FreeResourceMaterialInput struct {
	Title          string
	CategoryTypeID string
	CategoryID     string
	FreeResourceID string
	Type           models.ResourceType
	MediaURL       string
	Media          *Upload
}

func (in FreeResourceMaterialInput) form() *form {
	f := newForm()
	f.set("title", in.Title)
	f.set("categoryTypeId", in.CategoryTypeID)
	f.set("categoryId", in.CategoryID)
	f.set("freeResourceId", in.FreeResourceID)
	f.set("type", string(in.Type))
	if in.Type == models.ResourceTypeVideo {
		f.set("media", in.MediaURL)
	} else {
		f.file("media", in.Media)
	}
	return f
}

// FreeResources lists every free resource.
func (c *Client) FreeResources(ctx context.Context) ([]models.FreeResource, error) {
	var res []models.FreeResource
	if err := c.get(ctx, "/api/free-resources", &res); err != nil {
		return nil, fmt.Errorf("list free resources: %w", err)
	}
	return res, nil
}

// CreateFreeResources creates several free resources in one call.
func (c *Client) CreateFreeResources(ctx context.Context, res []models.FreeResource) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPost, "/api/free-resources/bulk", res, nil)
	if err != nil {
		return "", fmt.Errorf("create free resources: %w", err)
	}
	return msg, nil
}

// UpdateFreeResource edits a free resource's title and type.
func (c *Client) UpdateFreeResource(ctx context.Context, id string, res models.FreeResource) (string, error) {
	res.ID = ""
	msg, err := c.sendJSON(ctx, http.MethodPut, "/api/free-resources/"+escape(id), res, nil)
	if err != nil {
		return "", fmt.Errorf("update free resource: %w", err)
	}
	return msg, nil
}

// DeleteFreeResource removes a free resource.
func (c *Client) DeleteFreeResource(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/free-resources/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete free resource: %w", err)
	}
	return msg, nil
}

// FreeResourceMaterials lists every free resource material.
func (c *Client) FreeResourceMaterials(ctx context.Context) ([]models.FreeResourceMaterial, error) {
	var mats []models.FreeResourceMaterial
	if err := c.get(ctx, "/api/free-resource-materials", &mats); err != nil {
		return nil, fmt.Errorf("list free resource materials: %w", err)
	}
	return mats, nil
}

// CreateFreeResourceMaterial uploads a free resource material.
func (c *Client) CreateFreeResourceMaterial(ctx context.Context, in FreeResourceMaterialInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPost, "/api/free-resource-materials", in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("create free resource material: %w", err)
	}
	return msg, nil
}

// UpdateFreeResourceMaterial edits a free resource material.
func (c *Client) UpdateFreeResourceMaterial(ctx context.Context, id string, in FreeResourceMaterialInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPut, "/api/free-resource-materials/"+escape(id), in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("update free resource material: %w", err)
	}
	return msg, nil
}

// DeleteFreeResourceMaterial removes a free resource material.
func (c *Client) DeleteFreeResourceMaterial(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/free-resource-materials/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete free resource material: %w", err)
	}
	return msg, nil
}
