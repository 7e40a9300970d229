// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"courseadmin/internal/models"
)

// CounsellingInput is the multipart body of a counselling offering.
type CounsellingInput struct {
	Title          string
	Description    string
	Price          float64
	CategoryTypeID string
	CategoryID     string
	Media          *Upload
}

func (in CounsellingInput) form() *form {
	f := newForm()
	f.set("title", in.Title)
	f.set("description", in.Description)
	f.set("price", strconv.FormatFloat(in.Price, 'f', -1, 64))
	f.set("categoryTypeId", in.CategoryTypeID)
	f.set("categoryId", in.CategoryID)
	f.file("media", in.Media)
	return f
}

// Counsellings lists every counselling offering.
func (c *Client) Counsellings(ctx context.Context) ([]models.Counselling, error) {
	var list []models.Counselling
	if err := c.get(ctx, "/api/career-counselling", &list); err != nil {
		return nil, fmt.Errorf("list counselling: %w", err)
	}
	return list, nil
}

// CreateCounselling uploads a new counselling offering.
func (c *Client) CreateCounselling(ctx context.Context, in CounsellingInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPost, "/api/career-counselling", in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("create counselling: %w", err)
	}
	return msg, nil
}

// UpdateCounselling edits a counselling offering.
func (c *Client) UpdateCounselling(ctx context.Context, id string, in CounsellingInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPut, "/api/career-counselling/"+escape(id), in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("update counselling: %w", err)
	}
	return msg, nil
}

// DeleteCounselling removes a counselling offering.
func (c *Client) DeleteCounselling(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/career-counselling/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete counselling: %w", err)
	}
	return msg, nil
}

// CounsellingRequests lists the inbound counselling bookings.
func (c *Client) CounsellingRequests(ctx context.Context) ([]models.CounsellingRequest, error) {
	var list []models.CounsellingRequest
	if err := c.get(ctx, "/api/career-counselling-form", &list); err != nil {
		return nil, fmt.Errorf("list counselling requests: %w", err)
	}
	return list, nil
}
