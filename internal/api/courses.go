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

// CourseInput is the body of a course create or update.
type CourseInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Video          string `json:"video"`
	CategoryTypeID string `json:"categoryTypeId,omitempty"`
}

// CourseMaterialInput is the multipart body of a course material create or
// update. Media is optional on update.
type CourseMaterialInput struct {
	CourseID    string
	Title       string
	Description string
	Duration    string
	Fees        string
	Media       *Upload
}

func (in CourseMaterialInput) form() *form {
	f := newForm()
	f.set("courseId", in.CourseID)
	f.set("title", in.Title)
	f.set("description", in.Description)
	f.set("duration", in.Duration)
	f.set("fees", in.Fees)
	f.file("media", in.Media)
	return f
}

// Courses lists every course.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.get(ctx, "/api/courses", &courses); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// CreateCourse adds a course.
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPost, "/api/courses/add", in, nil)
	if err != nil {
		return "", fmt.Errorf("create course: %w", err)
	}
	return msg, nil
}

// UpdateCourse replaces a course's fields.
func (c *Client) UpdateCourse(ctx context.Context, id string, in CourseInput) (string, error) {
	msg, err := c.sendJSON(ctx, http.MethodPut, "/api/courses/add/"+escape(id), in, nil)
	if err != nil {
		return "", fmt.Errorf("update course: %w", err)
	}
	return msg, nil
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/courses/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete course: %w", err)
	}
	return msg, nil
}

// CourseMaterials lists the materials of one course. The endpoint has been
// seen returning materials of other courses, so the result is filtered.
func (c *Client) CourseMaterials(ctx context.Context, courseID string) ([]models.CourseMaterial, error) {
	var all []models.CourseMaterial
	if err := c.get(ctx, "/api/courses/material/courseId/"+escape(courseID), &all); err != nil {
		return nil, fmt.Errorf("list course materials: %w", err)
	}
	materials := all[:0]
	for _, m := range all {
		if m.CourseID.String() == courseID {
			materials = append(materials, m)
		}
	}
	return materials, nil
}

// CreateCourseMaterial uploads a new course material.
func (c *Client) CreateCourseMaterial(ctx context.Context, in CourseMaterialInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPost, "/api/courses/material/add", in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("create course material: %w", err)
	}
	return msg, nil
}

// UpdateCourseMaterial edits a course material, replacing its media only
// when a new file is given.
func (c *Client) UpdateCourseMaterial(ctx context.Context, id string, in CourseMaterialInput) (string, error) {
	msg, err := c.sendForm(ctx, http.MethodPut, "/api/courses/material/"+escape(id), in.form(), nil)
	if err != nil {
		return "", fmt.Errorf("update course material: %w", err)
	}
	return msg, nil
}

// DeleteCourseMaterial removes a course material.
func (c *Client) DeleteCourseMaterial(ctx context.Context, id string) (string, error) {
	msg, err := c.del(ctx, "/api/courses/material/"+escape(id))
	if err != nil {
		return "", fmt.Errorf("delete course material: %w", err)
	}
	return msg, nil
}
