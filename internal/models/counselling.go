// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Counselling is a paid advisory offering.
type Counselling struct {
	ID             ID       `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Media          MediaRef `json:"media"`
	CategoryID     ID       `json:"categoryId"`
	CategoryTypeID ID       `json:"categoryTypeId"`
	Category       *NameRef `json:"category,omitempty"`
}

// CategoryName returns the expanded category name or an em placeholder.
func (c *Counselling) CategoryName() string {
	if c.Category != nil && c.Category.Name != "" {
		return c.Category.Name
	}
	return "—"
}

// CounsellingRequest is an inbound booking submitted through the public
// counselling form. The dashboard only lists them.
type CounsellingRequest struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Description string    `json:"description,omitempty"`
	CategoryID  ID        `json:"categoryId"`
	Category    *NameRef  `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryName returns the expanded category name or an em placeholder.
func (r *CounsellingRequest) CategoryName() string {
	if r.Category != nil && r.Category.Name != "" {
		return r.Category.Name
	}
	return "—"
}
