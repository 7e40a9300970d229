// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Admin is the signed-in administrator as returned by the login endpoint.
type Admin struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult carries the bearer token and the admin profile.
type LoginResult struct {
	Token string
	Admin Admin
}

// Login exchanges admin credentials for an API token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal login: %w", err)
	}

	var admin Admin
	env, err := c.roundTrip(ctx, http.MethodPost, "/api/admin/login",
		bytes.NewReader(payload), "application/json", &admin)
	if err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}
	if env.Token == "" {
		return nil, errors.New("admin login: response carried no token")
	}
	if admin.Email == "" {
		admin.Email = email
	}

	return &LoginResult{Token: env.Token, Admin: admin}, nil
}
