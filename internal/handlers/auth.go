// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"courseadmin/internal/api"
	"courseadmin/internal/middleware"
	"courseadmin/internal/render"
	"courseadmin/internal/session"
)

// Auth groups the sign-in and sign-out handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	api      *api.Client
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, client *api.Client) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		api:      client,
	}
}

// LoginPage renders the login form, or skips straight to the dashboard
// when a session already exists.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{Title: "Sign In"})
}

// LoginSubmit checks the credentials against the upstream API and opens a
// session holding the returned token.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if msg := check(form); msg != "" {
		a.loginError(w, r, form.Email, msg)
		return
	}

	res, err := a.api.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		slog.Warn("admin login failed", "email", form.Email, "error", err)
		a.loginError(w, r, form.Email, api.ErrorMessage(err, "Invalid email or password."))
		return
	}

	// A fresh ID on every sign-in; any earlier session is dropped.
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("failed to drop previous session", "error", err)
	}

	name := res.Admin.Name
	if name == "" {
		name = res.Admin.Email
	}
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		AdminName: name,
		Email:     res.Admin.Email,
		Token:     res.Token,
		Flashes:   []session.Flash{{Kind: session.FlashSuccess, Message: "Login successfully"}},
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		a.loginError(w, r, form.Email, "An unexpected error occurred.")
		return
	}

	slog.Info("admin signed in", "email", res.Admin.Email)
	redirect(w, r, "/admin")
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("logout failed", "error", err)
	}
	redirect(w, r, middleware.LoginPath)
}

func (a *Auth) loginError(w http.ResponseWriter, r *http.Request, email, msg string) {
	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Error": msg, "Email": email},
	})
}
