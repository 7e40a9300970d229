// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// course admin dashboard: the signed-in admin screens under /admin, the
// banner JSON API under /api/banner, static assets and the health check.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courseadmin/internal/handlers"
	"courseadmin/internal/middleware"
	"courseadmin/internal/session"
	"courseadmin/web"
)

// BodyLimits caps request bodies, in bytes, per route group.
type BodyLimits struct {
	Admin  int64 // every /admin request
	Banner int64 // banner uploads, admin screens and JSON API alike
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. loginLimiter throttles sign-in attempts and
// may be nil.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, secureCookies bool, loginLimiter *middleware.RateLimiter, limits BodyLimits) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	csrf := middleware.NewCSRF(secureCookies)

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Handle("/static/*", staticHandler())

	// Banner JSON API. Reads are public; writes need a signed-in admin.
	r.Route("/api/banner", func(r chi.Router) {
		r.Get("/", admin.APIBannersList)
		r.Group(func(r chi.Router) {
			r.Use(middleware.LimitBody(limits.Banner))
			r.Use(middleware.RequireAPIAuth)
			r.Use(csrf)
			r.Post("/", admin.APIBannerCreate)
			r.Delete("/{id}", admin.APIBannerDelete)
		})
	})

	// Admin routes. The session check runs before CSRF so a body from a
	// signed-out client is never parsed.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.LimitBody(limits.Admin))

		r.Group(func(r chi.Router) {
			r.Use(csrf)
			r.Get("/login", auth.LoginPage)
			r.Group(func(r chi.Router) {
				if loginLimiter != nil {
					r.Use(loginLimiter.Middleware)
				}
				r.Post("/login", auth.LoginSubmit)
			})
			r.Post("/logout", auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(csrf)

			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)
			r.Get("/profile", admin.Profile)

			// Dependent dropdown fragments
			r.Get("/options/categories", admin.CategoryOptions)
			r.Get("/options/courses", admin.CourseOptions)

			r.Route("/category-types", func(r chi.Router) {
				r.Get("/", admin.CategoryTypesList)
				r.Post("/", admin.CategoryTypesCreate)
				r.Get("/{id}", admin.CategoryTypeEdit)
				r.Put("/{id}", admin.CategoryTypeUpdate)
				r.Delete("/{id}", admin.CategoryTypeDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Post("/", admin.CategoriesCreate)
				r.Get("/{id}", admin.CategoryEdit)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
			})

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", admin.CoursesList)
				r.Get("/new", admin.CourseNew)
				r.Post("/", admin.CourseCreate)
				r.Get("/{id}", admin.CourseEdit)
				r.Put("/{id}", admin.CourseUpdate)
				r.Delete("/{id}", admin.CourseDelete)
			})

			r.Route("/course-materials", func(r chi.Router) {
				r.Get("/", admin.CourseMaterialsList)
				r.Get("/new", admin.CourseMaterialNew)
				r.Post("/", admin.CourseMaterialCreate)
				r.Get("/{id}", admin.CourseMaterialEdit)
				r.Put("/{id}", admin.CourseMaterialUpdate)
				r.Delete("/{id}", admin.CourseMaterialDelete)
			})

			r.Route("/free-resources", func(r chi.Router) {
				r.Get("/", admin.FreeResourcesList)
				r.Post("/", admin.FreeResourcesCreate)
				r.Get("/{id}", admin.FreeResourceEdit)
				r.Put("/{id}", admin.FreeResourceUpdate)
				r.Delete("/{id}", admin.FreeResourceDelete)
			})

			r.Route("/free-resource-materials", func(r chi.Router) {
				r.Get("/", admin.FreeResourceMaterialsList)
				r.Get("/new", admin.FreeResourceMaterialNew)
				r.Post("/", admin.FreeResourceMaterialCreate)
				r.Get("/{id}", admin.FreeResourceMaterialEdit)
				r.Put("/{id}", admin.FreeResourceMaterialUpdate)
				r.Delete("/{id}", admin.FreeResourceMaterialDelete)
			})

			r.Route("/achievements", func(r chi.Router) {
				r.Get("/", admin.AchievementsList)
				r.Get("/new", admin.AchievementNew)
				r.Post("/", admin.AchievementCreate)
				r.Get("/{id}", admin.AchievementEdit)
				r.Put("/{id}", admin.AchievementUpdate)
				r.Delete("/{id}", admin.AchievementDelete)
			})

			r.Route("/counselling", func(r chi.Router) {
				r.Get("/", admin.CounsellingList)
				r.Get("/new", admin.CounsellingNew)
				r.Get("/requests", admin.CounsellingRequestsList)
				r.Post("/", admin.CounsellingCreate)
				r.Get("/{id}", admin.CounsellingEdit)
				r.Put("/{id}", admin.CounsellingUpdate)
				r.Delete("/{id}", admin.CounsellingDelete)
			})

			r.Get("/orders", admin.OrdersList)

			r.Route("/banners", func(r chi.Router) {
				r.Use(middleware.LimitBody(limits.Banner))
				r.Get("/", admin.BannersList)
				r.Get("/new", admin.BannerNew)
				r.Post("/", admin.BannerCreate)
				r.Get("/{id}", admin.BannerEdit)
				r.Put("/{id}", admin.BannerUpdate)
				r.Post("/{id}/toggle", admin.BannerToggle)
				r.Delete("/{id}", admin.BannerDelete)
			})
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static tree missing: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
