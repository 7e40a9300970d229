// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

// LimitBody caps request bodies at limit bytes. A declared Content-Length
// over the cap is refused with 413 before anything is read; streamed
// bodies are cut off by http.MaxBytesReader, whose *http.MaxBytesError
// surfaces from form parsing in the handler.
func LimitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				slog.Warn("request body too large", "path", r.URL.Path, "length", r.ContentLength, "limit", limit)
				TooLarge(w, r)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TooLarge writes a 413. Requests under /api/ get a JSON error body.
func TooLarge(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"Image is too large."}`))
		return
	}
	http.Error(w, "Upload is too large.", http.StatusRequestEntityTooLarge)
}
