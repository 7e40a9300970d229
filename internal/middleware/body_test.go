// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLimitBody(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       io.Reader
		wantCode   int
		wantCalled bool
		wantJSON   bool
	}{
		{name: "under the cap", path: "/admin/courses", body: strings.NewReader("title=Go"), wantCode: http.StatusOK, wantCalled: true},
		{name: "declared length over the cap", path: "/admin/banners", body: strings.NewReader(strings.Repeat("x", 65)), wantCode: http.StatusRequestEntityTooLarge},
		{name: "api gets json", path: "/api/banner", body: strings.NewReader(strings.Repeat("x", 65)), wantCode: http.StatusRequestEntityTooLarge, wantJSON: true},
		// Unknown length reaches the handler; the read is cut off there.
		{name: "streamed body", path: "/admin/banners", body: io.MultiReader(strings.NewReader(strings.Repeat("x", 100))), wantCode: http.StatusRequestEntityTooLarge, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			h := LimitBody(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if _, err := io.ReadAll(r.Body); err != nil {
					var tooBig *http.MaxBytesError
					if !errors.As(err, &tooBig) {
						t.Errorf("read error = %v, want *http.MaxBytesError", err)
					}
					TooLarge(w, r)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, tt.path, tt.body))

			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantJSON && rr.Body.String() != `{"error":"Image is too large."}` {
				t.Errorf("body = %q", rr.Body.String())
			}
		})
	}
}
