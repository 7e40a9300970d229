package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"courseadmin/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession() *session.Data {
	return &session.Data{
		AdminName: "Test Admin",
		Email:     "test@courseadmin.local",
		Token:     "api-token",
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

// ---------- SessionFromCtx ----------

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession()
		got := SessionFromCtx(ctxWithSession(context.Background(), sess))
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

// ---------- LoadSession ----------

func TestLoadSession(t *testing.T) {
	addr := os.Getenv("VALKEY_HOST")
	if addr == "" {
		addr = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr + ":" + port, DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	defer client.Close()

	store := session.NewStore(client, false)
	w := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), w, newTestSession()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cookie := w.Result().Cookies()[0]

	t.Run("loads session into context", func(t *testing.T) {
		var got *session.Data
		handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionFromCtx(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(cookie)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got == nil || got.Token != "api-token" {
			t.Errorf("expected loaded session, got %+v", got)
		}
	})

	t.Run("no cookie leaves context empty", func(t *testing.T) {
		inner, called := okHandler()
		var got *session.Data
		handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionFromCtx(r.Context())
			inner.ServeHTTP(w, r)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil))

		if !*called {
			t.Error("next handler should have been called")
		}
		if got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})
}

// ---------- RequireAuth ----------

func TestRequireAuth(t *testing.T) {
	t.Run("redirects to login when no session", func(t *testing.T) {
		inner, called := okHandler()
		rr := httptest.NewRecorder()
		RequireAuth(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusSeeOther)
		}
		if loc := rr.Header().Get("Location"); loc != LoginPath {
			t.Errorf("redirect location: got %q, want %q", loc, LoginPath)
		}
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		inner, _ := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/admin/options/courses", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		RequireAuth(inner).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
		if got := rr.Header().Get("HX-Redirect"); got != LoginPath {
			t.Errorf("HX-Redirect: got %q, want %q", got, LoginPath)
		}
	})

	t.Run("passes through when session exists", func(t *testing.T) {
		inner, called := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession()))
		rr := httptest.NewRecorder()
		RequireAuth(inner).ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

// ---------- RequireAPIAuth ----------

func TestRequireAPIAuth(t *testing.T) {
	tests := []struct {
		name           string
		session        *session.Data
		wantCode       int
		wantNextCalled bool
	}{
		{name: "rejects without session", session: nil, wantCode: http.StatusUnauthorized},
		{name: "passes with session", session: newTestSession(), wantCode: http.StatusOK, wantNextCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			req := httptest.NewRequest(http.MethodDelete, "/api/banner/abc", nil)
			if tt.session != nil {
				req = req.WithContext(ctxWithSession(req.Context(), tt.session))
			}
			rr := httptest.NewRecorder()
			RequireAPIAuth(inner).ServeHTTP(rr, req)

			if *called != tt.wantNextCalled {
				t.Errorf("next handler called: got %v, want %v", *called, tt.wantNextCalled)
			}
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusUnauthorized && rr.Body.String() != `{"error":"Unauthorized"}` {
				t.Errorf("body: got %q", rr.Body.String())
			}
		})
	}
}
