// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// an httptest stand-in for the course API and an in-memory banner
// repository. Sessions, the activity log and the lookup cache are left
// nil, which the handlers tolerate.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"courseadmin/internal/api"
	"courseadmin/internal/models"
	"courseadmin/internal/render"
	"courseadmin/internal/store"
)

// fakeAPI is a scripted course API. Routes answer with the registered
// handler; every request is recorded.
type fakeAPI struct {
	mu     sync.Mutex
	mux    *http.ServeMux
	calls  []string
	bodies map[string][]byte
	types  map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{mux: http.NewServeMux(), bodies: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.calls = append(f.calls, key)
		f.bodies[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

// handle registers pattern (a Go 1.22 "METHOD /path" pattern).
func (f *fakeAPI) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

// envelope registers pattern to answer with a success envelope.
func (f *fakeAPI) envelope(pattern string, data any, msg string) {
	f.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data, "message": msg})
	})
}

func (f *fakeAPI) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (f *fakeAPI) body(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

// multipartBody parses the multipart body recorded for key.
func (f *fakeAPI) multipartBody(t *testing.T, key string) *multipart.Form {
	t.Helper()
	f.mu.Lock()
	body, ct := f.bodies[key], f.types[key]
	f.mu.Unlock()

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("%s: content type %q is not multipart", key, ct)
	}
	form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("%s: read multipart body: %v", key, err)
	}
	return form
}

// partValue returns the single text value of field in form.
func partValue(form *multipart.Form, field string) string {
	if v := form.Value[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// fileContent returns the bytes of the file sent in field, or nil.
func fileContent(t *testing.T, form *multipart.Form, field string) []byte {
	t.Helper()
	hdrs := form.File[field]
	if len(hdrs) == 0 {
		return nil
	}
	f, err := hdrs[0].Open()
	if err != nil {
		t.Fatalf("open %s: %v", field, err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	return b
}

// fakeBanners is an in-memory BannerRepository.
type fakeBanners struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.Banner
	err   error
}

func newFakeBanners() *fakeBanners {
	return &fakeBanners{items: map[primitive.ObjectID]*models.Banner{}}
}

func (f *fakeBanners) List(_ context.Context) ([]models.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Banner, 0, len(f.items))
	for _, b := range f.items {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBanners) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.items)), nil
}

func (f *fakeBanners) FindByID(_ context.Context, id string) (*models.Banner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[oid]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBanners) Create(_ context.Context, b *models.Banner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBanners) Update(_ context.Context, b *models.Banner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[b.ID]; !ok {
		return store.ErrBannerNotFound
	}
	cp := *b
	cp.UpdatedAt = time.Now()
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBanners) SetStatus(_ context.Context, id string, status bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[oid]
	if !ok {
		return store.ErrBannerNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBanners) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[oid]; !ok {
		return store.ErrBannerNotFound
	}
	delete(f.items, oid)
	return nil
}

// seed stores a banner directly and returns it.
func (f *fakeBanners) seed(title string, status bool) *models.Banner {
	b := &models.Banner{Title: title, Image: "iVBORw0KGgo=", Status: status}
	f.Create(context.Background(), b)
	return b
}

// testRenderer parses the embedded templates.
func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

// testAdmin wires an Admin against a fake API and an in-memory banner store.
func testAdmin(t *testing.T) (*Admin, *fakeAPI, *fakeBanners) {
	t.Helper()
	fa, srv := newFakeAPI(t)
	banners := newFakeBanners()
	a := NewAdmin(testRenderer(t), nil, api.New(srv.URL, 5*time.Second), banners, nil, nil, 1<<20)
	return a, fa, banners
}

// withParam attaches a chi URL parameter to the request.
func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// formRequest builds a url-encoded request.
func formRequest(method, target string, values url.Values) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// multipartRequest builds a multipart request with text fields and an
// optional file in field "image".
func multipartRequest(t *testing.T, method, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	return uploadRequest(t, method, target, fields, "image", "banner.png", image)
}

// uploadRequest builds a multipart request with text fields and an
// optional file in field. A nil file sends no file part.
func uploadRequest(t *testing.T, method, target string, fields map[string]string, field, filename string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		fw.Write(file)
	}
	mw.Close()

	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

// testPNG returns a small encoded PNG.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
